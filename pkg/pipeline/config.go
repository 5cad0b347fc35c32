package pipeline

import (
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/logpipe/pkg/core"
	"github.com/fyrsmithlabs/logpipe/pkg/sinks"
)

// Level is the config-facing level type. It parses the extended name
// set (trace, debug, info, warn, error, off) from YAML and env values.
type Level zapcore.Level

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := core.ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = Level(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(core.LevelString(zapcore.Level(l))), nil
}

// Zap converts to the runtime level type.
func (l Level) Zap() zapcore.Level {
	return zapcore.Level(l)
}

// Config is the declarative configuration model: global level,
// per-component overrides, ordered sink list.
//
// Fields hold immutable snapshots: the Set mutators replace a field
// wholesale with a defensive copy, so a half-built map or slice is
// never observable through a Config. Mutating a Config concurrently
// with Configure is a caller error.
type Config struct {
	// Level is the root component's level. Default info.
	Level Level `koanf:"level"`

	// Loggers maps component names to override levels.
	Loggers map[string]Level `koanf:"loggers"`

	// Sinks is the ordered list of sink descriptors. Default: a
	// single console sink.
	Sinks []SinkConfig `koanf:"sinks"`
}

// NewDefaultConfig returns the model defaults: info level, no
// overrides, one console sink.
func NewDefaultConfig() *Config {
	return &Config{
		Level:   Level(zapcore.InfoLevel),
		Loggers: map[string]Level{},
		Sinks:   []SinkConfig{{Type: "console"}},
	}
}

// SetLevel replaces the global level.
func (c *Config) SetLevel(l Level) {
	c.Level = l
}

// SetLoggers replaces the override map with a copy of m.
func (c *Config) SetLoggers(m map[string]Level) {
	loggers := make(map[string]Level, len(m))
	for k, v := range m {
		loggers[k] = v
	}
	c.Loggers = loggers
}

// SetSinks replaces the sink list with a copy of s.
func (c *Config) SetSinks(s []SinkConfig) {
	c.Sinks = append([]SinkConfig(nil), s...)
}

// SinkConfig describes one sink in the ordered list. Type selects the
// bundled factory; Factory overrides the whole descriptor with a
// custom one (for sink variants this package does not know about).
type SinkConfig struct {
	// Type is "console" or "file".
	Type string `koanf:"type"`

	// Threshold, when set, discards records below it inside the sink,
	// independent of component levels.
	Threshold string `koanf:"threshold"`

	// Format selects the encoder where the sink supports one.
	Format string `koanf:"format"`

	// Target selects the console stream ("stdout", "stderr").
	Target string `koanf:"target"`

	// File sink settings.
	Path       string `koanf:"path"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Compress   bool   `koanf:"compress"`

	// Factory, when non-nil, is used as-is and the fields above are
	// ignored. Not loadable from config files.
	Factory core.SinkFactory `koanf:"-"`
}

// name identifies the descriptor in errors.
func (sc SinkConfig) name() string {
	if sc.Factory != nil {
		return "custom"
	}
	if sc.Type == "" {
		return "console"
	}
	return sc.Type
}

// factory resolves the descriptor to a core.SinkFactory plus the
// sink-side threshold baked into the descriptor.
func (sc SinkConfig) factory() (core.SinkFactory, *zapcore.Level, error) {
	var threshold *zapcore.Level
	if sc.Threshold != "" {
		l, err := core.ParseLevel(sc.Threshold)
		if err != nil {
			return nil, nil, err
		}
		threshold = &l
	}

	if sc.Factory != nil {
		return sc.Factory, threshold, nil
	}

	switch sc.Type {
	case "", "console":
		return sinks.ConsoleConfig{Format: sc.Format, Target: sc.Target}, threshold, nil
	case "file":
		return sinks.FileConfig{
			Path:       sc.Path,
			Format:     sc.Format,
			MaxSizeMB:  sc.MaxSizeMB,
			MaxBackups: sc.MaxBackups,
			MaxAgeDays: sc.MaxAgeDays,
			Compress:   sc.Compress,
		}, threshold, nil
	default:
		return nil, nil, fmt.Errorf("unknown sink type %q", sc.Type)
	}
}
