package sinks

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/logpipe/pkg/core"
)

// ConsoleConfig builds a console sink. It implements core.SinkFactory.
type ConsoleConfig struct {
	// Format selects the encoder: "console" (default) or "json".
	Format string

	// Target selects the stream: "stdout" (default) or "stderr".
	Target string

	// Writer overrides Target when set. Used by tests and embedders
	// that capture output.
	Writer io.Writer
}

// Build creates the console sink. serviceName is attached as a constant
// "service" field on every record.
func (c ConsoleConfig) Build(_ *core.Context, serviceName string, threshold *zapcore.Level) (core.Sink, error) {
	enc, err := newEncoder(c.Format)
	if err != nil {
		return nil, err
	}

	var w io.Writer
	switch {
	case c.Writer != nil:
		w = c.Writer
	case c.Target == "" || c.Target == "stdout":
		w = os.Stdout
	case c.Target == "stderr":
		w = os.Stderr
	default:
		return nil, fmt.Errorf("console target must be 'stdout' or 'stderr', got %q", c.Target)
	}

	return &writerSink{
		name:      "console",
		enc:       enc,
		ws:        zapcore.Lock(zapcore.AddSync(w)),
		threshold: threshold,
		service:   serviceName,
	}, nil
}

// newEncoder creates a console or JSON encoder with the pipeline's
// shared encoder config.
func newEncoder(format string) (zapcore.Encoder, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = func(l zapcore.Level, e zapcore.PrimitiveArrayEncoder) {
		e.AppendString(core.LevelString(l))
	}

	switch format {
	case "", "console":
		return zapcore.NewConsoleEncoder(encoderCfg), nil
	case "json":
		return zapcore.NewJSONEncoder(encoderCfg), nil
	default:
		return nil, fmt.Errorf("format must be 'console' or 'json', got %q", format)
	}
}

// writerSink renders records with a zapcore encoder and writes them to
// a WriteSyncer. Shared by the console and file sinks.
type writerSink struct {
	name      string
	enc       zapcore.Encoder
	ws        zapcore.WriteSyncer
	threshold *zapcore.Level
	service   string
	closer    io.Closer
	stopped   atomic.Bool
}

func (s *writerSink) Name() string {
	return s.name
}

func (s *writerSink) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	if s.stopped.Load() {
		return nil
	}
	if s.threshold != nil && ent.Level < *s.threshold {
		return nil
	}
	if s.service != "" {
		fields = append([]zapcore.Field{zap.String("service", s.service)}, fields...)
	}
	buf, err := s.enc.EncodeEntry(ent, fields)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	_, err = s.ws.Write(buf.Bytes())
	buf.Free()
	if err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}

func (s *writerSink) Sync() error {
	if s.stopped.Load() {
		return nil
	}
	return s.ws.Sync()
}

func (s *writerSink) Stop() error {
	if s.stopped.Swap(true) {
		return nil
	}
	// Sync errors on terminal streams (EINVAL/ENOTTY on Linux) are
	// harmless; the file sink surfaces close errors instead.
	_ = s.ws.Sync()
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
