package pipeline

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const maxConfigFileSize = 1024 * 1024 // 1MB

// envPrefix guards which environment variables the loader reads.
const envPrefix = "LOGPIPE_"

// LoadWithFile loads a Config from a YAML file, then overrides with
// environment variables.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (LOGPIPE_LEVEL, LOGPIPE_LOGGERS_<NAME>, ...)
//  2. YAML config file
//  3. Model defaults (NewDefaultConfig)
//
// A missing file is not an error; the defaults plus environment apply.
//
// # Environment Variable Mapping
//
// Variables are stripped of the LOGPIPE_ prefix, lowercased, and the
// first underscore becomes the section separator:
//
//	LOGPIPE_LEVEL       -> level
//	LOGPIPE_LOGGERS_DB  -> loggers.db
//
// Only the first underscore separates; later ones stay part of the key,
// so LOGPIPE_LOGGERS_DB_POOL addresses the logger "db_pool". Dotted
// component names ("db.pool") cannot be spelled in an environment
// variable and take overrides from the config file only.
//
// # Example
//
//	level: warn
//	loggers:
//	  db: debug
//	sinks:
//	  - type: console
//	  - type: file
//	    path: /var/log/myservice.log
//	    threshold: info
func LoadWithFile(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			f, err := os.Open(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to open config file: %w", err)
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return nil, fmt.Errorf("failed to stat config file: %w", err)
			}
			if info.Size() > maxConfigFileSize {
				return nil, fmt.Errorf("config file %s exceeds %d bytes", configPath, maxConfigFileSize)
			}

			content, err := io.ReadAll(f)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}

			// Use rawbytes provider to avoid re-opening the file
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := NewDefaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults fills fields the file and environment left empty.
func applyDefaults(cfg *Config) {
	if cfg.Loggers == nil {
		cfg.Loggers = map[string]Level{}
	}
	if len(cfg.Sinks) == 0 {
		cfg.Sinks = []SinkConfig{{Type: "console"}}
	}
}
