package sinks

import (
	"fmt"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/fyrsmithlabs/logpipe/pkg/core"
)

// FileConfig builds a rotating file sink backed by lumberjack. It
// implements core.SinkFactory.
type FileConfig struct {
	// Path is the log file location. Required.
	Path string

	// Format selects the encoder: "json" (default) or "console".
	Format string

	// MaxSizeMB rotates the file after it exceeds this size.
	// Default 100.
	MaxSizeMB int

	// MaxBackups limits retained rotated files. 0 keeps all.
	MaxBackups int

	// MaxAgeDays removes rotated files older than this. 0 keeps all.
	MaxAgeDays int

	// Compress gzips rotated files.
	Compress bool
}

// Build creates the file sink. The file is opened lazily by lumberjack
// on first write, so a bad path surfaces as a status error rather than
// here.
func (c FileConfig) Build(_ *core.Context, serviceName string, threshold *zapcore.Level) (core.Sink, error) {
	if c.Path == "" {
		return nil, fmt.Errorf("file sink requires a path")
	}

	format := c.Format
	if format == "" {
		format = "json"
	}
	enc, err := newEncoder(format)
	if err != nil {
		return nil, err
	}

	lj := &lumberjack.Logger{
		Filename:   c.Path,
		MaxSize:    c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAgeDays,
		Compress:   c.Compress,
	}
	if lj.MaxSize == 0 {
		lj.MaxSize = 100
	}

	return &writerSink{
		name:      "file:" + c.Path,
		enc:       enc,
		ws:        zapcore.Lock(zapcore.AddSync(lj)),
		threshold: threshold,
		service:   serviceName,
		closer:    lj,
	}, nil
}
