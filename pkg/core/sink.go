package core

import (
	"go.uber.org/zap/zapcore"
)

// Sink is an output destination for emitted records. Implementations
// must be safe for concurrent Write calls.
type Sink interface {
	// Name identifies the sink in status messages and tests.
	Name() string

	// Write renders or forwards a single record. Errors are reported to
	// the context's status collector, never to the emitter.
	Write(ent zapcore.Entry, fields []zapcore.Field) error

	// Sync flushes any buffered records.
	Sync() error

	// Stop releases resources owned by the sink. A stopped sink drops
	// further writes.
	Stop() error
}

// SinkFactory builds a Sink bound to a context. The optional threshold
// discards records below it before they reach the sink; nil means no
// sink-side filtering beyond component levels.
type SinkFactory interface {
	Build(ctx *Context, serviceName string, threshold *zapcore.Level) (Sink, error)
}
