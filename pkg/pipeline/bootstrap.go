package pipeline

import (
	"context"
	"io"

	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/logpipe/pkg/sinks"
)

// DefaultBootstrapLevel is the console threshold Bootstrap applies
// when none is given.
const DefaultBootstrapLevel = zapcore.WarnLevel

type bootstrapOpts struct {
	writer   io.Writer
	acquirer Acquirer
}

// BootstrapOption customizes Bootstrap, mainly for tests.
type BootstrapOption func(*bootstrapOpts)

// WithBootstrapWriter redirects the bootstrap console sink.
func WithBootstrapWriter(w io.Writer) BootstrapOption {
	return func(o *bootstrapOpts) { o.writer = w }
}

// WithBootstrapAcquirer overrides the acquirer.
func WithBootstrapAcquirer(a Acquirer) BootstrapOption {
	return func(o *bootstrapOpts) { o.acquirer = a }
}

// Bootstrap is BootstrapAt with DefaultBootstrapLevel.
func Bootstrap(goCtx context.Context, opts ...BootstrapOption) error {
	return BootstrapAt(goCtx, DefaultBootstrapLevel, opts...)
}

// BootstrapAt performs the minimal early setup usable before full
// configuration exists: acquire the context, install the legacy
// bridge, detach whatever is on the root, and attach a single console
// sink filtered at threshold. Repeated calls fully replace prior
// bootstrap state; a later Factory.Configure replaces it again.
func BootstrapAt(goCtx context.Context, threshold zapcore.Level, opts ...BootstrapOption) error {
	var o bootstrapOpts
	for _, opt := range opts {
		opt(&o)
	}

	c, err := o.acquirer.Acquire(goCtx)
	if err != nil {
		return err
	}

	defaultBridge.Install(c)

	root := c.Root()
	root.DetachAll()

	sink, err := sinks.ConsoleConfig{Writer: o.writer}.Build(c, "", &threshold)
	if err != nil {
		return &ConfigurationError{Sink: "console", Err: err}
	}
	root.Attach(sink)
	return nil
}
