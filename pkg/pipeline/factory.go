package pipeline

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fyrsmithlabs/logpipe/pkg/bridge"
	"github.com/fyrsmithlabs/logpipe/pkg/core"
	"github.com/fyrsmithlabs/logpipe/pkg/management"
	"github.com/fyrsmithlabs/logpipe/pkg/sinks"
)

// configureMu is the process-wide configuration lock: it serializes
// reset-and-reapply across concurrent Configure calls, including calls
// through different Factory values. It does not serialize against
// emission, which stays lock-free.
var configureMu sync.Mutex

// defaultBridge is the shared legacy-API adapter. Bootstrap and every
// Factory built without WithBridge install this one, so repeated
// installs stay idempotent across entry points.
var defaultBridge = bridge.New()

// Factory applies a Config to the logging context.
type Factory struct {
	config   *Config
	ctx      *core.Context
	bridge   *bridge.Bridge
	registry *management.Registry
	acquirer Acquirer
	diag     io.Writer
}

// Option customizes a Factory.
type Option func(*Factory)

// WithContext binds the factory to an already-held context instead of
// acquiring the process-wide one on first Configure.
func WithContext(ctx *core.Context) Option {
	return func(f *Factory) { f.ctx = ctx }
}

// WithRegistry overrides the management registry. Defaults to the
// process-wide one.
func WithRegistry(r *management.Registry) Option {
	return func(f *Factory) { f.registry = r }
}

// WithDiagnostics overrides where internal runtime statuses are
// drained. Defaults to stderr.
func WithDiagnostics(w io.Writer) Option {
	return func(f *Factory) { f.diag = w }
}

// WithAcquirer overrides the context acquirer, mainly to shorten the
// bounds in tests.
func WithAcquirer(a Acquirer) Option {
	return func(f *Factory) { f.acquirer = a }
}

// WithBridge overrides the legacy bridge. Tests use this to avoid
// fighting over the process-wide stdlib log output.
func WithBridge(b *bridge.Bridge) Option {
	return func(f *Factory) { f.bridge = b }
}

// NewFactory creates a factory for the given model. A nil cfg means
// NewDefaultConfig.
func NewFactory(cfg *Config, opts ...Option) *Factory {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	f := &Factory{
		config: cfg,
		bridge: defaultBridge,
		diag:   os.Stderr,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Context returns the context the factory holds, nil before the first
// Configure when none was injected.
func (f *Factory) Context() *core.Context {
	configureMu.Lock()
	defer configureMu.Unlock()
	return f.ctx
}

// Configure applies the model to the context: reset, levels, sink
// attachment, management registration, instrumentation. Safe to call
// repeatedly; each call fully replaces the previous state. goCtx bounds
// only the context acquisition.
//
// Error handling follows the severity of the step: acquisition and
// registration failures abort the call outright; a sink build failure
// aborts the remaining attachments but leaves earlier sinks attached
// and reports a ConfigurationError; internal runtime statuses are
// drained to the diagnostic writer without failing the call.
func (f *Factory) Configure(goCtx context.Context, reg prometheus.Registerer, serviceName string) error {
	configureMu.Lock()
	if f.ctx == nil {
		c, err := f.acquirer.Acquire(goCtx)
		if err != nil {
			configureMu.Unlock()
			return err
		}
		f.ctx = c
	}
	// f.ctx is written only under configureMu; everything past the
	// unlock works through this local.
	ctx := f.ctx

	// Hijack the legacy API before levels are applied so stdlib log
	// writes flow through the tree from the first assignment onward.
	f.bridge.Install(ctx)

	if ctx.Stopped() {
		configureMu.Unlock()
		return ErrStopped
	}
	root := f.configureLevels()
	configureMu.Unlock()

	for _, sc := range f.config.Sinks {
		factory, threshold, err := sc.factory()
		if err == nil {
			var sink core.Sink
			sink, err = factory.Build(ctx, serviceName, threshold)
			if err == nil {
				root.Attach(sink)
				continue
			}
		}
		ctx.Status().Drain(f.diag)
		return &ConfigurationError{Sink: sc.name(), Err: err}
	}

	ctx.Status().Drain(f.diag)

	if err := management.RegisterOnce(f.registry, ctx, serviceName); err != nil {
		return err
	}

	instr, err := sinks.NewInstrumented(reg)
	if err != nil {
		return &ConfigurationError{Sink: "instrumented", Err: err}
	}
	root.Attach(instr)

	return nil
}

// configureLevels resets the tree and reapplies the model's levels
// under the configuration lock. The level-change propagator keeps the
// legacy bridge's view in step with every assignment that follows,
// including live changes through the management endpoint.
func (f *Factory) configureLevels() *core.Component {
	f.ctx.Reset()
	f.bridge.ResetView()
	f.ctx.OnLevelChange(f.bridge.SetLevel)

	root := f.ctx.Root()
	root.SetLevel(f.config.Level.Zap())
	for name, level := range f.config.Loggers {
		f.ctx.Component(name).SetLevel(level.Zap())
	}
	return root
}

// Stop stops the context, releasing everything the sinks own. Terminal:
// a later Configure on the same context fails with ErrStopped. Stop
// must not race a Configure call in flight; callers serialize that
// externally.
func (f *Factory) Stop() {
	configureMu.Lock()
	ctx := f.ctx
	configureMu.Unlock()
	if ctx != nil {
		ctx.Stop()
	}
}
