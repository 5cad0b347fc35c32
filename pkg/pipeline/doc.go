// Package pipeline configures the process-wide logging context.
//
// # Overview
//
// The pipeline has two entry points. Bootstrap is the minimal early
// setup for the window before full configuration exists: console sink,
// fixed threshold, legacy bridge installed. Factory.Configure is the
// real thing: it applies a declarative Config (global level,
// per-component overrides, ordered sink list) to the context,
// registers the management endpoint exactly once per process, and
// attaches the Prometheus instrumentation sink.
//
//	ctx := core.NewContext()
//	core.Install(ctx)
//
//	cfg, err := pipeline.LoadWithFile("/etc/myservice/logging.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	f := pipeline.NewFactory(cfg, pipeline.WithContext(ctx))
//	if err := f.Configure(context.Background(), prometheus.DefaultRegisterer, "myservice"); err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Stop()
//
// Configure has hot-reload semantics: calling it again fully replaces
// the previous level and sink state, last call wins. If a sink fails
// to build, sinks attached earlier in the list stay attached and the
// call reports a ConfigurationError; this partial-attachment window is
// a known gap, not a retry point.
//
// # Concurrency
//
// Concurrent Configure calls are serialized by a process-wide
// configuration lock. Management-endpoint registration is serialized
// by a second, independent lock in package management; N concurrent
// Configure calls produce exactly one registration. Emission is never
// blocked by either lock.
//
// # Acquisition
//
// When a Factory is built without a context, Configure acquires the
// process-wide handle through Acquirer: a bounded poll (10s cap, 100ms
// interval) against core.Default, tolerating the startup window where
// the handle is not yet published. See Acquirer for the limits of that
// guarantee.
package pipeline
