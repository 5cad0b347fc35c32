// Package core implements the process-wide logging context.
//
// # Overview
//
// A Context owns a tree of named components (loggers). Each component may
// carry an explicit level; components without one inherit from the nearest
// ancestor that has one, ending at the root, which always has an explicit
// level. Sinks are attached to components (normally the root) and receive
// every record emitted at or below them in the tree.
//
// Records are zapcore entries, so any zapcore encoder can render them and
// the zaptest observer can capture them in tests.
//
// # Lifecycle
//
// The hosting process creates exactly one Context, publishes it with
// Install, and tears it down with Stop at shutdown:
//
//	ctx := core.NewContext()
//	core.Install(ctx)
//	defer ctx.Stop()
//
// Until Install runs, Default returns a placeholder handle. Callers that
// need the real context during the startup window should poll through
// pipeline.Acquirer rather than type-assert Default directly.
//
// # Concurrency
//
// Emission is safe from any number of goroutines and may race with
// reconfiguration: level reads are atomic and sink fan-out snapshots the
// attachment list under a read lock. Mutations (Reset, SetLevel, Attach,
// Detach) are serialized by the configuration layer; the Context itself
// only guarantees that emission never observes a torn sink list.
//
// # Status
//
// Internal problems (a sink write failing, a factory misbehaving) are
// reported to the Context's status collector instead of being raised to
// emitters. The configuration layer drains accumulated warnings and
// errors to a diagnostic stream after each configuration pass.
package core
