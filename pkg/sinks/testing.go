package sinks

import (
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fyrsmithlabs/logpipe/pkg/core"
)

// Observer is a sink that records every entry it receives, for test
// assertions. It wraps the zaptest observer so its filtering helpers
// are available via Logs.
type Observer struct {
	core zapcore.Core

	// Logs holds the captured entries.
	Logs *observer.ObservedLogs
}

// NewObserver creates an observer sink capturing records at or above
// enab (use core.TraceLevel to capture everything).
func NewObserver(enab zapcore.LevelEnabler) *Observer {
	c, logs := observer.New(enab)
	return &Observer{core: c, Logs: logs}
}

// Factory returns a core.SinkFactory handing out this observer, for
// wiring into a configuration model under test.
func (o *Observer) Factory() core.SinkFactory {
	return observerFactory{o}
}

type observerFactory struct {
	o *Observer
}

func (f observerFactory) Build(_ *core.Context, _ string, _ *zapcore.Level) (core.Sink, error) {
	return f.o, nil
}

func (o *Observer) Name() string {
	return "observer"
}

func (o *Observer) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	if !o.core.Enabled(ent.Level) {
		return nil
	}
	return o.core.Write(ent, fields)
}

func (o *Observer) Sync() error {
	return o.core.Sync()
}

func (o *Observer) Stop() error {
	return nil
}
