package sinks

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/logpipe/pkg/core"
)

// Instrumented counts every record that reaches it by level. Attach it
// to the root so the counter reflects everything the pipeline emits.
type Instrumented struct {
	records *prometheus.CounterVec
	stopped atomic.Bool
}

// NewInstrumented creates the instrumentation sink against the given
// registerer. Registration is idempotent: if the counter already exists
// in the registry (a prior configuration pass registered it), the
// existing collector is reused so repeated configuration stays safe.
func NewInstrumented(reg prometheus.Registerer) (*Instrumented, error) {
	records := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logpipe_log_records_total",
			Help: "Total log records emitted through the pipeline, labeled by level.",
		},
		[]string{"level"},
	)

	if err := reg.Register(records); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, fmt.Errorf("registering log record counter: %w", err)
		}
		records = already.ExistingCollector.(*prometheus.CounterVec)
	}

	return &Instrumented{records: records}, nil
}

func (s *Instrumented) Name() string {
	return "instrumented"
}

func (s *Instrumented) Write(ent zapcore.Entry, _ []zapcore.Field) error {
	if s.stopped.Load() {
		return nil
	}
	s.records.WithLabelValues(core.LevelString(ent.Level)).Inc()
	return nil
}

func (s *Instrumented) Sync() error {
	return nil
}

// Stop drops further counting. The collector stays registered so the
// series survives reconfiguration instead of resetting to zero.
func (s *Instrumented) Stop() error {
	s.stopped.Store(true)
	return nil
}
