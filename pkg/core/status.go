package core

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// StatusLevel classifies internal status messages.
type StatusLevel int8

const (
	StatusInfo StatusLevel = iota
	StatusWarn
	StatusError
)

func (l StatusLevel) String() string {
	switch l {
	case StatusInfo:
		return "INFO"
	case StatusWarn:
		return "WARN"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Status is a single internal diagnostic message from the logging
// runtime itself (sink failures, configuration oddities).
type Status struct {
	Level   StatusLevel
	Time    time.Time
	Message string
	Err     error
}

// maxStatuses bounds the collector so a misbehaving sink cannot grow
// memory without limit. Oldest entries are dropped first.
const maxStatuses = 256

// StatusCollector accumulates internal diagnostics. It is safe for
// concurrent use.
type StatusCollector struct {
	mu      sync.Mutex
	entries []Status
	dropped int
}

func newStatusCollector() *StatusCollector {
	return &StatusCollector{}
}

func (sc *StatusCollector) add(s Status) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if len(sc.entries) >= maxStatuses {
		sc.entries = sc.entries[1:]
		sc.dropped++
	}
	sc.entries = append(sc.entries, s)
}

// Infof records an informational status.
func (sc *StatusCollector) Infof(format string, args ...interface{}) {
	sc.add(Status{Level: StatusInfo, Time: time.Now(), Message: fmt.Sprintf(format, args...)})
}

// Warnf records a warning status.
func (sc *StatusCollector) Warnf(format string, args ...interface{}) {
	sc.add(Status{Level: StatusWarn, Time: time.Now(), Message: fmt.Sprintf(format, args...)})
}

// Errorf records an error status with its cause.
func (sc *StatusCollector) Errorf(err error, format string, args ...interface{}) {
	sc.add(Status{Level: StatusError, Time: time.Now(), Message: fmt.Sprintf(format, args...), Err: err})
}

// All returns a snapshot of the accumulated statuses.
func (sc *StatusCollector) All() []Status {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	out := make([]Status, len(sc.entries))
	copy(out, sc.entries)
	return out
}

// HasErrors reports whether any error-level status has accumulated.
func (sc *StatusCollector) HasErrors() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	for _, s := range sc.entries {
		if s.Level == StatusError {
			return true
		}
	}
	return false
}

// Drain writes warning and error statuses to w and clears the
// collector. Informational statuses are discarded silently.
func (sc *StatusCollector) Drain(w io.Writer) {
	sc.mu.Lock()
	entries := sc.entries
	dropped := sc.dropped
	sc.entries = nil
	sc.dropped = 0
	sc.mu.Unlock()

	for _, s := range entries {
		if s.Level == StatusInfo {
			continue
		}
		if s.Err != nil {
			fmt.Fprintf(w, "%s %s logpipe: %s: %v\n", s.Time.Format(time.RFC3339), s.Level, s.Message, s.Err)
		} else {
			fmt.Fprintf(w, "%s %s logpipe: %s\n", s.Time.Format(time.RFC3339), s.Level, s.Message)
		}
	}
	if dropped > 0 {
		fmt.Fprintf(w, "logpipe: %d earlier status messages dropped\n", dropped)
	}
}
