package pipeline

import (
	"errors"
	"fmt"
)

// ErrAcquireTimeout means the logging context was never published
// within the acquisition deadline. Fatal to startup.
var ErrAcquireTimeout = errors.New("logging context not available within deadline")

// ErrWaitInterrupted means the bounded acquisition poll was cancelled
// through its context before the deadline. Surfaced, never swallowed.
var ErrWaitInterrupted = errors.New("wait for logging context interrupted")

// ErrStopped is returned by Configure after Stop.
var ErrStopped = errors.New("logging pipeline is stopped")

// ConfigurationError reports a sink that failed to build. Sinks
// attached before the failing one remain attached.
type ConfigurationError struct {
	Sink string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("building sink %q: %v", e.Sink, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
