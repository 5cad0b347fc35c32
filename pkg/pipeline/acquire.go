package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	retry "github.com/avast/retry-go/v5"

	"github.com/fyrsmithlabs/logpipe/pkg/core"
)

// Acquisition bounds. The poll interval is coarse on purpose: the
// startup window is normally a few milliseconds wide, and anything
// past the cap means the process never published a context at all.
const (
	AcquireTimeout      = 10 * time.Second
	AcquirePollInterval = 100 * time.Millisecond
)

// errNotPublished is the per-attempt failure inside the poll loop.
var errNotPublished = errors.New("context handle is still a placeholder")

// Acquirer obtains the process-wide logging context, tolerating the
// startup window in which core.Default still returns a placeholder
// because publication has not happened (or is not yet visible to this
// goroutine). It polls with a fixed delay up to a bounded deadline.
//
// This is best effort, not a synchronization primitive: it cannot
// distinguish "not yet published" from "never will be", and a
// provider that publishes concurrently with the final attempt can
// still lose the race and time out. The bounded wait is the documented
// workaround for racy publication, not a fix for it.
//
// The zero value acquires from core.Default with the default bounds.
type Acquirer struct {
	// Provider yields the current handle. Defaults to core.Default.
	Provider func() core.Handle

	// Timeout caps the total wait. Defaults to AcquireTimeout.
	Timeout time.Duration

	// Poll is the fixed delay between attempts. Defaults to
	// AcquirePollInterval.
	Poll time.Duration
}

// Acquire polls until the provider yields a real context. It returns
// ErrAcquireTimeout when the deadline passes and ErrWaitInterrupted
// when goCtx is cancelled first.
func (a Acquirer) Acquire(goCtx context.Context) (*core.Context, error) {
	provider := a.Provider
	if provider == nil {
		provider = core.Default
	}
	timeout := a.Timeout
	if timeout <= 0 {
		timeout = AcquireTimeout
	}
	poll := a.Poll
	if poll <= 0 {
		poll = AcquirePollInterval
	}

	attempts := uint(timeout / poll)
	if attempts == 0 {
		attempts = 1
	}

	c, err := retry.NewWithData[*core.Context](
		retry.Attempts(attempts),
		retry.Delay(poll),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.Context(goCtx),
	).Do(func() (*core.Context, error) {
		if c, ok := provider().(*core.Context); ok {
			return c, nil
		}
		return nil, errNotPublished
	})
	if err != nil {
		if goCtx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrWaitInterrupted, goCtx.Err())
		}
		return nil, fmt.Errorf("%w (waited %s)", ErrAcquireTimeout, timeout)
	}
	return c, nil
}
