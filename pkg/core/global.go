package core

import (
	"sync/atomic"
)

// Handle is what Default hands out: either the real *Context once the
// process has published one, or a placeholder during the startup
// window. Callers that need the real context must type-assert, or use
// pipeline.Acquirer which does the bounded wait for them.
type Handle interface {
	isHandle()
}

func (c *Context) isHandle() {}

// placeholder stands in for the context before Install runs, mirroring
// the substitute object an underlying logging runtime may hand to a
// thread that did not perform initialization.
type placeholder struct{}

func (placeholder) isHandle() {}

var global atomic.Pointer[Context]

// Install publishes the process-wide context. Later Install calls
// replace the handle; callers are expected to install exactly once at
// startup.
func Install(c *Context) {
	global.Store(c)
}

// Default returns the process-wide handle. Before Install it returns a
// placeholder, not nil, so callers can poll without nil checks.
func Default() Handle {
	if c := global.Load(); c != nil {
		return c
	}
	return placeholder{}
}

// Uninstall clears the published context. Only used by tests that need
// to exercise the pre-publication window.
func Uninstall() {
	global.Store(nil)
}

// Placeholder returns the handle Default yields before publication.
// Exposed for acquisition tests that inject their own providers.
func Placeholder() Handle {
	return placeholder{}
}
