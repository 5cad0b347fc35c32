// Package bridge redirects the stdlib log package into the unified
// logging context, so code still using log.Printf flows through the
// same components and sinks as everything else.
package bridge

import (
	"io"
	"log"
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/logpipe/pkg/core"
)

// ComponentName is the component legacy records are emitted under.
const ComponentName = "legacy"

// EmitLevel is the level assigned to legacy records; the stdlib log
// API carries no level of its own.
const EmitLevel = zapcore.InfoLevel

// Bridge captures the stdlib log output and replays each line into the
// context as a record on the "legacy" component.
//
// Install is idempotent and safe to call on every configuration pass.
// The bridge keeps a mirrored view of component levels (fed by the
// level-change propagator) so legacy writes are dropped cheaply when
// filtered, before any record is built.
type Bridge struct {
	mu         sync.Mutex
	ctx        *core.Context
	installed  bool
	prevOut    io.Writer
	prevFlags  int
	prevPrefix string

	viewMu sync.RWMutex
	view   map[string]zapcore.Level
}

// New creates an uninstalled bridge.
func New() *Bridge {
	return &Bridge{view: make(map[string]zapcore.Level)}
}

// Install points the stdlib log package at the given context. On first
// install the previous output, flags and prefix are captured for
// Uninstall; reinstalling only rebinds the context.
func (b *Bridge) Install(ctx *core.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.ctx = ctx
	if b.installed {
		return
	}

	b.prevOut = log.Writer()
	b.prevFlags = log.Flags()
	b.prevPrefix = log.Prefix()

	log.SetFlags(0)
	log.SetPrefix("")
	log.SetOutput(redirectWriter{b})
	b.installed = true
}

// Uninstall restores the stdlib log package to its pre-install state.
func (b *Bridge) Uninstall() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.installed {
		return
	}
	log.SetOutput(b.prevOut)
	log.SetFlags(b.prevFlags)
	log.SetPrefix(b.prevPrefix)
	b.installed = false
	b.ctx = nil
}

// Installed reports whether the bridge currently owns the stdlib log
// output.
func (b *Bridge) Installed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.installed
}

// SetLevel mirrors a component's level into the bridge's view. Wire it
// as a core.LevelListener so the view tracks reconfiguration:
//
//	ctx.OnLevelChange(b.SetLevel)
func (b *Bridge) SetLevel(name string, level zapcore.Level) {
	b.viewMu.Lock()
	b.view[name] = level
	b.viewMu.Unlock()
}

// ResetView clears the mirrored levels.
func (b *Bridge) ResetView() {
	b.viewMu.Lock()
	b.view = make(map[string]zapcore.Level)
	b.viewMu.Unlock()
}

// enabled consults the mirrored view: the "legacy" component's level if
// mirrored, else the root's, else permissive (the context still applies
// its own filtering).
func (b *Bridge) enabled(level zapcore.Level) bool {
	b.viewMu.RLock()
	defer b.viewMu.RUnlock()

	if l, ok := b.view[ComponentName]; ok {
		return level >= l && l != core.OffLevel
	}
	if l, ok := b.view[core.RootComponentName]; ok {
		return level >= l && l != core.OffLevel
	}
	return true
}

type redirectWriter struct {
	b *Bridge
}

func (w redirectWriter) Write(p []byte) (int, error) {
	if !w.b.enabled(EmitLevel) {
		return len(p), nil
	}

	w.b.mu.Lock()
	ctx := w.b.ctx
	w.b.mu.Unlock()
	if ctx == nil {
		return len(p), nil
	}

	msg := strings.TrimRight(string(p), "\n")
	ctx.Component(ComponentName).Log(EmitLevel, msg)
	return len(p), nil
}
