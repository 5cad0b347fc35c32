package core

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap/zapcore"
)

// RootComponentName is the name of the root component. Component("")
// resolves to the root as well.
const RootComponentName = "root"

// DefaultRootLevel is the explicit level the root carries after
// NewContext and after Reset, until configuration assigns one.
const DefaultRootLevel = zapcore.InfoLevel

// levelUnset marks a component without an explicit level; it inherits
// from the nearest ancestor that has one.
const levelUnset = int32(-128)

// LevelListener observes explicit level changes on any component.
// name is the component name ("root" for the root component).
type LevelListener func(name string, level zapcore.Level)

// Context is the process-wide logging runtime: a tree of named
// components with attached sinks. See the package documentation for
// lifecycle and concurrency rules.
type Context struct {
	mu         sync.RWMutex
	components map[string]*Component
	root       *Component
	listeners  []LevelListener
	status     *StatusCollector
	stopped    atomic.Bool
}

// Component is a named node in the context's tree. Unset components
// inherit their effective level from the nearest ancestor with an
// explicit level.
type Component struct {
	ctx    *Context
	name   string
	parent *Component
	level  atomic.Int32
	sinks  []Sink // guarded by ctx.mu
}

// NewContext creates an empty context whose root is set to
// DefaultRootLevel and has no sinks attached.
func NewContext() *Context {
	c := &Context{
		components: make(map[string]*Component),
		status:     newStatusCollector(),
	}
	c.root = &Component{ctx: c, name: RootComponentName}
	c.root.level.Store(int32(DefaultRootLevel))
	return c
}

// Root returns the root component.
func (c *Context) Root() *Component {
	return c.root
}

// Component returns the component with the given dot-separated name,
// creating it (and any missing ancestors) on first use. An empty name
// or RootComponentName resolves to the root.
func (c *Context) Component(name string) *Component {
	if name == "" || name == RootComponentName {
		return c.root
	}

	c.mu.RLock()
	comp, ok := c.components[name]
	c.mu.RUnlock()
	if ok {
		return comp
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.componentLocked(name)
}

func (c *Context) componentLocked(name string) *Component {
	if name == "" || name == RootComponentName {
		return c.root
	}
	if comp, ok := c.components[name]; ok {
		return comp
	}

	parent := c.root
	if i := strings.LastIndex(name, "."); i > 0 {
		parent = c.componentLocked(name[:i])
	}

	comp := &Component{ctx: c, name: name, parent: parent}
	comp.level.Store(levelUnset)
	c.components[name] = comp
	return comp
}

// OnLevelChange registers a listener fired for every explicit level
// assignment. Listeners are dropped by Reset.
func (c *Context) OnLevelChange(fn LevelListener) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

func (c *Context) notifyLevelChange(name string, level zapcore.Level) {
	c.mu.RLock()
	listeners := make([]LevelListener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.RUnlock()

	for _, fn := range listeners {
		fn(name, level)
	}
}

// Reset detaches and stops all sinks, clears every explicit level,
// restores the root to DefaultRootLevel and drops level listeners.
// Named components survive so handles held by emitters stay valid.
func (c *Context) Reset() {
	c.mu.Lock()
	var stopped []Sink
	stopped = append(stopped, c.root.sinks...)
	c.root.sinks = nil
	c.root.level.Store(int32(DefaultRootLevel))
	for _, comp := range c.components {
		stopped = append(stopped, comp.sinks...)
		comp.sinks = nil
		comp.level.Store(levelUnset)
	}
	c.listeners = nil
	c.mu.Unlock()

	for _, s := range stopped {
		if err := s.Stop(); err != nil {
			c.status.Errorf(err, "stopping sink %s during reset", s.Name())
		}
	}
}

// Stop resets the context and marks it terminal. Emission after Stop is
// dropped; configuration after Stop is a caller error.
func (c *Context) Stop() {
	if c.stopped.Swap(true) {
		return
	}
	c.Reset()
}

// Stopped reports whether Stop has been called.
func (c *Context) Stopped() bool {
	return c.stopped.Load()
}

// Levels returns a snapshot of every explicit level assignment,
// keyed by component name. The root is always present.
func (c *Context) Levels() map[string]zapcore.Level {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]zapcore.Level, len(c.components)+1)
	out[RootComponentName] = zapcore.Level(c.root.level.Load())
	for name, comp := range c.components {
		if v := comp.level.Load(); v != levelUnset {
			out[name] = zapcore.Level(v)
		}
	}
	return out
}

// Status returns the context's status collector.
func (c *Context) Status() *StatusCollector {
	return c.status
}

// Sync flushes every attached sink.
func (c *Context) Sync() {
	c.mu.RLock()
	var sinks []Sink
	sinks = append(sinks, c.root.sinks...)
	for _, comp := range c.components {
		sinks = append(sinks, comp.sinks...)
	}
	c.mu.RUnlock()

	for _, s := range sinks {
		if err := s.Sync(); err != nil {
			c.status.Warnf("sync of sink %s failed: %v", s.Name(), err)
		}
	}
}

// Name returns the component's full dot-separated name.
func (m *Component) Name() string {
	return m.name
}

// SetLevel assigns an explicit level and notifies level listeners.
func (m *Component) SetLevel(level zapcore.Level) {
	m.level.Store(int32(level))
	m.ctx.notifyLevelChange(m.name, level)
}

// ClearLevel removes the explicit level so the component inherits
// again. The root's level cannot be cleared.
func (m *Component) ClearLevel() {
	if m.parent == nil {
		return
	}
	m.level.Store(levelUnset)
	m.ctx.notifyLevelChange(m.name, m.Effective())
}

// Level returns the explicit level and whether one is set.
func (m *Component) Level() (zapcore.Level, bool) {
	v := m.level.Load()
	if v == levelUnset {
		return 0, false
	}
	return zapcore.Level(v), true
}

// Effective returns the level that actually filters this component:
// its own explicit level, or the nearest ancestor's.
func (m *Component) Effective() zapcore.Level {
	for n := m; n != nil; n = n.parent {
		if v := n.level.Load(); v != levelUnset {
			return zapcore.Level(v)
		}
	}
	return DefaultRootLevel
}

// Enabled reports whether a record at the given level would be emitted.
func (m *Component) Enabled(level zapcore.Level) bool {
	if m.ctx.stopped.Load() {
		return false
	}
	eff := m.Effective()
	return eff != OffLevel && level >= eff
}

// Attach adds a sink to this component. Records emitted here or below
// in the tree are written to it, in attachment order.
func (m *Component) Attach(s Sink) {
	m.ctx.mu.Lock()
	m.sinks = append(m.sinks, s)
	m.ctx.mu.Unlock()
}

// DetachAll removes and stops every sink attached to this component.
func (m *Component) DetachAll() {
	m.ctx.mu.Lock()
	detached := m.sinks
	m.sinks = nil
	m.ctx.mu.Unlock()

	for _, s := range detached {
		if err := s.Stop(); err != nil {
			m.ctx.status.Errorf(err, "stopping detached sink %s", s.Name())
		}
	}
}

// Sinks returns a snapshot of the sinks attached to this component.
func (m *Component) Sinks() []Sink {
	m.ctx.mu.RLock()
	defer m.ctx.mu.RUnlock()
	out := make([]Sink, len(m.sinks))
	copy(out, m.sinks)
	return out
}

// Log emits a record at the given level if enabled. The record is
// written to the sinks of this component and every ancestor up to the
// root.
func (m *Component) Log(level zapcore.Level, msg string, fields ...zapcore.Field) {
	if !m.Enabled(level) {
		return
	}
	ent := zapcore.Entry{
		Level:      level,
		Time:       time.Now(),
		LoggerName: m.name,
		Message:    msg,
	}
	m.write(ent, fields)
}

func (m *Component) write(ent zapcore.Entry, fields []zapcore.Field) {
	m.ctx.mu.RLock()
	var sinks []Sink
	for n := m; n != nil; n = n.parent {
		sinks = append(sinks, n.sinks...)
	}
	m.ctx.mu.RUnlock()

	for _, s := range sinks {
		if err := s.Write(ent, fields); err != nil {
			m.ctx.status.Errorf(err, "sink %s failed to write record", s.Name())
		}
	}
}

// Leveled convenience emitters.

func (m *Component) Trace(msg string, fields ...zapcore.Field) {
	m.Log(TraceLevel, msg, fields...)
}

func (m *Component) Debug(msg string, fields ...zapcore.Field) {
	m.Log(zapcore.DebugLevel, msg, fields...)
}

func (m *Component) Info(msg string, fields ...zapcore.Field) {
	m.Log(zapcore.InfoLevel, msg, fields...)
}

func (m *Component) Warn(msg string, fields ...zapcore.Field) {
	m.Log(zapcore.WarnLevel, msg, fields...)
}

func (m *Component) Error(msg string, fields ...zapcore.Field) {
	m.Log(zapcore.ErrorLevel, msg, fields...)
}
