package management

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/fyrsmithlabs/logpipe/pkg/core"
)

// WellKnownName is the identity the logging configurator endpoint is
// registered under. At most one live registration exists per process.
const WellKnownName = "logpipe:type=Logging"

// ErrAlreadyRegistered is returned by Register when the name is taken.
var ErrAlreadyRegistered = errors.New("endpoint already registered")

// RegistrationError wraps any failure to register a management
// endpoint. These indicate host misconfiguration and are fatal to the
// configuring call; they are not retried.
type RegistrationError struct {
	Name string
	Err  error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("registering management endpoint %q: %v", e.Name, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// Registry is a namespace of named management endpoints. The zero
// value is not usable; create one with NewRegistry or use the
// process-wide DefaultRegistry.
type Registry struct {
	mu        sync.RWMutex
	endpoints map[string]http.Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{endpoints: make(map[string]http.Handler)}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds an endpoint under name. Names follow the
// "domain:key=value" shape; malformed names and duplicates are
// rejected.
func (r *Registry) Register(name string, h http.Handler) error {
	if err := validateName(name); err != nil {
		return err
	}
	if h == nil {
		return fmt.Errorf("endpoint %q: handler is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.endpoints[name]; ok {
		return fmt.Errorf("%q: %w", name, ErrAlreadyRegistered)
	}
	r.endpoints[name] = h
	return nil
}

// Deregister removes an endpoint, reporting whether it was present.
// Mainly for tests; production registrations live until process exit.
func (r *Registry) Deregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.endpoints[name]
	delete(r.endpoints, name)
	return ok
}

// Registered reports whether name has a live endpoint.
func (r *Registry) Registered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.endpoints[name]
	return ok
}

// Lookup returns the endpoint registered under name.
func (r *Registry) Lookup(name string) (http.Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.endpoints[name]
	return h, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.endpoints))
	for name := range r.endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validateName(name string) error {
	domain, props, ok := strings.Cut(name, ":")
	if !ok || domain == "" || props == "" {
		return fmt.Errorf("malformed endpoint name %q: want \"domain:key=value\"", name)
	}
	if k, v, ok := strings.Cut(props, "="); !ok || k == "" || v == "" {
		return fmt.Errorf("malformed endpoint name %q: want \"domain:key=value\"", name)
	}
	return nil
}

// registrationMu serializes the check-then-register sequence across
// concurrent configuration passes. Deliberately separate from the
// configuration lock: registration and reconfiguration have different
// contention patterns.
var registrationMu sync.Mutex

// RegisterOnce registers the live level configurator for ctx under
// WellKnownName, exactly once per process. If the endpoint is already
// registered the call is a no-op. Any registration failure is wrapped
// in a RegistrationError.
func RegisterOnce(reg *Registry, ctx *core.Context, serviceName string) error {
	if reg == nil {
		reg = DefaultRegistry()
	}

	registrationMu.Lock()
	defer registrationMu.Unlock()

	if reg.Registered(WellKnownName) {
		return nil
	}
	if err := reg.Register(WellKnownName, NewConfigurator(ctx, serviceName)); err != nil {
		return &RegistrationError{Name: WellKnownName, Err: err}
	}
	return nil
}
