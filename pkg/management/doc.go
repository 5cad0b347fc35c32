// Package management provides the process-wide management namespace
// for the logging pipeline: a registry of named introspection
// endpoints, and the live level configurator registered under the
// well-known name.
//
// Registration is exactly-once per process: concurrent configuration
// passes may all call RegisterOnce, and exactly one of them registers
// the configurator; the rest are no-ops. The registry itself rejects
// duplicate names, so a lost race despite the check surfaces as a
// RegistrationError rather than silently replacing a live endpoint.
//
// Endpoints are plain http.Handlers. Hosts mount them wherever their
// admin surface lives:
//
//	h, _ := management.DefaultRegistry().Lookup(management.WellKnownName)
//	adminMux.Handle("/logging/", http.StripPrefix("/logging", h))
package management
