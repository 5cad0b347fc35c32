// Package sinks provides the bundled sink implementations: console,
// rotating file, and the Prometheus instrumentation sink, plus an
// observer sink for tests.
package sinks
