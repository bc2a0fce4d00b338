// Package telemetry configures OpenTelemetry tracing.
//
// When telemetry.otlp_endpoint is empty, Init installs nothing and returns a
// no-op shutdown; the global tracer stays the default no-op one. Packages
// start spans through Tracer, so they never depend on whether an exporter is
// configured.
package telemetry
