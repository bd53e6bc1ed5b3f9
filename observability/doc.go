// Package observability wires OpenTelemetry metrics and tracing for the
// auth service.
//
// Both exporters speak OTLP over HTTP. Init gives back shutdown hooks
// the binary runs on exit so the last sign-in counters are flushed.
// AuthMetrics is the service's own instrument set: sign-in outcomes by
// method, session updates, and gate redirects.
package observability
