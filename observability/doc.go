// Package observability provides an OpenTelemetry metrics extension for
// stepflow. The MetricsExtension implements run lifecycle hooks to record
// counters for started, skipped, completed and failed runs, failed steps,
// and a run duration histogram.
//
// For per-step tracing and metrics, see the middleware package:
// middleware.Tracing() and middleware.Metrics().
package observability
