// Package observability wires OpenTelemetry tracing and metrics for ssehub.
//
// Setup installs OTLP/HTTP tracer and meter providers when enabled:
//
//	shutdown, err := observability.Setup(ctx, cfg.Observability)
//	defer shutdown(ctx)
//
// Metrics holds the broadcast instruments (rounds, duration, deliveries,
// failures, active clients) recorded by the sse package:
//
//	metrics, err := observability.NewMetrics(observability.Meter())
//	metrics.RecordBroadcast(ctx, "send_text", attempted, failed, d)
//
// StartSpan and SetSpanError trace individual broadcast rounds.
package observability
