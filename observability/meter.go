package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/ssehub/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// InitMeter initializes the OpenTelemetry meter provider.
// The returned provider must be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns the ssehub meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metric instrument names.
const (
	MetricBroadcastRounds   = "sse.broadcast.rounds"
	MetricBroadcastDuration = "sse.broadcast.duration"
	MetricDeliveries        = "sse.deliveries"
	MetricDeliveryFailures  = "sse.delivery.failures"
	MetricClientsActive     = "sse.clients.active"
	MetricRequestDuration   = "http.server.request.duration"
)

// Metrics holds the instruments recorded by the broadcast core and the
// HTTP layer.
type Metrics struct {
	broadcastRounds   metric.Int64Counter
	broadcastDuration metric.Float64Histogram
	deliveries        metric.Int64Counter
	deliveryFailures  metric.Int64Counter
	clientsActive     metric.Int64UpDownCounter
	requestDuration   metric.Float64Histogram
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	broadcastRounds, err := meter.Int64Counter(MetricBroadcastRounds,
		metric.WithDescription("Broadcast rounds by operation and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricBroadcastRounds, err)
	}

	broadcastDuration, err := meter.Float64Histogram(MetricBroadcastDuration,
		metric.WithDescription("Time from snapshot to the last settled delivery"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricBroadcastDuration, err)
	}

	deliveries, err := meter.Int64Counter(MetricDeliveries,
		metric.WithDescription("Per-client sends dispatched by broadcast rounds"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricDeliveries, err)
	}

	deliveryFailures, err := meter.Int64Counter(MetricDeliveryFailures,
		metric.WithDescription("Per-client sends that failed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricDeliveryFailures, err)
	}

	clientsActive, err := meter.Int64UpDownCounter(MetricClientsActive,
		metric.WithDescription("Currently registered streaming clients"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricClientsActive, err)
	}

	requestDuration, err := meter.Float64Histogram(MetricRequestDuration,
		metric.WithDescription("Duration of admin API requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricRequestDuration, err)
	}

	return &Metrics{
		broadcastRounds:   broadcastRounds,
		broadcastDuration: broadcastDuration,
		deliveries:        deliveries,
		deliveryFailures:  deliveryFailures,
		clientsActive:     clientsActive,
		requestDuration:   requestDuration,
	}, nil
}

// RecordBroadcast records one finished broadcast round.
// A nil receiver records nothing.
func (m *Metrics) RecordBroadcast(ctx context.Context, operation string, attempted, failed int, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if failed > 0 {
		status = "partial"
	}
	op := attribute.String("operation", operation)
	m.broadcastRounds.Add(ctx, 1, metric.WithAttributes(op, attribute.String("status", status)))
	m.broadcastDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(op))
	m.deliveries.Add(ctx, int64(attempted), metric.WithAttributes(op))
	if failed > 0 {
		m.deliveryFailures.Add(ctx, int64(failed), metric.WithAttributes(op))
	}
}

// ClientRegistered increments the active client gauge.
func (m *Metrics) ClientRegistered(ctx context.Context) {
	if m == nil {
		return
	}
	m.clientsActive.Add(ctx, 1)
}

// ClientDeregistered decrements the active client gauge.
func (m *Metrics) ClientDeregistered(ctx context.Context) {
	if m == nil {
		return
	}
	m.clientsActive.Add(ctx, -1)
}

// RecordRequest records an admin API request.
func (m *Metrics) RecordRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.response.status_code", status),
	))
}
