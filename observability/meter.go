package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/sessionauth/logger"
)

// InitMeter installs a global OTLP/HTTP meter provider. Callers shut it
// down on exit.
func InitMeter(ctx context.Context, cfg Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.MetricInterval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.MetricInterval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.MetricInterval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the auth layer's instruments. A nil *Metrics records
// nothing.
type Metrics struct {
	operationTotal    metric.Int64Counter
	operationDuration metric.Float64Histogram
	authenticateTotal metric.Int64Counter
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	operationTotal, err := meter.Int64Counter("auth.operation.total",
		metric.WithDescription("Session endpoint calls by operation and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.operation.total counter: %w", err)
	}

	operationDuration, err := meter.Float64Histogram("auth.operation.duration",
		metric.WithDescription("Duration of session endpoint calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.operation.duration histogram: %w", err)
	}

	authenticateTotal, err := meter.Int64Counter("auth.authenticate.total",
		metric.WithDescription("Authenticate middleware results"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.authenticate.total counter: %w", err)
	}

	return &Metrics{
		operationTotal:    operationTotal,
		operationDuration: operationDuration,
		authenticateTotal: authenticateTotal,
	}, nil
}

// RecordOperation records one completed session endpoint call.
func (m *Metrics) RecordOperation(ctx context.Context, operation, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.operationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
	m.operationDuration.Record(ctx, seconds, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordAuthenticate records the terminal state of one Authenticate pass
// (anonymous, attached, rejected, invalid).
func (m *Metrics) RecordAuthenticate(ctx context.Context, result string) {
	if m == nil {
		return
	}
	m.authenticateTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
