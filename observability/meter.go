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

	"github.com/kbukum/fnkit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string `mapstructure:"service_name"`
	// ServiceVersion is the version of the service.
	ServiceVersion string `mapstructure:"service_version"`
	// Environment is the deployment environment (development, staging, production).
	Environment string `mapstructure:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `mapstructure:"endpoint"`
	// Insecure allows insecure connections (for development).
	Insecure bool `mapstructure:"insecure"`
	// Interval is the metric export interval.
	Interval time.Duration `mapstructure:"interval"`
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter installs an OTLP/HTTP meter provider as the otel global.
// The returned provider must be shut down on exit to flush pending metrics.
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

	logger.Debug("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metric instrument names.
const (
	MetricRunTotal     = "pipeline.run.total"
	MetricRunDuration  = "pipeline.run.duration"
	MetricErrorTotal   = "pipeline.error.total"
	MetricElementTotal = "pipeline.element.total"
)

// Metrics holds the instruments recorded for pipeline runs.
type Metrics struct {
	runTotal     metric.Int64Counter
	runDuration  metric.Float64Histogram
	errorTotal   metric.Int64Counter
	elementTotal metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	runTotal, err := meter.Int64Counter(MetricRunTotal,
		metric.WithDescription("Total number of pipeline runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRunTotal, err)
	}

	runDuration, err := meter.Float64Histogram(MetricRunDuration,
		metric.WithDescription("Duration of pipeline runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricRunDuration, err)
	}

	errorTotal, err := meter.Int64Counter(MetricErrorTotal,
		metric.WithDescription("Total pipeline errors by code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricErrorTotal, err)
	}

	elementTotal, err := meter.Int64Counter(MetricElementTotal,
		metric.WithDescription("Total elements consumed from pipeline output"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricElementTotal, err)
	}

	return &Metrics{
		runTotal:     runTotal,
		runDuration:  runDuration,
		errorTotal:   errorTotal,
		elementTotal: elementTotal,
	}, nil
}

// RecordRun records one pipeline run.
func (m *Metrics) RecordRun(ctx context.Context, pipeline, status string, duration time.Duration) {
	m.runTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrPipeline, pipeline),
		attribute.String(AttrStatus, status),
	))
	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrPipeline, pipeline),
	))
}

// RecordError records a pipeline error by code.
func (m *Metrics) RecordError(ctx context.Context, pipeline, code string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrPipeline, pipeline),
		attribute.String(AttrErrorCode, code),
	))
}

// RecordElements adds n to the consumed element count of a pipeline.
func (m *Metrics) RecordElements(ctx context.Context, pipeline string, n int64) {
	m.elementTotal.Add(ctx, n, metric.WithAttributes(
		attribute.String(AttrPipeline, pipeline),
	))
}
