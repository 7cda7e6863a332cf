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

	"github.com/asterion-dev/pipekit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval; zero keeps the SDK default.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. Shut the returned provider down on exit to flush pending metrics.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	expOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(config.Endpoint)}
	if config.Insecure {
		expOpts = append(expOpts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, expOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
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

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments the scheduler records against.
type Metrics struct {
	runTotal         metric.Int64Counter
	runDuration      metric.Float64Histogram
	runActive        metric.Int64UpDownCounter
	instanceTotal    metric.Int64Counter
	instanceDuration metric.Float64Histogram
	errorTotal       metric.Int64Counter
}

// NewMetrics creates the pipeline instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m    Metrics
		errs []error
	)
	counter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		if err != nil {
			errs = append(errs, fmt.Errorf("creating %s: %w", name, err))
		}
		return c
	}
	histogram := func(name, desc string) metric.Float64Histogram {
		h, err := meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("s"))
		if err != nil {
			errs = append(errs, fmt.Errorf("creating %s: %w", name, err))
		}
		return h
	}

	m.runTotal = counter("run.total", "Total number of pipeline runs")
	m.runDuration = histogram("run.duration", "Duration of pipeline runs in seconds")
	m.instanceTotal = counter("instance.total", "Total number of process instance executions")
	m.instanceDuration = histogram("instance.duration", "Duration of process instance executions in seconds")
	m.errorTotal = counter("error.total", "Total errors by type and component")

	active, err := meter.Int64UpDownCounter("run.active",
		metric.WithDescription("Number of currently active pipeline runs"))
	if err != nil {
		errs = append(errs, fmt.Errorf("creating run.active: %w", err))
	}
	m.runActive = active

	if len(errs) > 0 {
		return nil, errs[0]
	}
	return &m, nil
}

// RecordRunStart increments the active run count.
func (m *Metrics) RecordRunStart(ctx context.Context, pipeline string) {
	m.runActive.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pipeline", pipeline),
	))
}

// RecordRunEnd decrements active runs and records the completed run.
func (m *Metrics) RecordRunEnd(ctx context.Context, pipeline, status string, duration time.Duration) {
	byPipeline := metric.WithAttributes(attribute.String("pipeline", pipeline))
	m.runActive.Add(ctx, -1, byPipeline)
	m.runTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pipeline", pipeline),
		attribute.String("status", status),
	))
	m.runDuration.Record(ctx, duration.Seconds(), byPipeline)
}

// RecordInstance records one process instance execution.
func (m *Metrics) RecordInstance(ctx context.Context, processor, step, status string, duration time.Duration) {
	byStep := metric.WithAttributes(
		attribute.String("processor", processor),
		attribute.String("step", step),
	)
	m.instanceTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("processor", processor),
		attribute.String("step", step),
		attribute.String("status", status),
	))
	m.instanceDuration.Record(ctx, duration.Seconds(), byStep)
}

// RecordError counts an error by type and component.
func (m *Metrics) RecordError(ctx context.Context, errType, component string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String("component", component),
	))
}
