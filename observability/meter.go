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

	"github.com/kbukum/rddkit/logger"
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
	// Interval is the metric export interval.
	Interval time.Duration
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

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The returned provider must be shut down on exit.
func InitMeter(ctx context.Context, cfg *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg.ServiceName, cfg.ServiceVersion, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// StageMetrics holds the instruments recorded for every executed stage.
type StageMetrics struct {
	stageTotal    metric.Int64Counter
	stageDuration metric.Float64Histogram
	stageRecords  metric.Int64Counter
	errorTotal    metric.Int64Counter
}

// NewStageMetrics creates stage instruments on the given meter.
func NewStageMetrics(meter metric.Meter) (*StageMetrics, error) {
	stageTotal, err := meter.Int64Counter("rdd.stage.total",
		metric.WithDescription("Total number of executed stages"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rdd.stage.total counter: %w", err)
	}

	stageDuration, err := meter.Float64Histogram("rdd.stage.duration",
		metric.WithDescription("Duration of stages in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rdd.stage.duration histogram: %w", err)
	}

	stageRecords, err := meter.Int64Counter("rdd.stage.records",
		metric.WithDescription("Records produced by stages"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rdd.stage.records counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("rdd.stage.errors",
		metric.WithDescription("Failed stages by operation and error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rdd.stage.errors counter: %w", err)
	}

	return &StageMetrics{
		stageTotal:    stageTotal,
		stageDuration: stageDuration,
		stageRecords:  stageRecords,
		errorTotal:    errorTotal,
	}, nil
}

// RecordStage records a finished stage.
func (m *StageMetrics) RecordStage(ctx context.Context, op, status string, records int, duration time.Duration) {
	m.stageTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrStageOp, op),
		attribute.String(AttrStatus, status),
	))
	m.stageDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrStageOp, op),
	))
	if records > 0 {
		m.stageRecords.Add(ctx, int64(records), metric.WithAttributes(
			attribute.String(AttrStageOp, op),
		))
	}
}

// RecordError records a failed stage by operation and error code.
func (m *StageMetrics) RecordError(ctx context.Context, op, code string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrStageOp, op),
		attribute.String(AttrErrorCode, code),
	))
}
