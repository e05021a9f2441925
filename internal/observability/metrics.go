package observability

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/agromarket/agromarket-go/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/resource"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

type clientMetrics struct {
	sessionOpCounter    metric.Int64Counter
	tokenRefreshCounter metric.Int64Counter
	logoutCounter       metric.Int64Counter
	apiCallCounter      metric.Int64Counter
	analysisCounter     metric.Int64Counter
}

var (
	metricsMu sync.RWMutex
	metrics   *clientMetrics
)

func InitMetrics(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sdkmetric.MeterProvider, error) {
	if !cfg.OTELEnabled {
		mp := sdkmetric.NewMeterProvider()
		otel.SetMeterProvider(mp)
		logger.Debug("otel metrics disabled")
		return mp, nil
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.OTELExporterOTLPEndpoint)}
	if cfg.OTELExporterOTLPInsecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp metric exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", cfg.OTELServiceName),
			attribute.String("deployment.environment", cfg.OTELEnvironment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create metric resource: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.OTELMetricsExportInterval))
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	otel.SetMeterProvider(mp)

	meter := mp.Meter("agromarket-client")
	sessionOps, err := meter.Int64Counter("session.store.operations")
	if err != nil {
		return nil, err
	}
	refreshes, err := meter.Int64Counter("auth.refresh.attempts")
	if err != nil {
		return nil, err
	}
	logouts, err := meter.Int64Counter("auth.logout.events")
	if err != nil {
		return nil, err
	}
	apiCalls, err := meter.Int64Counter("api.facade.calls")
	if err != nil {
		return nil, err
	}
	analyses, err := meter.Int64Counter("diagnose.inference.calls")
	if err != nil {
		return nil, err
	}

	metricsMu.Lock()
	metrics = &clientMetrics{
		sessionOpCounter:    sessionOps,
		tokenRefreshCounter: refreshes,
		logoutCounter:       logouts,
		apiCallCounter:      apiCalls,
		analysisCounter:     analyses,
	}
	metricsMu.Unlock()

	logger.Info("otel metrics initialized", "endpoint", cfg.OTELExporterOTLPEndpoint)
	return mp, nil
}

func RecordSessionOp(op, outcome string) {
	metricsMu.RLock()
	m := metrics
	metricsMu.RUnlock()
	if m == nil {
		return
	}
	m.sessionOpCounter.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String("op", op),
			attribute.String("outcome", outcome),
		),
	)
}

func RecordTokenRefresh(status string) {
	metricsMu.RLock()
	m := metrics
	metricsMu.RUnlock()
	if m == nil {
		return
	}
	m.tokenRefreshCounter.Add(context.Background(), 1, metric.WithAttributes(attribute.String("status", status)))
}

func RecordLogout(trigger string) {
	metricsMu.RLock()
	m := metrics
	metricsMu.RUnlock()
	if m == nil {
		return
	}
	m.logoutCounter.Add(context.Background(), 1, metric.WithAttributes(attribute.String("trigger", trigger)))
}

func RecordAPICall(group, outcome string) {
	metricsMu.RLock()
	m := metrics
	metricsMu.RUnlock()
	if m == nil {
		return
	}
	m.apiCallCounter.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String("group", group),
			attribute.String("outcome", outcome),
		),
	)
}

func RecordAnalysis(outcome string) {
	metricsMu.RLock()
	m := metrics
	metricsMu.RUnlock()
	if m == nil {
		return
	}
	m.analysisCounter.Add(context.Background(), 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
