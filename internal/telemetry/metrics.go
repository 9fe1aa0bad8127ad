package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// SyncMetricsMeterName is the name used for the sync metrics meter
	SyncMetricsMeterName = "github.com/grocerly/grocery-sync-server/sync"

	// ListMetricsMeterName is the name used for the list metrics meter
	ListMetricsMeterName = "github.com/grocerly/grocery-sync-server/lists"
)

// SyncMetrics holds the OpenTelemetry instruments for sync cycle metrics
type SyncMetrics struct {
	refreshDuration metric.Float64Histogram
	refreshFailures metric.Int64Counter
	tokenRefreshes  metric.Int64Counter
}

// NewSyncMetrics creates a new SyncMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewSyncMetrics(provider metric.MeterProvider) (*SyncMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(SyncMetricsMeterName)

	refreshDuration, err := meter.Float64Histogram(
		"grocery_sync_refresh_duration_seconds",
		metric.WithDescription("Duration of list refresh cycles in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60),
	)
	if err != nil {
		return nil, err
	}

	refreshFailures, err := meter.Int64Counter(
		"grocery_sync_refresh_failures_total",
		metric.WithDescription("Total number of failed refresh cycles by reason"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	tokenRefreshes, err := meter.Int64Counter(
		"grocery_sync_token_refreshes_total",
		metric.WithDescription("Total number of access token refresh attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	return &SyncMetrics{
		refreshDuration: refreshDuration,
		refreshFailures: refreshFailures,
		tokenRefreshes:  tokenRefreshes,
	}, nil
}

// RecordRefreshDuration records the duration of a refresh cycle for an account
func (m *SyncMetrics) RecordRefreshDuration(ctx context.Context, account string, duration time.Duration, success bool) {
	if m == nil || m.refreshDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("account", account),
		attribute.Bool("success", success),
	}

	m.refreshDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordRefreshFailure records a failed refresh cycle with its reason tag
func (m *SyncMetrics) RecordRefreshFailure(ctx context.Context, account, reason string) {
	if m == nil || m.refreshFailures == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("account", account),
		attribute.String("reason", reason),
	}

	m.refreshFailures.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordTokenRefresh records an access token refresh attempt
func (m *SyncMetrics) RecordTokenRefresh(ctx context.Context, account string, success bool) {
	if m == nil || m.tokenRefreshes == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("account", account),
		attribute.Bool("success", success),
	}

	m.tokenRefreshes.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// ListMetrics holds the OpenTelemetry instruments for list snapshot metrics
type ListMetrics struct {
	listsTotal metric.Int64Gauge
	itemsTotal metric.Int64Gauge
}

// NewListMetrics creates a new ListMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewListMetrics(provider metric.MeterProvider) (*ListMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(ListMetricsMeterName)

	listsTotal, err := meter.Int64Gauge(
		"grocery_sync_lists_total",
		metric.WithDescription("Number of lists in the current snapshot"),
		metric.WithUnit("{list}"),
	)
	if err != nil {
		return nil, err
	}

	itemsTotal, err := meter.Int64Gauge(
		"grocery_sync_items_total",
		metric.WithDescription("Number of open items in the current snapshot"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, err
	}

	return &ListMetrics{
		listsTotal: listsTotal,
		itemsTotal: itemsTotal,
	}, nil
}

// RecordSnapshot records the size of the current consolidated snapshot
func (m *ListMetrics) RecordSnapshot(ctx context.Context, account string, lists, items int64) {
	if m == nil || m.listsTotal == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("account", account),
	}

	m.listsTotal.Record(ctx, lists, metric.WithAttributes(attrs...))
	m.itemsTotal.Record(ctx, items, metric.WithAttributes(attrs...))
}
