package instrumentation

import (
	"context"
	"testing"
	"time"
)

func newTestMetrics(t *testing.T, ctx context.Context) *Metrics {
	t.Helper()

	provider, err := NewProvider(ctx, Config{
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Enabled:         true,
		MetricsExporter: "prometheus",
		TracingExporter: "none",
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })

	metrics := provider.Metrics()
	if metrics == nil {
		t.Fatal("expected metrics to be non-nil")
	}
	return metrics
}

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestMetrics(t, ctx)

	// Should not panic
	metrics.RecordHTTPRequest(ctx, "GET", "/mcp", 200, 100*time.Millisecond)
	metrics.RecordHTTPRequest(ctx, "POST", "/mcp", 500, 50*time.Millisecond)
}

func TestMetrics_RecordSheetsOperation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestMetrics(t, ctx)

	metrics.RecordSheetsOperation(ctx, "values_get", StatusSuccess, "", 200*time.Millisecond)
	metrics.RecordSheetsOperation(ctx, "values_update", StatusError, "rate_limit", 500*time.Millisecond)
	metrics.RecordSheetsOperation(ctx, "spreadsheets_create", StatusSuccess, "", 100*time.Millisecond)
}

func TestMetrics_RecordTokenRefresh(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestMetrics(t, ctx)

	metrics.RecordTokenRefresh(ctx, RefreshResultSuccess, RefreshTriggerExpiry)
	metrics.RecordTokenRefresh(ctx, RefreshResultSuccess, RefreshTriggerForced)
	metrics.RecordTokenRefresh(ctx, RefreshResultFailure, RefreshTriggerExpiry)
}

func TestMetrics_RecordToolInvocation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestMetrics(t, ctx)

	metrics.RecordToolInvocation(ctx, "sheets_get_values", StatusSuccess, 150*time.Millisecond)
	metrics.RecordToolInvocation(ctx, "sheets_update_values", StatusError, 80*time.Millisecond)
}

func TestMetrics_ActiveSessions(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestMetrics(t, ctx)

	metrics.IncrementActiveSessions(ctx)
	metrics.IncrementActiveSessions(ctx)
	metrics.DecrementActiveSessions(ctx)
}

func TestMetrics_Uninitialized(t *testing.T) {
	ctx := context.Background()

	// All recorders must be no-ops on a zero-value Metrics.
	var metrics Metrics
	metrics.RecordHTTPRequest(ctx, "GET", "/mcp", 200, time.Millisecond)
	metrics.RecordSheetsOperation(ctx, "values_get", StatusSuccess, "", time.Millisecond)
	metrics.RecordTokenRefresh(ctx, RefreshResultSuccess, RefreshTriggerExpiry)
	metrics.RecordToolInvocation(ctx, "sheets_get_values", StatusSuccess, time.Millisecond)
	metrics.IncrementActiveSessions(ctx)
	metrics.DecrementActiveSessions(ctx)
}
