package server

import (
	"context"
	"testing"

	"github.com/teemow/gsheets-mcp/internal/instrumentation"
	"github.com/teemow/gsheets-mcp/internal/nango"
)

func testNangoConfig() nango.Config {
	return nango.Config{
		ConnectionID:  "conn-123",
		IntegrationID: "google-sheet",
		BaseURL:       "https://api.nango.dev",
		SecretKey:     "secret",
	}
}

func TestNewServerContext(t *testing.T) {
	sc := NewServerContext(context.Background(), testNangoConfig(), nil, nil)

	if sc.Context() == nil {
		t.Fatal("Context() returned nil")
	}
	if sc.NangoConfig().ConnectionID != "conn-123" {
		t.Errorf("NangoConfig().ConnectionID = %q, want %q", sc.NangoConfig().ConnectionID, "conn-123")
	}
	if sc.IsShutdown() {
		t.Error("new server context should not be shutdown")
	}
}

func TestServerContext_Shutdown(t *testing.T) {
	sc := NewServerContext(context.Background(), testNangoConfig(), nil, nil)

	if err := sc.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if !sc.IsShutdown() {
		t.Error("IsShutdown() = false after Shutdown()")
	}

	select {
	case <-sc.Context().Done():
	default:
		t.Error("context not cancelled after Shutdown()")
	}

	// Second shutdown is a no-op
	if err := sc.Shutdown(); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
}

func TestServerContext_MetricsNeverNil(t *testing.T) {
	sc := NewServerContext(context.Background(), testNangoConfig(), nil, nil)

	m := sc.Metrics()
	if m == nil {
		t.Fatal("Metrics() returned nil without an attached recorder")
	}
	// Zero-value recorder must be safe to call
	m.IncrementActiveSessions(context.Background())

	attached := &instrumentation.Metrics{}
	sc.SetMetrics(attached)
	if sc.Metrics() != attached {
		t.Error("Metrics() did not return the attached recorder")
	}
}

func TestServerContext_AuditLogger(t *testing.T) {
	sc := NewServerContext(context.Background(), testNangoConfig(), nil, nil)

	if sc.AuditLogger() != nil {
		t.Error("AuditLogger() should be nil by default")
	}

	al := instrumentation.NewAuditLogger(nil)
	sc.SetAuditLogger(al)
	if sc.AuditLogger() != al {
		t.Error("AuditLogger() did not return the attached logger")
	}
}

func TestServerContext_Version(t *testing.T) {
	sc := NewServerContext(context.Background(), testNangoConfig(), nil, nil)

	if sc.Version() != "" {
		t.Errorf("Version() = %q, want empty", sc.Version())
	}
	sc.SetVersion("1.2.3")
	if sc.Version() != "1.2.3" {
		t.Errorf("Version() = %q, want %q", sc.Version(), "1.2.3")
	}
}
