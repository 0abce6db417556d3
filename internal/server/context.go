package server

import (
	"context"
	"sync"

	"github.com/teemow/gsheets-mcp/internal/instrumentation"
	"github.com/teemow/gsheets-mcp/internal/nango"
	"github.com/teemow/gsheets-mcp/internal/sheets"
)

// ServerContext holds the shared dependencies of the MCP server: the
// Sheets gateway client, the Nango token provider and the observability
// recorders. Tool handlers receive it at registration time.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	nangoConfig   nango.Config
	tokenProvider *nango.Provider
	sheetsClient  *sheets.Client

	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger

	version string

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a server context wiring the token provider and
// gateway client together.
func NewServerContext(ctx context.Context, cfg nango.Config, provider *nango.Provider, client *sheets.Client) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:           shutdownCtx,
		cancel:        cancel,
		nangoConfig:   cfg,
		tokenProvider: provider,
		sheetsClient:  client,
	}
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// SheetsClient returns the Sheets gateway client.
func (sc *ServerContext) SheetsClient() *sheets.Client {
	return sc.sheetsClient
}

// TokenProvider returns the Nango token provider.
func (sc *ServerContext) TokenProvider() *nango.Provider {
	return sc.tokenProvider
}

// NangoConfig returns the Nango connection identity.
func (sc *ServerContext) NangoConfig() nango.Config {
	return sc.nangoConfig
}

// SetMetrics attaches the metrics recorder.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the metrics recorder, never nil. Without an attached
// recorder a zero-value one is returned, whose methods are no-ops, so
// handlers never need to nil-check.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	if sc.metrics == nil {
		return &instrumentation.Metrics{}
	}
	return sc.metrics
}

// SetAuditLogger attaches the audit logger.
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = al
}

// AuditLogger returns the audit logger, or nil when audit logging is off.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// SetVersion records the server version reported by the server info tool.
func (sc *ServerContext) SetVersion(v string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.version = v
}

// Version returns the server version.
func (sc *ServerContext) Version() string {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.version
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
