package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gsheets-mcp/internal/instrumentation"
	"github.com/teemow/gsheets-mcp/internal/logging"
)

const (
	// DefaultHTTPAddr is the default listen address for the MCP HTTP server.
	DefaultHTTPAddr = ":8080"

	// MCPEndpointPath is the path the streamable HTTP transport is served on.
	MCPEndpointPath = "/mcp"
)

// HTTPServer hosts the MCP server over the streamable HTTP transport.
// Health endpoints are registered on the same mux so Kubernetes probes
// can reach the process without a second listener.
type HTTPServer struct {
	mcpServer  *mcpserver.MCPServer
	health     *HealthChecker
	metrics    *instrumentation.Metrics
	httpServer *http.Server
	addr       string
}

// NewHTTPServer creates an HTTP server serving the given MCP server on /mcp.
// The health checker may be nil, in which case no health endpoints are
// registered.
func NewHTTPServer(mcpServer *mcpserver.MCPServer, health *HealthChecker, addr string) *HTTPServer {
	if addr == "" {
		addr = DefaultHTTPAddr
	}
	return &HTTPServer{
		mcpServer: mcpServer,
		health:    health,
		addr:      addr,
	}
}

// SetMetrics enables per-request metrics on the HTTP handler. Must be
// called before Start.
func (s *HTTPServer) SetMetrics(m *instrumentation.Metrics) {
	s.metrics = m
}

// Start starts the HTTP server and blocks until it stops.
// Call this in a goroutine if you need non-blocking operation.
func (s *HTTPServer) Start() error {
	mux := http.NewServeMux()

	streamable := mcpserver.NewStreamableHTTPServer(s.mcpServer,
		mcpserver.WithEndpointPath(MCPEndpointPath),
		mcpserver.WithLogger(logging.NewMCPAdapter(slog.Default())),
	)
	mux.Handle(MCPEndpointPath, streamable)

	if s.health != nil {
		s.health.RegisterHealthEndpoints(mux)
	}

	var handler http.Handler = mux
	if s.metrics != nil {
		handler = s.requestMetricsHandler(mux)
	}

	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("starting MCP HTTP server", "addr", s.addr, "endpoint", MCPEndpointPath)
	return s.httpServer.ListenAndServe()
}

// requestMetricsHandler records method, path, status and duration for every
// request served by the mux.
func (s *HTTPServer) requestMetricsHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.metrics.RecordHTTPRequest(r.Context(), r.Method, r.URL.Path, recorder.status, time.Since(start))
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps streaming responses working through the wrapper.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Shutdown gracefully shuts down the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		slog.Info("shutting down MCP HTTP server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// Addr returns the configured listen address.
func (s *HTTPServer) Addr() string {
	return s.addr
}
