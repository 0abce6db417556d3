package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gsheets-mcp/internal/instrumentation"
	"github.com/teemow/gsheets-mcp/internal/nango"
	"github.com/teemow/gsheets-mcp/internal/server"
	"github.com/teemow/gsheets-mcp/internal/sheets"
	"github.com/teemow/gsheets-mcp/internal/tools/sheets_tools"
)

// tokenWarmupTimeout bounds the startup token fetch. Warm-up failures are
// not fatal; the first tool call retries authentication.
const tokenWarmupTimeout = 10 * time.Second

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

func newServeCmd() *cobra.Command {
	var (
		debugMode  bool
		transport  string
		httpAddr   string
		yolo       bool
		apiTimeout time.Duration
		// Metrics server configuration
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server exposing Google Sheets
API v4 tools for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport on /mcp

Safety Mode:
  By default, the server operates in read-only mode, providing only safe
  operations. Use --yolo to enable write operations (creating spreadsheets,
  updating and clearing values, structural updates).

Authentication:
  Google credentials are fetched from Nango. All four NANGO_* environment
  variables must be set; the server refuses to start otherwise. The access
  token is warmed up at startup and refreshed automatically before expiry
  and after 401 responses.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			metricsConfig := MetricsConfig{
				Enabled: metricsEnabled,
				Addr:    metricsAddr,
			}
			return runServe(transport, debugMode, httpAddr, yolo, apiTimeout, metricsConfig)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", server.DefaultHTTPAddr, "HTTP server address (for streamable-http transport)")
	cmd.Flags().BoolVar(&yolo, "yolo", false, "Enable write operations (spreadsheet creation, value updates, clears). Default is read-only mode.")
	cmd.Flags().DurationVar(&apiTimeout, "timeout", sheets.DefaultTimeout, "Timeout for Google Sheets API requests")

	// Metrics server flags
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runServe(transport string, debugMode bool, httpAddr string, yolo bool, apiTimeout time.Duration, metricsConfig MetricsConfig) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	setupLogging(debugMode)

	// Nango configuration is mandatory; fail fast with the missing names.
	cfg, err := nango.ConfigFromEnv()
	if err != nil {
		return err
	}

	// Load metrics config from environment if not set via flags
	if !metricsConfig.Enabled {
		if os.Getenv("METRICS_ENABLED") == "true" {
			metricsConfig.Enabled = true
		}
	}
	if metricsConfig.Addr == "" || metricsConfig.Addr == server.DefaultMetricsAddr {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			metricsConfig.Addr = addr
		}
	}

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			if transport != "stdio" {
				log.Printf("Error during instrumentation shutdown: %v", err)
			}
		}
	}()

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if transport != "stdio" && metricsConfig.Enabled && provider.Enabled() {
		var err error
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		// Use ready channel to confirm metrics server started successfully
		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		// Wait for metrics server to be ready or fail
		select {
		case <-metricsReady:
			log.Printf("Metrics server started on %s", metricsServer.Addr())
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}
	}

	// Wire the token provider and gateway client
	tokenProvider := nango.NewProvider(nango.NewClient(cfg), slog.Default())
	sheetsClient := sheets.NewClient(tokenProvider,
		sheets.WithTimeout(apiTimeout),
		sheets.WithLogger(slog.Default()),
	)

	serverContext := server.NewServerContext(shutdownCtx, cfg, tokenProvider, sheetsClient)
	serverContext.SetVersion(version)

	// Set metrics and audit logger on server context for tool instrumentation
	if provider.Enabled() {
		metrics := provider.Metrics()
		serverContext.SetMetrics(metrics)
		serverContext.SetAuditLogger(instrumentation.NewAuditLoggerWithConfig(nil, instrConfig.AuditLogging))
		tokenProvider.SetObserver(func(forced bool, err error) {
			result := instrumentation.RefreshResultSuccess
			if err != nil {
				result = instrumentation.RefreshResultFailure
			}
			trigger := instrumentation.RefreshTriggerExpiry
			if forced {
				trigger = instrumentation.RefreshTriggerForced
			}
			metrics.RecordTokenRefresh(context.Background(), result, trigger)
		})
	}
	defer func() {
		// Shutdown metrics server first
		if metricsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error during metrics server shutdown: %v", err)
			}
		}
		if err := serverContext.Shutdown(); err != nil {
			if transport != "stdio" {
				log.Printf("Error during server context shutdown: %v", err)
			}
		}
	}()

	// Warm up the access token; failures are logged and retried on first use
	warmUpToken(shutdownCtx, tokenProvider)

	// Create MCP server
	mcpOpts := []mcpserver.ServerOption{
		mcpserver.WithToolCapabilities(true),
	}
	if provider.Enabled() {
		metrics := provider.Metrics()
		hooks := &mcpserver.Hooks{}
		hooks.AddOnRegisterSession(func(ctx context.Context, session mcpserver.ClientSession) {
			metrics.IncrementActiveSessions(ctx)
		})
		hooks.AddOnUnregisterSession(func(ctx context.Context, session mcpserver.ClientSession) {
			metrics.DecrementActiveSessions(ctx)
		})
		mcpOpts = append(mcpOpts, mcpserver.WithHooks(hooks))
	}
	mcpSrv := mcpserver.NewMCPServer("gsheets-mcp", version, mcpOpts...)

	// readOnly is the inverse of yolo
	readOnly := !yolo

	// Log the mode for visibility (only for non-stdio transports)
	if transport != "stdio" {
		if readOnly {
			log.Println("Starting server in READ-ONLY mode (use --yolo to enable write operations)")
		} else {
			log.Println("Starting server with WRITE operations enabled (--yolo flag is set)")
		}
	}

	if err := sheets_tools.RegisterSheetsTools(mcpSrv, serverContext, readOnly); err != nil {
		return fmt.Errorf("failed to register Sheets tools: %w", err)
	}

	// Start the appropriate server based on transport type
	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		fmt.Printf("Starting gsheets-mcp server with %s transport...\n", transport)
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, serverContext, httpAddr)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", transport)
	}
}

// setupLogging configures the default slog logger. Logs always go to
// stderr so the stdio transport keeps stdout clean for the protocol.
func setupLogging(debugMode bool) {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// warmUpToken fetches the first access token eagerly so the first tool call
// does not pay the broker round trip. Failures are non-fatal.
func warmUpToken(ctx context.Context, provider *nango.Provider) {
	warmupCtx, cancel := context.WithTimeout(ctx, tokenWarmupTimeout)
	defer cancel()

	if _, err := provider.Token(warmupCtx); err != nil {
		slog.Warn("failed to initialize Nango authentication on startup",
			slog.Any("error", err))
		slog.Info("authentication will be attempted on first API call")
		return
	}
	slog.Info("Nango authentication initialized successfully on startup")
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, addr string) error {
	health := server.NewHealthChecker(sc)
	httpSrv := server.NewHTTPServer(mcpSrv, health, addr)
	httpSrv.SetMetrics(sc.Metrics())

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpSrv.Start(); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		return nil
	case <-ctx.Done():
		health.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}
