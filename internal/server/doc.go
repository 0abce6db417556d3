// Package server provides the MCP server context and the HTTP servers
// that host the gsheets-mcp application.
//
// # Key Components
//
// ServerContext carries the shared dependencies of every tool handler:
// the Nango configuration, the token provider, the Google Sheets client,
// and the optional instrumentation (metrics, audit logging). It also
// tracks shutdown state so long-running handlers can bail out early.
//
// HTTPServer hosts the MCP server over the streamable HTTP transport on
// /mcp and registers the health endpoints on the same listener.
//
// HealthChecker serves Kubernetes-style probes:
//   - /healthz          liveness, always ok while the process runs
//   - /readyz           readiness, gated on startup completion and shutdown
//   - /healthz/detailed uptime and overall status
//
// The readiness response also reports whether a Google access token is
// currently cached. That check is informational: tokens are fetched on
// demand for the first tool call, so an empty cache never fails the probe.
//
// MetricsServer serves Prometheus metrics on a dedicated port so
// operational metrics stay off the main application listener.
package server
