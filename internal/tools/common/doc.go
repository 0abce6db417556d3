// Package common provides shared utilities for MCP tool implementations:
// instrumented handler wrappers that record metrics and audit logs, and
// the rendering of classified Sheets errors into tool error results.
package common
