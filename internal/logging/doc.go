// Package logging provides structured logging utilities for the gsheets-mcp application.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - Token sanitization for credential material
//   - Consistent attribute naming across the codebase
//   - Adapter from slog to the mcp-go transport logger
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "values_get")
//	logger.Info("reading values",
//	    logging.Status("success"))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("token refreshed",
//	    slog.String("token", logging.SanitizeToken(token)))
//
// # Security Considerations
//
// This package is designed with security in mind:
//   - Access tokens are never logged directly, only their length
//   - Classified error kinds are logged instead of raw upstream bodies
package logging
