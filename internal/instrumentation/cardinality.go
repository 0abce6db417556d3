package instrumentation

import "strconv"

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Operation names and error kinds come from closed sets and are safe as
// labels. HTTP paths and status codes are not: paths can carry spreadsheet
// IDs and ranges, so only route-level paths should be recorded, and status
// codes are grouped into classes below.

// StatusCodeLabel reduces an HTTP status code to a bounded label value.
// Well-known codes keep their exact value; everything else is grouped
// by class ("2xx", "4xx", "5xx").
func StatusCodeLabel(code int) string {
	switch code {
	case 200, 400, 401, 403, 404, 429, 500, 503:
		return strconv.Itoa(code)
	}
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500 && code < 600:
		return "5xx"
	}
	return StatusUnknown
}

// KnownErrorKinds is the closed set of classified error kinds used as
// metric labels. Values outside this set are mapped to "unknown".
var KnownErrorKinds = map[string]bool{
	"auth":         true,
	"permission":   true,
	"not_found":    true,
	"validation":   true,
	"rate_limit":   true,
	"server_error": true,
	"network":      true,
	"unknown":      true,
}

// ErrorKindLabel returns kind if it belongs to the closed kind set,
// "unknown" otherwise.
func ErrorKindLabel(kind string) string {
	if KnownErrorKinds[kind] {
		return kind
	}
	return "unknown"
}
