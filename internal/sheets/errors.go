package sheets

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind identifies the failure class of a Sheets gateway error.
// The set is closed; callers can switch on it without worrying about
// new values appearing between releases.
type Kind string

const (
	KindAuth       Kind = "auth"
	KindPermission Kind = "permission"
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation"
	KindRateLimit  Kind = "rate_limit"
	KindServer     Kind = "server_error"
	KindNetwork    Kind = "network"
	KindUnknown    Kind = "unknown"
)

// maxErrorBody bounds how much of a remote response body is carried in an
// Error, so a misbehaving upstream cannot inflate error payloads.
const maxErrorBody = 2048

// Error is the classified error surfaced for every failed invocation.
// StatusCode and Body are only set for errors derived from an HTTP response.
type Error struct {
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code,omitempty"`
	Body       string `json:"body,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Retryable reports whether the caller may reasonably retry the invocation.
// The gateway itself never retries these (see dispatch).
func (e *Error) Retryable() bool {
	return e.Kind == KindRateLimit || e.Kind == KindServer
}

func validationErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// googleErrorBody matches the standard Google API error envelope:
// {"error": {"code": 403, "message": "...", "status": "PERMISSION_DENIED"}}
type googleErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Classify maps an HTTP status and response body onto the error taxonomy.
// Body parsing is best-effort: a non-JSON body falls back to its raw text,
// truncated to maxErrorBody.
func Classify(status int, body []byte) *Error {
	msg := extractMessage(status, body)
	raw := truncate(string(body), maxErrorBody)

	e := &Error{StatusCode: status, Body: raw}
	switch {
	case status == 400:
		e.Kind = KindValidation
		e.Message = "Bad request: " + msg
	case status == 401:
		e.Kind = KindAuth
		e.Message = "Authentication failed: " + msg
	case status == 403:
		e.Kind = KindPermission
		e.Message = "Permission denied: " + msg
	case status == 404:
		e.Kind = KindNotFound
		e.Message = "Resource not found: " + msg
	case status == 429:
		e.Kind = KindRateLimit
		e.Message = "Quota exceeded: " + msg
	case status >= 500 && status < 600:
		e.Kind = KindServer
		e.Message = "Server error: " + msg
	default:
		e.Kind = KindUnknown
		e.Message = fmt.Sprintf("HTTP %d: %s", status, msg)
	}
	return e
}

// extractMessage pulls the human-readable message out of a Google error
// envelope, falling back to the raw body text when the body is not JSON.
func extractMessage(status int, body []byte) string {
	var parsed googleErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return fmt.Sprintf("HTTP %d error", status)
	}
	return truncate(text, maxErrorBody)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
