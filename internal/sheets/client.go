package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/teemow/gsheets-mcp/internal/logging"
	"github.com/teemow/gsheets-mcp/internal/nango"
)

const (
	// DefaultBaseURL is the Google Sheets API endpoint.
	DefaultBaseURL = "https://sheets.googleapis.com"

	// DefaultTimeout bounds a single API call including the response body.
	DefaultTimeout = 30 * time.Second
)

// TokenSource supplies bearer tokens for outbound API calls. It is
// implemented by nango.Provider; tests substitute their own.
type TokenSource interface {
	// Token returns a token valid for at least a small safety margin.
	Token(ctx context.Context) (string, error)
	// ForceRefresh discards any cached token and fetches a fresh one.
	ForceRefresh(ctx context.Context) (string, error)
}

// Client is the authenticated gateway to the Sheets API. It owns request
// shaping, credential attachment, the single 401 refresh-and-retry, and
// error classification. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Sheets API endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a gateway client backed by the given token source.
func NewClient(tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		tokens:     tokens,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API endpoint the client dispatches against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Invoke executes a named operation with the given arguments and returns
// the raw JSON payload of the response. Every error returned is a *Error;
// validation failures never reach the network.
func (c *Client) Invoke(ctx context.Context, operation string, args map[string]any) (json.RawMessage, error) {
	op, ok := Operations[operation]
	if !ok {
		return nil, validationErrorf("unknown operation %q", operation)
	}

	req, cerr := buildRequest(op, args)
	if cerr != nil {
		return nil, cerr
	}

	raw, err := c.dispatch(ctx, req)
	if err != nil {
		cerr := normalizeError(err)
		c.logger.Warn("sheets operation failed",
			logging.Operation(operation),
			logging.Kind(string(cerr.Kind)),
			logging.Err(cerr),
		)
		return nil, cerr
	}
	return raw, nil
}

// dispatch sends the request with the current token. A 401 triggers exactly
// one forced refresh and one resend; 429 and 5xx are classified for the
// caller without automatic retry, so non-idempotent writes are never
// duplicated behind the caller's back.
func (c *Client) dispatch(ctx context.Context, r *Request) (json.RawMessage, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	status, body, err := c.send(ctx, r, token)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized {
		c.logger.Info("access token rejected, refreshing", logging.Status("401"))
		token, err = c.tokens.ForceRefresh(ctx)
		if err != nil {
			return nil, err
		}
		status, body, err = c.send(ctx, r, token)
		if err != nil {
			return nil, err
		}
	}

	if status < 200 || status >= 300 {
		return nil, Classify(status, body)
	}
	return successPayload(body), nil
}

// send performs one HTTP round trip. Transport-level failures are mapped to
// kind network here so that dispatch sees either a status or a classified
// error, never a bare transport error.
func (c *Client) send(ctx context.Context, r *Request, token string) (int, []byte, error) {
	var bodyReader io.Reader
	if r.Body != nil {
		encoded, err := json.Marshal(r.Body)
		if err != nil {
			return 0, nil, &Error{Kind: KindValidation, Message: fmt.Sprintf("failed to encode request body: %v", err)}
		}
		bodyReader = bytes.NewReader(encoded)
	}

	u := c.baseURL + r.Path
	if q := r.Query.Encode(); q != "" {
		u += "?" + q
	}

	httpReq, err := http.NewRequestWithContext(ctx, r.Method, u, bodyReader)
	if err != nil {
		return 0, nil, &Error{Kind: KindValidation, Message: fmt.Sprintf("failed to build request: %v", err)}
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	if bodyReader != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, networkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, networkError(err)
	}
	return resp.StatusCode, body, nil
}

func networkError(err error) *Error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &Error{Kind: KindNetwork, Message: "Request timeout - Google Sheets API did not respond in time"}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindNetwork, Message: "Request timeout - Google Sheets API did not respond in time"}
	}
	return &Error{Kind: KindNetwork, Message: fmt.Sprintf("Connection error - Unable to reach Google Sheets API: %v", err)}
}

// successPayload normalizes a 2xx body: empty bodies become an empty JSON
// object and non-JSON text is wrapped, so callers always receive valid JSON.
func successPayload(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return json.RawMessage(`{}`)
	}
	if !json.Valid(trimmed) {
		wrapped, _ := json.Marshal(map[string]string{"content": string(trimmed)})
		return wrapped
	}
	return trimmed
}

// normalizeError folds any error from the token provider or dispatcher into
// the classified shape, so callers handle exactly one error type.
func normalizeError(err error) *Error {
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	var ae *nango.AuthError
	if errors.As(err, &ae) {
		return &Error{Kind: KindAuth, Message: ae.Error()}
	}
	return &Error{Kind: KindUnknown, Message: err.Error()}
}
