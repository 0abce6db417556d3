package nango

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	"github.com/teemow/gsheets-mcp/internal/logging"
)

// DefaultTimeout bounds a single call to the Nango API.
const DefaultTimeout = 30 * time.Second

// FlexibleTime unmarshals timestamps that arrive either as RFC 3339
// strings or as unix epoch numbers. Nango emits both depending on the
// provider behind the connection.
type FlexibleTime struct {
	time.Time
}

func (t *FlexibleTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			t.Time = time.Time{}
			return nil
		}
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("parsing expiry time %q: %w", s, err)
		}
		t.Time = parsed
		return nil
	}

	var epoch float64
	if err := json.Unmarshal(data, &epoch); err == nil {
		sec, frac := int64(epoch), epoch-float64(int64(epoch))
		t.Time = time.Unix(sec, int64(frac*float64(time.Second)))
		return nil
	}
	return fmt.Errorf("unsupported expiry time format: %s", strconv.Quote(string(data)))
}

type connectionResponse struct {
	Credentials struct {
		AccessToken string       `json:"access_token"`
		ExpiresAt   FlexibleTime `json:"expires_at"`
	} `json:"credentials"`
}

// Client fetches OAuth credentials from the Nango API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = h }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Nango API client for the given connection.
func NewClient(cfg Config, opts ...ClientOption) *Client {
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchToken retrieves a fresh access token for the configured connection.
// The refresh_token=true query parameter asks Nango to refresh the
// upstream Google credential before answering, so the returned token is
// always newly minted.
func (c *Client) FetchToken(ctx context.Context) (*oauth2.Token, error) {
	u := fmt.Sprintf("%s/connection/%s?provider_config_key=%s&refresh_token=true",
		c.cfg.BaseURL,
		url.PathEscape(c.cfg.ConnectionID),
		url.QueryEscape(c.cfg.IntegrationID),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, authErrorf(err, "Failed to connect to Nango authentication service")
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, authErrorf(err, "Timeout while connecting to Nango authentication service")
		}
		return nil, authErrorf(err, "Failed to connect to Nango authentication service")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, authErrorf(err, "Failed to connect to Nango authentication service")
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, authErrorf(nil, "Invalid Nango secret key")
	case resp.StatusCode == http.StatusNotFound:
		return nil, authErrorf(nil, "Nango connection not found")
	case resp.StatusCode != http.StatusOK:
		return nil, authErrorf(nil, "Nango API error: %d - %s", resp.StatusCode, string(body))
	}

	var payload connectionResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, authErrorf(err, "Nango API error: %d - %s", resp.StatusCode, string(body))
	}
	if payload.Credentials.AccessToken == "" {
		return nil, authErrorf(nil, "No access token found in Nango credentials")
	}

	token := &oauth2.Token{
		AccessToken: payload.Credentials.AccessToken,
		TokenType:   "Bearer",
		Expiry:      payload.Credentials.ExpiresAt.Time,
	}
	c.logger.Debug("fetched access token from Nango",
		slog.String("token", logging.SanitizeToken(token.AccessToken)),
		slog.Time("expires_at", token.Expiry),
	)
	return token, nil
}
