package nango

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/teemow/gsheets-mcp/internal/logging"
)

// RefreshMargin is how long before expiry a cached token stops being
// served. Refreshing ahead of the deadline keeps in-flight API calls from
// racing the expiry.
const RefreshMargin = 60 * time.Second

// TokenFetcher is the broker call the provider caches. Implemented by
// *Client; tests substitute their own.
type TokenFetcher interface {
	FetchToken(ctx context.Context) (*oauth2.Token, error)
}

// RefreshObserver is notified after every broker fetch. forced is true for
// refreshes triggered by ForceRefresh rather than expiry.
type RefreshObserver func(forced bool, err error)

// Provider caches access tokens and collapses concurrent refreshes into a
// single broker call. It is safe for concurrent use.
type Provider struct {
	fetcher  TokenFetcher
	logger   *slog.Logger
	observer RefreshObserver

	mu    sync.Mutex
	token *oauth2.Token

	group singleflight.Group
}

// NewProvider creates a token provider on top of the given fetcher.
func NewProvider(fetcher TokenFetcher, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{fetcher: fetcher, logger: logger}
}

// SetObserver installs a refresh observer. Must be called before the
// provider is shared across goroutines.
func (p *Provider) SetObserver(obs RefreshObserver) {
	p.observer = obs
}

// Token returns a cached access token if it is still valid for at least
// RefreshMargin, refreshing otherwise. Tokens without an expiry are served
// until a caller forces a refresh.
func (p *Provider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	cached := p.token
	p.mu.Unlock()

	if cached != nil && cached.AccessToken != "" {
		if cached.Expiry.IsZero() || time.Until(cached.Expiry) > RefreshMargin {
			return cached.AccessToken, nil
		}
	}
	return p.refresh(ctx, false)
}

// ForceRefresh discards the cached token and fetches a fresh one. Used
// after the API rejects a token that looked valid locally.
func (p *Provider) ForceRefresh(ctx context.Context) (string, error) {
	p.mu.Lock()
	p.token = nil
	p.mu.Unlock()
	return p.refresh(ctx, true)
}

// refresh performs a single-flight broker call. The fetch itself runs on a
// context detached from the initiating caller so that one caller giving up
// does not fail the refresh for everyone else waiting on it; each waiter
// still honors its own context while waiting.
func (p *Provider) refresh(ctx context.Context, forced bool) (string, error) {
	ch := p.group.DoChan("token", func() (any, error) {
		token, err := p.fetcher.FetchToken(context.WithoutCancel(ctx))
		if p.observer != nil {
			p.observer(forced, err)
		}
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.token = token
		p.mu.Unlock()
		p.logger.Info("access token refreshed",
			slog.String("token", logging.SanitizeToken(token.AccessToken)),
			slog.Time("expires_at", token.Expiry),
		)
		return token.AccessToken, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Current returns the cached token without triggering a refresh. It is nil
// until the first successful fetch.
func (p *Provider) Current() *oauth2.Token {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token
}
