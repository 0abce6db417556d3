package nango

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeFetcher struct {
	mu     sync.Mutex
	calls  atomic.Int64
	tokens []*oauth2.Token
	err    error
	delay  time.Duration
}

func (f *fakeFetcher) FetchToken(ctx context.Context) (*oauth2.Token, error) {
	n := f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := int(n) - 1
	if idx >= len(f.tokens) {
		idx = len(f.tokens) - 1
	}
	return f.tokens[idx], nil
}

func validToken(access string) *oauth2.Token {
	return &oauth2.Token{AccessToken: access, Expiry: time.Now().Add(time.Hour)}
}

func TestProvider_CachesValidToken(t *testing.T) {
	fetcher := &fakeFetcher{tokens: []*oauth2.Token{validToken("tok-1")}}
	p := NewProvider(fetcher, nil)

	for i := 0; i < 3; i++ {
		tok, err := p.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tok-1", tok)
	}
	assert.Equal(t, int64(1), fetcher.calls.Load())
}

func TestProvider_RefreshesNearExpiry(t *testing.T) {
	expiring := &oauth2.Token{AccessToken: "old", Expiry: time.Now().Add(30 * time.Second)}
	fetcher := &fakeFetcher{tokens: []*oauth2.Token{expiring, validToken("new")}}
	p := NewProvider(fetcher, nil)

	tok, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "old", tok)

	// Within the refresh margin the cached token is not served again.
	tok, err = p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new", tok)
	assert.Equal(t, int64(2), fetcher.calls.Load())
}

func TestProvider_ZeroExpiryServedUntilForced(t *testing.T) {
	noExpiry := &oauth2.Token{AccessToken: "no-expiry"}
	fetcher := &fakeFetcher{tokens: []*oauth2.Token{noExpiry, validToken("forced")}}
	p := NewProvider(fetcher, nil)

	tok, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "no-expiry", tok)

	tok, err = p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "no-expiry", tok)
	assert.Equal(t, int64(1), fetcher.calls.Load())

	tok, err = p.ForceRefresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "forced", tok)
	assert.Equal(t, int64(2), fetcher.calls.Load())
}

func TestProvider_SingleFlight(t *testing.T) {
	fetcher := &fakeFetcher{
		tokens: []*oauth2.Token{validToken("shared")},
		delay:  50 * time.Millisecond,
	}
	p := NewProvider(fetcher, nil)

	const callers = 10
	results := make(chan string, callers)
	errs := make(chan error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok, err := p.Token(context.Background())
			results <- tok
			errs <- err
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	for tok := range results {
		assert.Equal(t, "shared", tok)
	}
	assert.Equal(t, int64(1), fetcher.calls.Load())
}

func TestProvider_FetchError(t *testing.T) {
	fetcher := &fakeFetcher{err: &AuthError{Message: "Invalid Nango secret key"}}
	p := NewProvider(fetcher, nil)

	_, err := p.Token(context.Background())
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Invalid Nango secret key", authErr.Message)
}

func TestProvider_WaiterHonorsOwnContext(t *testing.T) {
	fetcher := &fakeFetcher{
		tokens: []*oauth2.Token{validToken("slow")},
		delay:  200 * time.Millisecond,
	}
	p := NewProvider(fetcher, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Token(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	// The refresh still completes for later callers.
	tok, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "slow", tok)
	assert.Equal(t, int64(1), fetcher.calls.Load())
}

func TestProvider_Current(t *testing.T) {
	fetcher := &fakeFetcher{tokens: []*oauth2.Token{validToken("tok-1")}}
	p := NewProvider(fetcher, nil)

	assert.Nil(t, p.Current())

	_, err := p.Token(context.Background())
	require.NoError(t, err)
	require.NotNil(t, p.Current())
	assert.Equal(t, "tok-1", p.Current().AccessToken)
}

func TestProvider_Observer(t *testing.T) {
	fetcher := &fakeFetcher{tokens: []*oauth2.Token{validToken("tok-1"), validToken("tok-2")}}
	p := NewProvider(fetcher, nil)

	type refresh struct {
		forced bool
		failed bool
	}
	var mu sync.Mutex
	var seen []refresh
	p.SetObserver(func(forced bool, err error) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, refresh{forced: forced, failed: err != nil})
	})

	_, err := p.Token(context.Background())
	require.NoError(t, err)
	_, err = p.ForceRefresh(context.Background())
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2)
	assert.Equal(t, refresh{forced: false}, seen[0])
	assert.Equal(t, refresh{forced: true}, seen[1])
}
