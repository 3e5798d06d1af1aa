package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vouh/Spectre-payment-server/internal/application"
	"github.com/vouh/Spectre-payment-server/internal/metrics"
)

const (
	DefaultTokenSafetyMargin = 60 * time.Second
	defaultRefreshTimeout    = 30 * time.Second
	tokenFlightKey           = "access_token"
)

type AccessToken struct {
	Value     string
	ExpiresAt time.Time
}

// TokenSource hands out a usable upstream bearer token.
type TokenSource interface {
	Token(ctx context.Context) (AccessToken, error)
}

// TokenCache keeps one access token and refreshes it on demand. Concurrent
// callers that find it stale share a single exchange.
type TokenCache struct {
	client  application.DarajaClient
	margin  time.Duration
	timeout time.Duration
	now     func() time.Time
	logger  *slog.Logger

	mu    sync.RWMutex
	token *AccessToken
	group singleflight.Group
}

var _ TokenSource = (*TokenCache)(nil)

func NewTokenCache(
	client application.DarajaClient,
	margin time.Duration,
	refreshTimeout time.Duration,
	now func() time.Time,
	logger *slog.Logger,
) *TokenCache {
	if margin <= 0 {
		margin = DefaultTokenSafetyMargin
	}
	if refreshTimeout <= 0 {
		refreshTimeout = defaultRefreshTimeout
	}
	if now == nil {
		now = time.Now
	}
	return &TokenCache{
		client:  client,
		margin:  margin,
		timeout: refreshTimeout,
		now:     now,
		logger:  logger,
	}
}

func (c *TokenCache) Token(ctx context.Context) (AccessToken, error) {
	if tok, ok := c.cached(); ok {
		return tok, nil
	}

	// The shared exchange ignores the first caller's cancellation and is
	// bounded by c.timeout instead.
	ch := c.group.DoChan(tokenFlightKey, func() (any, error) {
		if tok, ok := c.cached(); ok {
			return tok, nil
		}
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.refresh(refreshCtx)
	})

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return AccessToken{}, application.NewTimeoutError(ctx.Err())
		}
		return AccessToken{}, application.NewUpstreamAuthError(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return AccessToken{}, res.Err
		}
		return res.Val.(AccessToken), nil
	}
}

func (c *TokenCache) cached() (AccessToken, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.token == nil || c.token.ExpiresAt.Sub(c.now()) <= c.margin {
		return AccessToken{}, false
	}
	return *c.token, true
}

func (c *TokenCache) refresh(ctx context.Context) (AccessToken, error) {
	resp, err := c.client.GenerateToken(ctx)
	if err != nil {
		return c.fail(err)
	}
	if resp.AccessToken == "" {
		return c.fail(errors.New("empty access_token in response"))
	}

	seconds, err := resp.ExpiresIn.Int64()
	if err != nil {
		return c.fail(fmt.Errorf("invalid expires_in %q: %w", resp.ExpiresIn, err))
	}

	tok := AccessToken{
		Value:     resp.AccessToken,
		ExpiresAt: c.now().Add(time.Duration(seconds)*time.Second - c.margin),
	}

	c.mu.Lock()
	c.token = &tok
	c.mu.Unlock()

	metrics.TokenRefreshes.WithLabelValues(metrics.ResultSuccess).Inc()
	c.logger.Debug("access token refreshed", "expires_at", tok.ExpiresAt)

	return tok, nil
}

func (c *TokenCache) fail(err error) (AccessToken, error) {
	metrics.TokenRefreshes.WithLabelValues(metrics.ResultError).Inc()
	c.logger.Error("access token exchange failed", "error", err)
	return AccessToken{}, application.NewUpstreamAuthError(err)
}
