// Package ratelimit implements a fixed-window request limiter keyed by client.
//
// State lives in process memory. Each gateway instance counts independently,
// so behind a load balancer the effective limit is N times the configured one.
package ratelimit

import (
	"sync"
	"time"

	"github.com/vouh/Spectre-payment-server/internal/application"
)

const (
	DefaultWindow      = time.Minute
	DefaultMaxRequests = 10
)

type window struct {
	count   int
	resetAt time.Time
}

type FixedWindowLimiter struct {
	mu          sync.Mutex
	windows     map[string]*window
	size        time.Duration
	maxRequests int
	now         func() time.Time
}

var _ application.RateLimiter = (*FixedWindowLimiter)(nil)

func NewFixedWindowLimiter(size time.Duration, maxRequests int, now func() time.Time) *FixedWindowLimiter {
	if size <= 0 {
		size = DefaultWindow
	}
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequests
	}
	if now == nil {
		now = time.Now
	}
	return &FixedWindowLimiter{
		windows:     make(map[string]*window),
		size:        size,
		maxRequests: maxRequests,
		now:         now,
	}
}

// Allow admits up to maxRequests per window for clientKey. A rejected call
// does not count against the window.
func (l *FixedWindowLimiter) Allow(clientKey string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[clientKey]
	if !ok || now.After(w.resetAt) {
		l.windows[clientKey] = &window{count: 1, resetAt: now.Add(l.size)}
		return true
	}

	if w.count >= l.maxRequests {
		return false
	}
	w.count++
	return true
}

// RetryAfter is the time left until clientKey's window rolls over.
func (l *FixedWindowLimiter) RetryAfter(clientKey string) time.Duration {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[clientKey]
	if !ok || now.After(w.resetAt) {
		return 0
	}
	return w.resetAt.Sub(now)
}

// Reap drops windows that have already rolled over. The next request from
// such a key would reset the window anyway.
func (l *FixedWindowLimiter) Reap() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	reaped := 0
	for key, w := range l.windows {
		if now.After(w.resetAt) {
			delete(l.windows, key)
			reaped++
		}
	}
	return reaped
}

// Len is the number of tracked client keys.
func (l *FixedWindowLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
