// Package ratelimit implements a per-identifier sliding-window limiter over
// an injected window store.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/medicore/hospital-portal/internal/core/ports"
)

const (
	DefaultWindow      = 60 * time.Second
	DefaultMaxRequests = 100
)

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed   bool
	Remaining int
	Limit     int
	// RetryAfter is zero when Allowed, otherwise the whole seconds until the
	// oldest request leaves the window (at least one second).
	RetryAfter time.Duration
}

// Limiter admits at most max requests per identifier within window.
type Limiter struct {
	store  ports.WindowStore
	window time.Duration
	max    int
	prefix string
	now    func() time.Time

	mu sync.Mutex
}

// Option customises a Limiter.
type Option func(*Limiter)

func WithWindow(d time.Duration) Option {
	return func(l *Limiter) {
		if d > 0 {
			l.window = d
		}
	}
}

func WithMaxRequests(n int) Option {
	return func(l *Limiter) {
		if n > 0 {
			l.max = n
		}
	}
}

// WithKeyPrefix namespaces identifiers, so several limiters can share a store.
func WithKeyPrefix(p string) Option {
	return func(l *Limiter) { l.prefix = p }
}

func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// New returns a Limiter with a 60s window and 100 requests unless overridden.
func New(store ports.WindowStore, opts ...Option) *Limiter {
	l := &Limiter{
		store:  store,
		window: DefaultWindow,
		max:    DefaultMaxRequests,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow records a request for id when it fits in the window. Rejected
// requests are not recorded.
func (l *Limiter) Allow(ctx context.Context, id string) (Decision, error) {
	key := l.prefix + id

	l.mu.Lock()
	defer l.mu.Unlock()

	hits, err := l.store.Get(ctx, key)
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit read %s: %w", key, err)
	}

	now := l.now()
	cutoff := now.Add(-l.window)
	live := hits[:0:0]
	for _, h := range hits {
		if h.After(cutoff) {
			live = append(live, h)
		}
	}

	if len(live) >= l.max {
		oldest := live[0]
		for _, h := range live[1:] {
			if h.Before(oldest) {
				oldest = h
			}
		}
		return Decision{
			Allowed:    false,
			Remaining:  0,
			Limit:      l.max,
			RetryAfter: retryAfter(oldest.Add(l.window).Sub(now)),
		}, nil
	}

	live = append(live, now)
	if err := l.store.Set(ctx, key, live, l.window); err != nil {
		return Decision{}, fmt.Errorf("rate limit write %s: %w", key, err)
	}
	return Decision{Allowed: true, Remaining: l.max - len(live), Limit: l.max}, nil
}

// Limit returns the configured request budget per window.
func (l *Limiter) Limit() int { return l.max }

func retryAfter(d time.Duration) time.Duration {
	secs := (d + time.Second - 1) / time.Second
	if secs < 1 {
		secs = 1
	}
	return secs * time.Second
}
