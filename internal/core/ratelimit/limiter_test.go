package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(opts ...Option) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	return New(NewMemoryStore(), opts...), clock
}

func TestLimiter_HundredAllowedThenBlocked(t *testing.T) {
	l, clock := newTestLimiter()
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		d, err := l.Allow(ctx, "X")
		if err != nil {
			t.Fatalf("call %d: %v", i+1, err)
		}
		if !d.Allowed {
			t.Fatalf("call %d should be allowed", i+1)
		}
		clock.Advance(100 * time.Millisecond)
	}

	d, err := l.Allow(ctx, "X")
	if err != nil {
		t.Fatalf("101st call: %v", err)
	}
	if d.Allowed {
		t.Fatalf("101st call should be blocked")
	}
	if d.RetryAfter <= 0 {
		t.Fatalf("expected positive retry-after, got %s", d.RetryAfter)
	}
	// Oldest hit was 10s ago, so it leaves the window in 50s.
	if d.RetryAfter != 50*time.Second {
		t.Fatalf("expected 50s retry-after, got %s", d.RetryAfter)
	}
}

func TestLimiter_IdentifiersAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(WithMaxRequests(2))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if d, _ := l.Allow(ctx, "a"); !d.Allowed {
			t.Fatalf("a call %d should pass", i)
		}
	}
	if d, _ := l.Allow(ctx, "a"); d.Allowed {
		t.Fatalf("a should be blocked")
	}
	if d, _ := l.Allow(ctx, "b"); !d.Allowed {
		t.Fatalf("b should not be affected by a")
	}
}

func TestLimiter_WindowSlides(t *testing.T) {
	l, clock := newTestLimiter(WithMaxRequests(2), WithWindow(10*time.Second))
	ctx := context.Background()

	_, _ = l.Allow(ctx, "id")
	clock.Advance(4 * time.Second)
	_, _ = l.Allow(ctx, "id")

	d, _ := l.Allow(ctx, "id")
	if d.Allowed || d.RetryAfter != 6*time.Second {
		t.Fatalf("expected block with 6s retry, got %+v", d)
	}

	clock.Advance(6 * time.Second)
	d, _ = l.Allow(ctx, "id")
	if !d.Allowed || d.Remaining != 0 {
		t.Fatalf("expected first hit to have slid out, got %+v", d)
	}
}

func TestLimiter_RejectedCallsAreNotRecorded(t *testing.T) {
	l, clock := newTestLimiter(WithMaxRequests(1), WithWindow(10*time.Second))
	ctx := context.Background()

	_, _ = l.Allow(ctx, "id")
	for i := 0; i < 5; i++ {
		clock.Advance(time.Second)
		_, _ = l.Allow(ctx, "id")
	}
	clock.Advance(5 * time.Second)
	if d, _ := l.Allow(ctx, "id"); !d.Allowed {
		t.Fatalf("blocked calls must not extend the window: %+v", d)
	}
}

func TestLimiter_RetryAfterRoundsUp(t *testing.T) {
	l, clock := newTestLimiter(WithMaxRequests(1), WithWindow(10*time.Second))
	ctx := context.Background()

	_, _ = l.Allow(ctx, "id")
	clock.Advance(9*time.Second + 900*time.Millisecond)
	d, _ := l.Allow(ctx, "id")
	if d.Allowed || d.RetryAfter != time.Second {
		t.Fatalf("expected 1s retry-after, got %+v", d)
	}
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]time.Time, error) {
	return nil, errors.New("store down")
}

func (failingStore) Set(context.Context, string, []time.Time, time.Duration) error {
	return nil
}

func TestLimiter_StoreErrorPropagates(t *testing.T) {
	l := New(failingStore{})
	if _, err := l.Allow(context.Background(), "id"); err == nil {
		t.Fatalf("expected error from store")
	}
}

func TestMemoryStore_TTLEviction(t *testing.T) {
	s := NewMemoryStore()
	base := time.Now()
	s.now = func() time.Time { return base }
	ctx := context.Background()

	if err := s.Set(ctx, "k", []time.Time{base}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	hits, _ := s.Get(ctx, "k")
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}

	s.now = func() time.Time { return base.Add(time.Minute) }
	hits, _ = s.Get(ctx, "k")
	if hits != nil || s.Len() != 0 {
		t.Fatalf("expected entry evicted, got %v (len %d)", hits, s.Len())
	}
}
