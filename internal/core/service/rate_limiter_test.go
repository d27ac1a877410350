package service

import (
	"context"
	"testing"
	"time"
)

func newTestLimiter(t *testing.T) (*MemoryRateLimiter, *time.Time) {
	t.Helper()
	now := time.Now()
	l := NewMemoryRateLimiter()
	t.Cleanup(l.Close)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestMemoryRateLimiter_LimitAndReject(t *testing.T) {
	l, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		ok, err := l.Allow(ctx, "login:10.0.0.1", 5, 15*time.Minute)
		if err != nil {
			t.Fatalf("allow: %v", err)
		}
		if !ok {
			t.Fatalf("call %d: expected allow within limit", i)
		}
	}

	ok, err := l.Allow(ctx, "login:10.0.0.1", 5, 15*time.Minute)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if ok {
		t.Fatalf("6th call: expected rejection")
	}
}

func TestMemoryRateLimiter_WindowReset(t *testing.T) {
	l, now := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, _ = l.Allow(ctx, "login:10.0.0.1", 5, 15*time.Minute)
	}

	*now = now.Add(16 * time.Minute)

	ok, err := l.Allow(ctx, "login:10.0.0.1", 5, 15*time.Minute)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !ok {
		t.Fatalf("expected fresh window after reset time passed")
	}
}

func TestMemoryRateLimiter_IdentifiersAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, _ = l.Allow(ctx, "login:10.0.0.1", 5, 15*time.Minute)
	}

	ok, err := l.Allow(ctx, "login:10.0.0.2", 5, 15*time.Minute)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !ok {
		t.Fatalf("expected a different identifier to be unaffected")
	}
}

func TestMemoryRateLimiter_SweepDiscardsExpired(t *testing.T) {
	l, now := newTestLimiter(t)
	ctx := context.Background()

	_, _ = l.Allow(ctx, "login:10.0.0.1", 5, 15*time.Minute)
	_, _ = l.Allow(ctx, "contact:10.0.0.1", 3, time.Hour)

	*now = now.Add(30 * time.Minute)
	l.sweep()

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries["login:10.0.0.1"]; ok {
		t.Fatalf("expected expired entry to be swept")
	}
	if _, ok := l.entries["contact:10.0.0.1"]; !ok {
		t.Fatalf("expected live entry to survive the sweep")
	}
}
