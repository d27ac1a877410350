package service

import (
	"context"
	"sync"
	"time"
)

const sweepInterval = time.Minute

type rateLimitEntry struct {
	count   int
	resetAt time.Time
}

// MemoryRateLimiter is a mutex-guarded fixed-window counter keyed by
// identifier. The first call for an identifier, or the first call after
// the window reset time has passed, starts a fresh window at count 1.
// A background sweep discards expired entries to bound memory growth.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	now     func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	l := &MemoryRateLimiter{
		entries: make(map[string]*rateLimitEntry),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go l.sweepLoop()
	return l
}

// Allow records one attempt for identifier and reports whether it is
// within limit for the current window. The attempt that pushes the count
// to limit+1 is the first rejected one.
func (l *MemoryRateLimiter) Allow(_ context.Context, identifier string, limit int, window time.Duration) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[identifier]
	if !ok || now.After(e.resetAt) {
		l.entries[identifier] = &rateLimitEntry{count: 1, resetAt: now.Add(window)}
		return true, nil
	}

	e.count++
	return e.count <= limit, nil
}

// Close stops the background sweep. Safe to call more than once.
func (l *MemoryRateLimiter) Close() {
	l.stopOnce.Do(func() { close(l.done) })
}

func (l *MemoryRateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

func (l *MemoryRateLimiter) sweep() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for id, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, id)
		}
	}
}
