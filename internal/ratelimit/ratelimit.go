// Package ratelimit enforces minimum spacing between outbound calls to a
// named external service.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter spaces calls so that at most rpm requests happen per minute.
// Safe for concurrent use; the last-call timestamp is guarded by a mutex so
// two callers cannot interleave between its read and write.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	lastCall time.Time
}

// New creates a Limiter allowing rpm requests per minute. rpm values <= 0
// disable spacing.
func New(rpm int) *Limiter {
	var interval time.Duration
	if rpm > 0 {
		interval = time.Minute / time.Duration(rpm)
	}
	return &Limiter{interval: interval}
}

// Wait blocks until at least one interval has elapsed since the previous
// call, then records the new call time. Returns early with the context's
// error if ctx is cancelled while waiting.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.interval <= 0 {
		return nil
	}

	l.mu.Lock()
	now := time.Now()
	next := l.lastCall.Add(l.interval)
	if next.Before(now) {
		next = now
	}
	// Reserve the slot before sleeping so concurrent callers queue up
	// behind it instead of racing for the same interval.
	l.lastCall = next
	l.mu.Unlock()

	wait := time.Until(next)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
