package ratelimit

import (
	"sync"
	"time"
)

// Clock supplies the current time. Tests inject a deterministic one.
type Clock func() time.Time

// Decision is the outcome of a limiter check. RetryAfter is how long the
// caller must wait before the next attempt when blocked.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// LoginLimiter tracks failed login attempts per client address over a
// trailing window. A successful login clears the address's history.
type LoginLimiter interface {
	Check(addr string) Decision
	RecordFailure(addr string) int
	Clear(addr string)
}

type memoryLimiter struct {
	mu       sync.Mutex
	failures map[string][]time.Time
	max      int
	window   time.Duration
	now      Clock
}

// NewLoginLimiter builds an in-memory limiter allowing max-1 failures per
// address within the trailing window before blocking further attempts.
func NewLoginLimiter(max int, window time.Duration, clock Clock) LoginLimiter {
	if max <= 0 {
		max = 5
	}
	if window <= 0 {
		window = 5 * time.Minute
	}
	if clock == nil {
		clock = time.Now
	}

	return &memoryLimiter{
		failures: make(map[string][]time.Time),
		max:      max,
		window:   window,
		now:      clock,
	}
}

// Check prunes stale failures and reports whether the address may attempt a
// login now.
func (l *memoryLimiter) Check(addr string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := l.prune(addr, now)
	if len(recent) < l.max {
		return Decision{Allowed: true}
	}

	// Blocked until the oldest failure slides out of the window.
	retryAfter := l.window - now.Sub(recent[0])
	if retryAfter < time.Second {
		retryAfter = time.Second
	}

	return Decision{Allowed: false, RetryAfter: retryAfter}
}

// RecordFailure appends a failure timestamp and returns how many attempts
// remain before the address is locked out.
func (l *memoryLimiter) RecordFailure(addr string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := append(l.prune(addr, now), now)
	l.failures[addr] = recent

	remaining := l.max - len(recent)
	if remaining < 0 {
		remaining = 0
	}

	return remaining
}

// Clear drops the failure history for an address.
func (l *memoryLimiter) Clear(addr string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.failures, addr)
}

// prune drops timestamps older than the window. Caller holds the lock.
func (l *memoryLimiter) prune(addr string, now time.Time) []time.Time {
	recent := l.failures[addr][:0:0]
	for _, at := range l.failures[addr] {
		if now.Sub(at) < l.window {
			recent = append(recent, at)
		}
	}

	if len(recent) == 0 {
		delete(l.failures, addr)
	} else {
		l.failures[addr] = recent
	}

	return recent
}
