// Package ratelimit provides a keyed token bucket limiter. The API uses it to
// throttle generation requests per client.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultIdleTTL is how long an unused key keeps its bucket.
const DefaultIdleTTL = 10 * time.Minute

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter manages per-key rate limiting.
// Each unique key gets its own independent bucket, evicted once idle.
type KeyedRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a keyed limiter allowing rps requests per second with the given burst.
func New(rps float64, burst int) *KeyedRateLimiter {
	return NewWithTTL(rps, burst, DefaultIdleTTL)
}

// PerMinute creates a keyed limiter from a per-minute allowance.
func PerMinute(perMinute float64, burst int) *KeyedRateLimiter {
	return New(perMinute/60, burst)
}

// NewWithTTL creates a keyed limiter whose idle buckets are dropped after ttl.
// A ttl of zero keeps buckets forever.
func NewWithTTL(rps float64, burst int, ttl time.Duration) *KeyedRateLimiter {
	krl := &KeyedRateLimiter{
		entries: make(map[string]*entry),
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: ttl,
		now:     time.Now,
		done:    make(chan struct{}),
	}

	if ttl > 0 {
		go krl.cleanup(ttl)
	}

	return krl
}

// Allow reports whether a request for key may proceed now.
func (krl *KeyedRateLimiter) Allow(key string) bool {
	return krl.getLimiter(key).Allow()
}

// Reserve reports whether a request for key may proceed now and, if not,
// how long the caller should wait before retrying.
func (krl *KeyedRateLimiter) Reserve(key string) (bool, time.Duration) {
	r := krl.getLimiter(key).Reserve()
	if !r.OK() {
		return false, 0
	}
	delay := r.Delay()
	if delay == 0 {
		return true, 0
	}
	r.Cancel()
	return false, delay
}

// Wait blocks until a request for key is allowed or ctx is done.
func (krl *KeyedRateLimiter) Wait(ctx context.Context, key string) error {
	return krl.getLimiter(key).Wait(ctx)
}

// Len returns the number of tracked keys.
func (krl *KeyedRateLimiter) Len() int {
	krl.mu.Lock()
	defer krl.mu.Unlock()
	return len(krl.entries)
}

func (krl *KeyedRateLimiter) getLimiter(key string) *rate.Limiter {
	krl.mu.Lock()
	defer krl.mu.Unlock()

	e, ok := krl.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(krl.limit, krl.burst)}
		krl.entries[key] = e
	}
	e.lastSeen = krl.now()
	return e.limiter
}

// evictIdle drops buckets not used since before cutoff.
func (krl *KeyedRateLimiter) evictIdle(cutoff time.Time) int {
	krl.mu.Lock()
	defer krl.mu.Unlock()

	n := 0
	for k, e := range krl.entries {
		if e.lastSeen.Before(cutoff) {
			delete(krl.entries, k)
			n++
		}
	}
	return n
}

// Stop shuts down the cleanup goroutine.
func (krl *KeyedRateLimiter) Stop() {
	krl.stopOnce.Do(func() {
		close(krl.done)
	})
}

func (krl *KeyedRateLimiter) cleanup(ttl time.Duration) {
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-krl.done:
			return
		case <-ticker.C:
			krl.evictIdle(krl.now().Add(-ttl))
		}
	}
}
