package http

import (
	"sync"
	"time"

	"github.com/fwojciec/ministry"
	"golang.org/x/time/rate"
)

var _ ministry.Limiter = (*KeyLimiter)(nil)

// maxLimiterKeys bounds the number of tracked keys before idle ones are pruned.
const maxLimiterKeys = 10000

// KeyLimiter provides per-key rate limiting using token buckets. Login
// attempts are keyed by client IP.
type KeyLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    time.Duration
	burst    int
}

// NewKeyLimiter allows burst attempts per key, refilled one every interval.
func NewKeyLimiter(every time.Duration, burst int) *KeyLimiter {
	return &KeyLimiter{
		limiters: make(map[string]*rate.Limiter),
		every:    every,
		burst:    burst,
	}
}

// Allow reports whether an attempt for key may proceed now, consuming a
// token if so.
func (l *KeyLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= maxLimiterKeys {
			l.prune()
		}
		limiter = rate.NewLimiter(rate.Every(l.every), l.burst)
		l.limiters[key] = limiter
	}
	return limiter.Allow()
}

// prune drops limiters whose bucket has refilled; they carry no state.
func (l *KeyLimiter) prune() {
	for key, limiter := range l.limiters {
		if limiter.Tokens() >= float64(l.burst) {
			delete(l.limiters, key)
		}
	}
}

// Len returns the number of keys currently tracked.
func (l *KeyLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
