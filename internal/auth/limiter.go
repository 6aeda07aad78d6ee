package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginLimiter is a token bucket per client address for sign-in attempts.
type LoginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	r        rate.Limit
	b        int
}

// NewLoginLimiter allows perMinute attempts per minute with bursts of burst.
func NewLoginLimiter(perMinute, burst int) *LoginLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &LoginLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        rate.Every(time.Minute / time.Duration(perMinute)),
		b:        burst,
	}
}

func (l *LoginLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.r, l.b)
		l.limiters[key] = limiter
	}
	return limiter.Allow()
}

// Prune forgets clients whose bucket has refilled. Returns how many were
// forgotten.
func (l *LoginLimiter) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for key, limiter := range l.limiters {
		if limiter.Tokens() >= float64(l.b) {
			delete(l.limiters, key)
			n++
		}
	}
	return n
}
