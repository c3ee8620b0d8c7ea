// Package ratelimit holds per-key token buckets for the contact and
// login endpoints. The bucket map is process-local: limits are not
// shared between instances, and buckets are kept for the process
// lifetime once created.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	generalCapacity = 3
	generalWindow   = time.Hour
	loginCapacity   = 5
	loginWindow     = 15 * time.Minute
)

type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

func New() *Limiter {
	return &Limiter{buckets: make(map[string]*rate.Limiter)}
}

// Allow consumes one unit from the general bucket for key (3 per hour,
// refilled continuously). Returns false and leaves the bucket unchanged
// when no unit is available.
func (l *Limiter) Allow(key string) bool {
	return l.resolve(key, generalCapacity, generalWindow).Allow()
}

// AllowLogin consumes one unit from the login bucket for addr
// (5 per 15 minutes), namespaced so a login flood cannot drain the
// same client's contact budget.
func (l *Limiter) AllowLogin(addr string) bool {
	return l.resolve("login:"+addr, loginCapacity, loginWindow).Allow()
}

func (l *Limiter) resolve(key string, capacity int, window time.Duration) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(rate.Every(window/time.Duration(capacity)), capacity)
		l.buckets[key] = b
	}
	return b
}
