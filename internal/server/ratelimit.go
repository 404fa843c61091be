package server

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// rateLimitConfig controls the per-client token bucket. A non-positive
// capacity disables limiting.
type rateLimitConfig struct {
	capacity   int
	refillRate float64 // tokens per second
}

// loadRateLimitConfig reads RATE_LIMIT_BURST and RATE_LIMIT_RPS from the
// environment, defaulting to 60 requests of burst refilled at 10/s.
func loadRateLimitConfig() rateLimitConfig {
	cfg := rateLimitConfig{capacity: 60, refillRate: 10}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.capacity = n
		}
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.refillRate = f
		}
	}
	return cfg
}

// bucket tracks one client's remaining tokens.
type bucket struct {
	tokens float64
	last   time.Time
}

// rateLimiter is a token-bucket limiter keyed by client id.
type rateLimiter struct {
	mu      sync.Mutex
	cfg     rateLimitConfig
	buckets map[string]*bucket
}

func newRateLimiter(cfg rateLimitConfig) *rateLimiter {
	return &rateLimiter{cfg: cfg, buckets: make(map[string]*bucket)}
}

// allow consumes one token for the client if available.
func (l *rateLimiter) allow(client string) bool {
	if l.cfg.capacity <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[client]
	if !ok {
		b = &bucket{tokens: float64(l.cfg.capacity), last: now}
		l.buckets[client] = b
	}

	b.tokens += now.Sub(b.last).Seconds() * l.cfg.refillRate
	if b.tokens > float64(l.cfg.capacity) {
		b.tokens = float64(l.cfg.capacity)
	}
	b.last = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}
