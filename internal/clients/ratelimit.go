package clients

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RateLimiter is a token bucket limiter with one bucket per shop, so one
// shop refreshing its dashboard cannot starve the others.
type RateLimiter struct {
	buckets map[uuid.UUID]*tokenBucket
	mu      sync.RWMutex
	config  RateLimitConfig
}

// RateLimitConfig holds rate limit configuration.
type RateLimitConfig struct {
	// Requests per second per shop
	RPS int
	// Maximum requests that can be made at once
	Burst int
}

// DefaultRateLimitConfig returns the limits used against service-order.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RPS:   10,
		Burst: 20,
	}
}

type tokenBucket struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	mu         sync.Mutex
}

func newTokenBucket(rps, burst int) *tokenBucket {
	return &tokenBucket{
		tokens:     float64(burst),
		maxTokens:  float64(burst),
		refillRate: float64(rps),
		lastRefill: time.Now(),
	}
}

// take takes a token and returns how long to wait when none is left.
func (tb *tokenBucket) take() time.Duration {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.tokens += elapsed * tb.refillRate
	if tb.tokens > tb.maxTokens {
		tb.tokens = tb.maxTokens
	}
	tb.lastRefill = now

	if tb.tokens >= 1 {
		tb.tokens--
		return 0
	}

	// The deficit is reserved, so the caller owns the next token.
	deficit := 1 - tb.tokens
	tb.tokens--
	return time.Duration(deficit / tb.refillRate * float64(time.Second))
}

// NewRateLimiter creates a new rate limiter with the given configuration.
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.RPS <= 0 {
		config.RPS = DefaultRateLimitConfig().RPS
	}
	if config.Burst <= 0 {
		config.Burst = config.RPS
	}
	return &RateLimiter{
		buckets: make(map[uuid.UUID]*tokenBucket),
		config:  config,
	}
}

// Wait blocks until a request can be made for the shop.
// Returns an error if the context is cancelled while waiting.
func (rl *RateLimiter) Wait(ctx context.Context, shopID uuid.UUID) error {
	waitTime := rl.bucket(shopID).take()
	if waitTime == 0 {
		return nil
	}

	timer := time.NewTimer(waitTime)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (rl *RateLimiter) bucket(shopID uuid.UUID) *tokenBucket {
	rl.mu.RLock()
	bucket, exists := rl.buckets[shopID]
	rl.mu.RUnlock()
	if exists {
		return bucket
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Double-check after acquiring write lock
	if bucket, exists = rl.buckets[shopID]; exists {
		return bucket
	}
	bucket = newTokenBucket(rl.config.RPS, rl.config.Burst)
	rl.buckets[shopID] = bucket
	return bucket
}
