package ratelimit

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Config holds rate limiter configuration
type Config struct {
	IPLimitPerMin   int // IP-based rate limit per minute
	BurstMultiplier int // Burst capacity multiplier
}

// DefaultConfig returns default rate limiting configuration
func DefaultConfig() Config {
	return Config{
		IPLimitPerMin:   60,
		BurstMultiplier: 2,
	}
}

// Result represents the result of a rate limit check
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// RateLimiter provides per-IP rate limiting with in-memory token buckets.
type RateLimiter struct {
	config Config

	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
}

// NewRateLimiter creates a new in-memory rate limiter
func NewRateLimiter(config Config) *RateLimiter {
	rl := &RateLimiter{
		config:   config,
		limiters: make(map[string]*rate.Limiter),
	}

	go rl.cleanupLimiters()

	return rl
}

// AllowIP checks if an IP address is allowed to make a request (per-minute limit)
func (rl *RateLimiter) AllowIP(ip string) *Result {
	key := fmt.Sprintf("ratelimit:ip:%s", ip)
	return rl.allow(key, rl.config.IPLimitPerMin, time.Minute)
}

// allow performs a token bucket check for the given key
func (rl *RateLimiter) allow(key string, limit int, period time.Duration) *Result {
	rl.mu.Lock()
	limiter, exists := rl.limiters[key]
	if !exists {
		rps := rate.Limit(float64(limit) / period.Seconds())
		burst := limit * rl.config.BurstMultiplier
		if burst < 5 {
			burst = 5
		}
		limiter = rate.NewLimiter(rps, burst)
		rl.limiters[key] = limiter
	}
	rl.mu.Unlock()

	allowed := limiter.Allow()

	remaining := int(limiter.Tokens())
	if remaining < 0 {
		remaining = 0
	}

	result := &Result{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   time.Now().Add(period),
	}

	if !allowed {
		result.RetryAfter = time.Until(result.ResetAt)
	}

	return result
}

// cleanupLimiters periodically clears idle limiters so the map stays bounded
func (rl *RateLimiter) cleanupLimiters() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		if len(rl.limiters) > 1000 {
			slog.Info("Cleaning up rate limiters", "count", len(rl.limiters))
			rl.limiters = make(map[string]*rate.Limiter)
		}
		rl.mu.Unlock()
	}
}

// GetStats returns rate limiter statistics
func (rl *RateLimiter) GetStats() map[string]interface{} {
	rl.mu.RLock()
	count := len(rl.limiters)
	rl.mu.RUnlock()

	return map[string]interface{}{
		"active_limiters":  count,
		"ip_limit_per_min": rl.config.IPLimitPerMin,
	}
}

// Middleware enforces the per-IP limit and sets standard rate limit headers.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		result := rl.AllowIP(c.ClientIP())

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))

		if !result.Allowed {
			c.Header("Retry-After", fmt.Sprintf("%.0f", result.RetryAfter.Seconds()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": result.RetryAfter.Seconds(),
			})
			return
		}

		c.Next()
	}
}
