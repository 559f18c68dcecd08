package middleware

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"drivefund/utils"

	"github.com/gin-gonic/gin"
)

const visitorTTL = time.Hour

// RateLimiter keeps one token bucket per client.
type RateLimiter struct {
	visitors map[string]*Visitor
	mutex    sync.Mutex
	window   time.Duration
	burst    int
	now      func() time.Time
}

type Visitor struct {
	limiter  *TokenBucket
	lastSeen time.Time
}

// TokenBucket holds up to capacity tokens and regains one every refillRate.
type TokenBucket struct {
	tokens     int
	capacity   int
	refillRate time.Duration
	lastRefill time.Time
	mutex      sync.Mutex
}

// NewRateLimiter allows burst requests per window for each client.
func NewRateLimiter(window time.Duration, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		visitors: make(map[string]*Visitor),
		window:   window,
		burst:    burst,
		now:      time.Now,
	}
}

func NewTokenBucket(capacity int, refillRate time.Duration, now time.Time) *TokenBucket {
	return &TokenBucket{
		tokens:     capacity,
		capacity:   capacity,
		refillRate: refillRate,
		lastRefill: now,
	}
}

func (tb *TokenBucket) Allow(now time.Time) bool {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	elapsed := now.Sub(tb.lastRefill)

	// Refill tokens based on elapsed time
	if tb.refillRate > 0 && elapsed >= tb.refillRate {
		tokensToAdd := int(elapsed / tb.refillRate)
		tb.tokens = min(tb.capacity, tb.tokens+tokensToAdd)
		tb.lastRefill = tb.lastRefill.Add(time.Duration(tokensToAdd) * tb.refillRate)
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true
	}

	return false
}

func (rl *RateLimiter) Allow(key string) bool {
	now := rl.now()

	rl.mutex.Lock()
	visitor, exists := rl.visitors[key]
	if !exists {
		visitor = &Visitor{
			limiter: NewTokenBucket(rl.burst, rl.window/time.Duration(rl.burst), now),
		}
		rl.visitors[key] = visitor
	}
	visitor.lastSeen = now
	rl.mutex.Unlock()

	return visitor.limiter.Allow(now)
}

// Cleanup drops visitors idle for longer than an hour.
func (rl *RateLimiter) Cleanup() {
	now := rl.now()

	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	for key, visitor := range rl.visitors {
		if now.Sub(visitor.lastSeen) > visitorTTL {
			delete(rl.visitors, key)
		}
	}
}

// RunCleanup calls Cleanup every interval until stop is closed.
func (rl *RateLimiter) RunCleanup(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.Cleanup()
		case <-stop:
			return
		}
	}
}

// RateLimitMiddleware applies rate limiting per admin, or per client IP
// before authentication.
func RateLimitMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(getClientID(c)) {
			c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.burst))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", strconv.FormatInt(limiter.now().Add(limiter.window).Unix(), 10))

			utils.TooManyRequestsResponse(c, "Rate limit exceeded")
			c.Abort()
			return
		}

		c.Next()
	}
}

// getClientID returns client identifier for rate limiting
func getClientID(c *gin.Context) string {
	if claims, exists := utils.GetAdminClaimsFromContext(c); exists && claims.AdminID != "" {
		return fmt.Sprintf("admin:%s", claims.AdminID)
	}

	return fmt.Sprintf("ip:%s", c.ClientIP())
}
