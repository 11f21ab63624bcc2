// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements an in-memory token-bucket rate limiter. Every caller
// gets its own bucket, keyed by the X-User-ID identity when one was sent and
// by client IP otherwise.
//
// Behaviour:
//   - Buckets come from golang.org/x/time/rate and are created on first use.
//   - Idle buckets are swept opportunistically so memory stays bounded.
//   - Requests flagged as idempotent replays by IdempotencyValidator do not
//     spend a token.
//   - Rejections use the JSON error envelope with code "rate_limited" and a
//     Retry-After header.
//
// Notes:
//   - The limiter is process-local. Running several replicas multiplies the
//     effective limit by the replica count.
//   - X-User-ID is not authenticated, so the limiter protects capacity and is
//     not an access control.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	visitorTTL      = 10 * time.Minute
	sweepEveryCalls = 5000
)

// keyFunc maps a request to its rate-limit bucket.
//
// The returned key must be stable for the lifetime of the request; it selects
// the token bucket consulted by RateLimiter.Handler.
type keyFunc func(*gin.Context) string

// KeyByUserOrIP buckets by the X-User-ID identity when present, otherwise by
// client IP.
//
// Keys are prefixed so the two namespaces never collide ("user:42" versus
// "ip:203.0.113.7"). Identity must run earlier in the chain for the user
// branch to apply.
func KeyByUserOrIP() keyFunc {
	return func(c *gin.Context) string {
		if uid := UserID(c); uid != "" {
			return "user:" + uid
		}
		return "ip:" + c.ClientIP()
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a process-local token bucket per key.
//
// Buckets live in a mutex-guarded map. Every sweepEveryCalls lookups the map
// is scanned and buckets idle for longer than visitorTTL are dropped.
//
// RateLimiter is safe for concurrent use.
type RateLimiter struct {
	rps   rate.Limit
	burst int
	keyFn keyFunc

	mu       sync.Mutex
	visitors map[string]*visitor
	ttl      time.Duration
	calls    uint64
}

// NewRateLimiter builds a limiter keyed by keyFn.
//
//   - rps:   tokens refilled per second; 0 rejects everything after the burst.
//   - burst: bucket capacity; values <= 0 are coerced to 1.
//   - keyFn: maps a request to its bucket, usually KeyByUserOrIP().
//
// Install it with r.Use(rl.Handler()).
func NewRateLimiter(rps float64, burst int, keyFn keyFunc) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		keyFn:    keyFn,
		visitors: make(map[string]*visitor),
		ttl:      visitorTTL,
	}
}

// getVisitor sweeps before lookup so a stale bucket is evicted even when it
// is the one being asked for.
func (rl *RateLimiter) getVisitor(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.calls++
	if rl.calls >= sweepEveryCalls {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) >= rl.ttl {
				delete(rl.visitors, k)
			}
		}
		rl.calls = 0
	}

	if v, ok := rl.visitors[key]; ok {
		v.lastSeen = now
		return v.limiter
	}
	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.visitors[key] = &visitor{limiter: lim, lastSeen: now}
	return lim
}

// IsRateBypass reports whether IdempotencyValidator flagged the request as a
// replay, which is served without spending a token.
func IsRateBypass(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyRateBypass)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Handler enforces the limit.
//
// Allowed and replayed requests continue down the chain. Others are aborted
// with 429, the error envelope (code "rate_limited", the request id) and
// Retry-After: 1.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) || rl.getVisitor(rl.keyFn(c)).Allow() {
			c.Next()
			return
		}
		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id": c.Writer.Header().Get(requestIDHeader),
			"code":       "rate_limited",
			"message":    "rate limit exceeded",
		})
	}
}
