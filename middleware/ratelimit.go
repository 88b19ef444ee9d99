package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	bucketStaleAfter    = 10 * time.Minute
	bucketSweepInterval = 5 * time.Minute
)

// bucket tracks the remaining request allowance for one client IP.
type bucket struct {
	remaining float64
	updated   time.Time
}

// RateLimiter is a token-bucket limiter keyed by client IP, applied across the
// whole API surface. Deal submissions carry their own stricter quota on top.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	burst     float64
	perSecond float64

	now func() time.Time
}

// NewRateLimiter allows maxRequests per window from each IP, refilled evenly
// across the window.
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets:   make(map[string]*bucket),
		burst:     float64(maxRequests),
		perSecond: float64(maxRequests) / window.Seconds(),
		now:       time.Now,
	}
	go rl.sweep()
	return rl
}

// sweep drops buckets for IPs that have gone quiet so the map stays bounded.
func (rl *RateLimiter) sweep() {
	for range time.Tick(bucketSweepInterval) {
		rl.mu.Lock()
		cutoff := rl.now().Add(-bucketStaleAfter)
		for ip, b := range rl.buckets {
			if b.updated.Before(cutoff) {
				delete(rl.buckets, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[ip]
	if !ok {
		rl.buckets[ip] = &bucket{remaining: rl.burst - 1, updated: now}
		return true
	}

	b.remaining += now.Sub(b.updated).Seconds() * rl.perSecond
	if b.remaining > rl.burst {
		b.remaining = rl.burst
	}
	b.updated = now

	if b.remaining < 1 {
		return false
	}
	b.remaining--
	return true
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please wait before trying again.",
			})
			return
		}
		c.Next()
	}
}
