// Package middleware provides HTTP middleware functions.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines the rate limiting parameters for an endpoint.
type RateLimitConfig struct {
	// RequestsPerMinute is the sustained allowed rate per client.
	RequestsPerMinute int
	// Burst is the number of requests a client may send at once.
	Burst int
}

// Rate limit profiles for the different endpoint types.
var (
	// StrictLimit guards mutating endpoints exposed to invite links (join).
	StrictLimit = RateLimitConfig{RequestsPerMinute: 10, Burst: 5}

	// ModerateLimit guards authenticated dashboard operations.
	ModerateLimit = RateLimitConfig{RequestsPerMinute: 60, Burst: 20}
)

// staleClientAge is how long an idle client entry is kept before pruning.
const staleClientAge = 10 * time.Minute

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit returns a middleware enforcing a per-client-IP token bucket.
// State lives in process memory; a multi-instance deployment limits per
// instance, which is acceptable for abuse protection.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	var mu sync.Mutex
	clients := make(map[string]*rateLimitClient)
	lastPrune := time.Now()

	return func(c *gin.Context) {
		now := time.Now()
		ip := c.ClientIP()

		mu.Lock()
		if now.Sub(lastPrune) > staleClientAge {
			for key, client := range clients {
				if now.Sub(client.lastSeen) > staleClientAge {
					delete(clients, key)
				}
			}
			lastPrune = now
		}

		client, ok := clients[ip]
		if !ok {
			limit := rate.Limit(float64(cfg.RequestsPerMinute) / 60.0)
			client = &rateLimitClient{limiter: rate.NewLimiter(limit, cfg.Burst)}
			clients[ip] = client
		}
		client.lastSeen = now
		allowed := client.limiter.Allow()
		mu.Unlock()

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":    "RATE_LIMITED",
					"message": "too many requests",
				},
			})
			return
		}

		c.Next()
	}
}
