package middleware

import (
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter *rate.Limiter
	last    atomic.Int64
}

// RateLimitPerIP caps request rate per client IP, tracking visitors in an
// LRU so the table cannot grow without bound. Entries idle longer than ttl
// are swept inline on the request path; no janitor goroutine outlives the
// router.
func RateLimitPerIP(limit, burst, cacheSize int, ttl time.Duration) gin.HandlerFunc {
	visitors, _ := lru.New[string, *visitor](cacheSize)

	var lastSweep atomic.Int64
	lastSweep.Store(time.Now().UnixNano())

	sweep := func(now int64) {
		for _, key := range visitors.Keys() {
			if v, ok := visitors.Peek(key); ok && now-v.last.Load() > int64(ttl) {
				visitors.Remove(key)
			}
		}
	}

	return func(c *gin.Context) {
		now := time.Now().UnixNano()
		if prev := lastSweep.Load(); now-prev > int64(ttl) && lastSweep.CompareAndSwap(prev, now) {
			sweep(now)
		}

		host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
		if err != nil {
			host = c.Request.RemoteAddr
		}

		v, ok := visitors.Get(host)
		if !ok {
			v = &visitor{limiter: rate.NewLimiter(rate.Limit(limit), burst)}
			visitors.Add(host, v)
		}
		v.last.Store(now)

		if !v.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
