package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ipLimiter 单个 IP 的限流器及最近访问时间
type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ScanRateLimit 扫描端点的按 IP 限流中间件
//
// 每分钟允许 perMinute 次扫描，突发上限等于配额；
// 空闲超过 10 分钟的 IP 条目会被惰性清理。
func ScanRateLimit(perMinute int, log *zap.Logger) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*ipLimiter)
		nextGC   = time.Now().Add(10 * time.Minute)
	)

	limit := rate.Every(time.Minute / time.Duration(perMinute))

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		if now.After(nextGC) {
			for key, entry := range limiters {
				if now.Sub(entry.lastSeen) > 10*time.Minute {
					delete(limiters, key)
				}
			}
			nextGC = now.Add(10 * time.Minute)
		}

		entry, ok := limiters[ip]
		if !ok {
			entry = &ipLimiter{limiter: rate.NewLimiter(limit, perMinute)}
			limiters[ip] = entry
		}
		entry.lastSeen = now
		allowed := entry.limiter.Allow()
		mu.Unlock()

		if !allowed {
			log.Warn("scan rate limit exceeded", zap.String("ip", ip))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many scan requests",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
