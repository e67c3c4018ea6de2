package ratelimit

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Config defines the fixed-window limit applied per client IP.
type Config struct {
	Capacity int
	Window   time.Duration
}

// New returns a Gin middleware limiting requests per client IP using a
// Redis fixed window (INCR + EXPIRE). A nil client disables limiting;
// Redis errors fail open so an outage never blocks bookings.
func New(cfg Config, rdb *redis.Client, logger *slog.Logger) gin.HandlerFunc {
	if rdb == nil || cfg.Capacity <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s:%s", c.ClientIP(), c.FullPath())

		pipe := rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, cfg.Window)
		if _, err := pipe.Exec(ctx); err != nil {
			logger.Warn("rate limit check failed, allowing request", "error", err)
			c.Next()
			return
		}

		if incr.Val() > int64(cfg.Capacity) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(cfg.Window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, try again later",
			})
			return
		}

		c.Next()
	}
}
