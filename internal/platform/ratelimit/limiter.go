// Package ratelimit throttles credential-guessing endpoints with a Redis
// fixed-window counter keyed by client IP.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Limiter は1ウィンドウあたりの呼び出し回数を制限します。
// clientがnilの場合（Redis未設定時）は常に許可します。
type Limiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewLimiter creates a fixed-window limiter. A nil client disables limiting.
func NewLimiter(client *redis.Client, limit int, window time.Duration, prefix string) *Limiter {
	return &Limiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: prefix,
	}
}

func (l *Limiter) key(k string) string {
	return fmt.Sprintf("%s:%s", l.prefix, k)
}

// Allow increments the counter for key and reports whether the caller is
// within the limit. Redis failures fail open.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil || l.client == nil {
		return true, nil
	}

	count, err := l.client.Incr(ctx, l.key(key)).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		// ウィンドウの起点。有効期限切れでカウンタごと消える
		if err := l.client.Expire(ctx, l.key(key), l.window).Err(); err != nil {
			return true, err
		}
	}

	return count <= int64(l.limit), nil
}

// Middleware returns a Gin middleware that applies the limiter per client IP.
func Middleware(l *Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request", "error", err)
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests"})
			return
		}
		c.Next()
	}
}
