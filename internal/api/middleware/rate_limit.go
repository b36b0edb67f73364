package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/beingharisali/accounts-software-backend/pkg/response"
)

// RateLimiter 滑动窗口计数（Redis 实现）
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit 按客户端 IP 限流
// limit: 窗口内允许的最大请求数
// window: 滑动窗口时长
// limiter 为 nil 或 Redis 出错时降级放行
func RateLimit(limiter RateLimiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}

		allowed, err := limiter.CheckRateLimit(c.Request.Context(), "rate_limit:"+c.ClientIP(), limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			response.Error(c, http.StatusTooManyRequests, 10004, "Too many requests from this IP, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}

