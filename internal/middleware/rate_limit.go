package middleware

import (
	"context"
	"fmt"
	"time"

	"vaatco/internal/database"
	"vaatco/pkg/config"
	"vaatco/pkg/logger"
	"vaatco/pkg/response"

	"github.com/gin-gonic/gin"
)

// RateLimit 公共接口限流，基于Redis的固定窗口计数。
// 未启用Redis或Redis不可用时放行，限流是保护手段而非正确性依赖。
func RateLimit() gin.HandlerFunc {
	cfg := config.GetConfig()
	limit := cfg.RateLimit.Requests
	windowSecs := cfg.RateLimit.Window
	if windowSecs <= 0 {
		windowSecs = 60
	}
	window := time.Duration(windowSecs) * time.Second

	return func(c *gin.Context) {
		rdb := database.GetRedis()
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 500*time.Millisecond)
		defer cancel()

		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), time.Now().Unix()/int64(windowSecs))
		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			logger.GetLogger().Warnf("rate limit check failed: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			response.TooManyRequests(c, "Too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
