package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kochabx/eckit/core/rate"
	"github.com/kochabx/eckit/log"
	"github.com/kochabx/eckit/transport/http"
)

// RateLimitConfig 限流中间件配置
type RateLimitConfig struct {
	Limiter      rate.Limiter              // 限流器
	KeyFunc      func(*gin.Context) string // 限流维度, 默认客户端 IP
	SkipPaths    []string                  // 跳过的路径
	SkipFunc     func(*gin.Context) bool   // 自定义跳过函数
	ErrorHandler func(*gin.Context)        // 超限处理
	Logger       *log.Logger               // 自定义日志记录器
}

// RateLimit 创建限流中间件
//
// 限流器自身出错时放行请求并记录告警, 避免 redis 故障导致服务不可用。
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		panic("middleware: Limiter is required")
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c *gin.Context) {
			http.GinError(c, ErrRateLimited)
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.G
	}

	matcher := NewPathMatcher(cfg.SkipPaths)

	return func(c *gin.Context) {
		if shouldSkip(c, matcher, cfg.SkipFunc) {
			c.Next()
			return
		}

		key := cfg.KeyFunc(c)
		ok, err := rate.Allow(c.Request.Context(), cfg.Limiter, key)
		if err != nil {
			cfg.Logger.Warn().Err(err).Str("request_id", RequestIDFrom(c)).Msg("ratelimit: limiter unavailable")
			c.Next()
			return
		}
		if !ok {
			cfg.Logger.Debug().Str("key", key).Str("path", c.Request.URL.Path).Msg("ratelimit: rejected")
			cfg.ErrorHandler(c)
			return
		}
		c.Next()
	}
}
