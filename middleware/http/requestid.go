package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kochabx/eckit/log"
)

const (
	// RequestIDHeader 请求 ID 的请求头与响应头
	RequestIDHeader = "X-Request-Id"
	// requestIDKey gin.Context 中保存请求 ID 的键
	requestIDKey = "request_id"
)

// RequestIDConfig 请求 ID 中间件配置
type RequestIDConfig struct {
	Generator func() string // 请求 ID 生成函数，默认 uuid v4
	Logger    *log.Logger   // 绑定到请求上下文的日志记录器
}

// RequestID 创建请求 ID 中间件
//
// 优先沿用客户端传入的 X-Request-Id, 并把带 request_id 字段的 logger
// 绑定到 c.Request.Context(), 下游通过 log.Ctx 取用
func RequestID(cfgs ...RequestIDConfig) gin.HandlerFunc {
	cfg := RequestIDConfig{}
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	if cfg.Generator == nil {
		cfg.Generator = uuid.NewString
	}
	if cfg.Logger == nil {
		cfg.Logger = log.G
	}

	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = cfg.Generator()
		}

		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		logger := cfg.Logger.With().Str(requestIDKey, id).Logger()
		c.Request = c.Request.WithContext(log.WithContext(c.Request.Context(), logger))

		c.Next()
	}
}

// RequestIDFrom 返回当前请求的 ID, 未经过 RequestID 中间件时为空
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
