package middleware

import (
	"bytes"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kochabx/eckit/log"
)

// LoggerConfig 访问日志中间件配置
type LoggerConfig struct {
	RequestBody  bool                    // 是否记录请求体, 密钥字段由 desensitize hook 脱敏
	ResponseBody bool                    // 是否记录响应体
	Header       bool                    // 是否记录请求头
	SkipPaths    []string                // 跳过记录的路径
	SkipFunc     func(*gin.Context) bool // 动态跳过判断函数
	Logger       *log.Logger             // 自定义日志记录器
}

// bodyWriter 包装 gin.ResponseWriter 以捕获响应体
type bodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Logger 创建访问日志中间件
//
// 5xx 记为 error, 4xx 记为 warn, 其余为 info
func Logger(cfgs ...LoggerConfig) gin.HandlerFunc {
	cfg := LoggerConfig{}
	if len(cfgs) > 0 {
		cfg = cfgs[0]
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

		start := time.Now()

		var requestBody []byte
		if cfg.RequestBody {
			if body, err := c.GetRawData(); err == nil {
				requestBody = body
				c.Request.Body = io.NopCloser(bytes.NewReader(body))
			}
		}

		var bw *bodyWriter
		if cfg.ResponseBody {
			bw = &bodyWriter{ResponseWriter: c.Writer, body: new(bytes.Buffer)}
			c.Writer = bw
		}

		c.Next()

		status := c.Writer.Status()
		event := cfg.Logger.WithLevel(levelFor(status)).
			Int("status", status).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP())

		if route := c.FullPath(); route != "" {
			event = event.Str("route", route)
		}
		if query := c.Request.URL.RawQuery; query != "" {
			event = event.Str("query", query)
		}
		if id := RequestIDFrom(c); id != "" {
			event = event.Str("request_id", id)
		}
		if cfg.Header {
			event = event.Any("headers", c.Request.Header)
		}
		if len(requestBody) > 0 {
			event = event.Bytes("request_body", requestBody)
		}
		if bw != nil {
			event = event.Bytes("response_body", bw.body.Bytes())
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.ByType(gin.ErrorTypePrivate).String())
		}

		event.Msg("request")
	}
}

func levelFor(status int) zerolog.Level {
	switch {
	case status >= 500:
		return zerolog.ErrorLevel
	case status >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
