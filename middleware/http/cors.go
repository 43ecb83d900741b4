package middleware

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// CorsConfig CORS 中间件配置
type CorsConfig struct {
	AllowOrigins     []string                // 允许的源, "*" 表示任意, "*.example.com" 匹配子域名
	AllowMethods     []string                // 允许的 HTTP 方法
	AllowHeaders     []string                // 允许的请求头
	ExposeHeaders    []string                // 暴露给客户端的响应头
	AllowCredentials bool                    // 是否允许携带凭证
	MaxAge           time.Duration           // 预检结果缓存时间
	SkipPaths        []string                // 跳过的路径
	SkipFunc         func(*gin.Context) bool // 自定义跳过函数
}

// DefaultCorsConfig 返回默认配置, 覆盖签名与请求 ID 头
func DefaultCorsConfig() CorsConfig {
	return CorsConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", RequestIDHeader, "X-Signature", "X-Timestamp"},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
}

// Cors 创建 CORS 中间件, 需挂在 engine 上才能处理未注册路由的 OPTIONS 预检
func Cors(cfgs ...CorsConfig) gin.HandlerFunc {
	cfg := DefaultCorsConfig()
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}

	allowAll := len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*"
	methods := strings.Join(cfg.AllowMethods, ", ")
	headers := strings.Join(cfg.AllowHeaders, ", ")
	expose := strings.Join(cfg.ExposeHeaders, ", ")
	maxAge := strconv.Itoa(int(cfg.MaxAge / time.Second))

	matcher := NewPathMatcher(cfg.SkipPaths)

	return func(c *gin.Context) {
		if shouldSkip(c, matcher, cfg.SkipFunc) {
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")
		if origin == "" || !(allowAll || originAllowed(origin, cfg.AllowOrigins)) {
			c.Next()
			return
		}

		header := c.Writer.Header()
		if allowAll && !cfg.AllowCredentials {
			header.Set("Access-Control-Allow-Origin", "*")
		} else {
			// 携带凭证时不能回写 *
			header.Set("Access-Control-Allow-Origin", origin)
			header.Add("Vary", "Origin")
		}
		if cfg.AllowCredentials {
			header.Set("Access-Control-Allow-Credentials", "true")
		}
		if expose != "" {
			header.Set("Access-Control-Expose-Headers", expose)
		}

		if c.Request.Method != http.MethodOptions || c.GetHeader("Access-Control-Request-Method") == "" {
			c.Next()
			return
		}

		// 预检请求
		header.Set("Access-Control-Allow-Methods", methods)
		header.Set("Access-Control-Allow-Headers", headers)
		if cfg.MaxAge > 0 {
			header.Set("Access-Control-Max-Age", maxAge)
		}
		c.AbortWithStatus(http.StatusNoContent)
	}
}

// originAllowed 精确匹配或按 "*.domain" 匹配子域名
func originAllowed(origin string, allowed []string) bool {
	host := origin
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		host = u.Hostname()
	}

	for _, a := range allowed {
		if a == origin {
			return true
		}
		if suffix, ok := strings.CutPrefix(a, "*."); ok && strings.HasSuffix(host, "."+suffix) {
			return true
		}
	}
	return false
}
