package middleware

import (
	"errors"
	"fmt"
	"net"
	"net/http/httputil"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/eckit/log"
	"github.com/kochabx/eckit/transport/http"
)

// RecoveryConfig Recovery 中间件配置
type RecoveryConfig struct {
	StackTrace bool        // 是否记录堆栈信息
	Logger     *log.Logger // 自定义日志记录器
}

// Recovery 创建 Recovery 中间件, panic 以 500 PANIC 响应
func Recovery(cfgs ...RecoveryConfig) gin.HandlerFunc {
	cfg := RecoveryConfig{StackTrace: true}
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}

	if cfg.Logger == nil {
		cfg.Logger = log.G
	}

	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			// 请求体可能含密文, 只转储请求头
			dump, _ := httputil.DumpRequest(c.Request, false)

			if isBrokenPipe(rec) {
				cfg.Logger.Warn().
					Str("error", fmt.Sprint(rec)).
					Bytes("request", dump).
					Msg("broken pipe")
				_ = c.Error(fmt.Errorf("%v", rec))
				c.Abort()
				return
			}

			event := cfg.Logger.Error().
				Str("error", fmt.Sprint(rec)).
				Str("request_id", RequestIDFrom(c)).
				Bytes("request", dump)
			if cfg.StackTrace {
				event = event.Bytes("stack", debug.Stack())
			}
			event.Msg("panic recovered")

			http.GinError(c, ErrInternal)
		}()
		c.Next()
	}
}

// isBrokenPipe 检查是否为断开的连接错误
func isBrokenPipe(rec any) bool {
	err, ok := rec.(error)
	if !ok {
		return false
	}
	var ne *net.OpError
	if !errors.As(err, &ne) {
		return false
	}
	var se *os.SyscallError
	if !errors.As(ne, &se) {
		return false
	}
	msg := strings.ToLower(se.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
