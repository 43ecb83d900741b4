package log

import (
	"github.com/rs/zerolog"

	"github.com/kochabx/eckit/log/desensitize"
)

// Option Logger 选项函数
type Option func(*Logger)

// WithLevel 设置初始级别; 安装为全局实例后由 SetGlobalLevel 接管
func WithLevel(level zerolog.Level) Option {
	return func(l *Logger) {
		l.Logger = l.Logger.Level(level)
	}
}

// WithCaller 附加 caller 字段
func WithCaller() Option {
	return func(l *Logger) {
		l.Logger = l.Logger.With().Caller().Logger()
	}
}

// WithFields 为每条日志附加固定字段, 例如服务名和默认曲线
func WithFields(fields map[string]any) Option {
	return func(l *Logger) {
		l.Logger = l.Logger.With().Fields(fields).Logger()
	}
}

// WithDesensitize 在最终 writer 前包一层脱敏, 私钥与共享密钥字段不落盘
func WithDesensitize(hook *desensitize.Hook) Option {
	return func(l *Logger) {
		l.desensitizeHook = hook
	}
}
