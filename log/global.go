package log

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
)

var (
	// G 全局日志实例, 由 SetGlobalLogger 替换
	G *Logger

	// level 全局实例的动态级别, 配置热更新时只改这里
	level atomic.Int32
)

func init() {
	SetGlobalLogger(New())
}

// levelHook 丢弃低于动态级别的事件
type levelHook struct{}

func (levelHook) Run(e *zerolog.Event, l zerolog.Level, _ string) {
	if l < zerolog.Level(level.Load()) {
		e.Discard()
	}
}

// SetGlobalLogger installs logger as G and returns the previous one.
//
// The logger's own level becomes the initial dynamic level; afterwards
// SetGlobalLevel can raise or lower it while other goroutines are logging.
func SetGlobalLogger(logger *Logger) *Logger {
	level.Store(int32(logger.GetLevel()))
	logger.Logger = logger.Logger.Level(zerolog.TraceLevel).Hook(levelHook{})

	prev := G
	G = logger
	return prev
}

// SetGlobalLevel 修改全局实例的级别, 并发安全
func SetGlobalLevel(l zerolog.Level) {
	level.Store(int32(l))
}

// GlobalLevel 返回全局实例当前的级别
func GlobalLevel() zerolog.Level {
	return zerolog.Level(level.Load())
}

// WithContext 将 logger 绑定到 ctx, 通常由中间件附加 request_id 后调用
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// Ctx 返回 ctx 上绑定的 logger, 未绑定时返回全局 logger
func Ctx(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
			return l
		}
	}
	return &G.Logger
}

func Debug() *zerolog.Event {
	return G.Debug()
}

func Info() *zerolog.Event {
	return G.Info()
}

func Warn() *zerolog.Event {
	return G.Warn()
}

// Error 带堆栈
func Error() *zerolog.Event {
	return G.Error().Stack()
}
