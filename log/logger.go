package log

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/kochabx/eckit/log/desensitize"
	"github.com/kochabx/eckit/log/writer"
)

// Logger 日志记录器
type Logger struct {
	zerolog.Logger
	desensitizeHook *desensitize.Hook
	closer          io.Closer // 文件输出时非空
}

// GetDesensitizeHook 获取脱敏钩子
func (l *Logger) GetDesensitizeHook() *desensitize.Hook {
	return l.desensitizeHook
}

// Close 关闭日志记录器，释放资源
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func init() {
	zerolog.TimeFieldFormat = time.DateTime
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

// newLogger 统一的 Logger 构建方法
func newLogger(w io.Writer, opts ...Option) *Logger {
	logger := &Logger{}

	// 先收集脱敏钩子, 再以最终的 writer 构建 Logger
	for _, opt := range opts {
		opt(logger)
	}
	if logger.desensitizeHook != nil {
		w = desensitize.NewWriter(w, logger.desensitizeHook)
	}

	logger.Logger = zerolog.New(w).With().Timestamp().Logger()
	for _, opt := range opts {
		opt(logger)
	}
	return logger
}

// New 创建新的 Logger 实例，输出到控制台
func New(opts ...Option) *Logger {
	return newLogger(writer.Console(), opts...)
}

// NewWriter 创建输出到任意 writer 的 JSON Logger
func NewWriter(w io.Writer, opts ...Option) *Logger {
	return newLogger(w, opts...)
}

// NewFile 创建文件输出的 Logger, Close 时关闭文件
func NewFile(c FileConfig, opts ...Option) (*Logger, error) {
	fw, err := fileWriter(c)
	if err != nil {
		return nil, err
	}

	logger := newLogger(fw, opts...)
	logger.closer = fw
	return logger, nil
}

// NewMulti 同时输出到文件和控制台
func NewMulti(c FileConfig, opts ...Option) (*Logger, error) {
	fw, err := fileWriter(c)
	if err != nil {
		return nil, err
	}

	logger := newLogger(zerolog.MultiLevelWriter(fw, writer.Console()), opts...)
	logger.closer = fw
	return logger, nil
}

// NewFromConfig 按配置创建 Logger
func NewFromConfig(c Config, opts ...Option) (*Logger, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	all := []Option{WithLevel(level)}
	if c.Caller {
		all = append(all, WithCaller())
	}
	if c.Desensitize {
		all = append(all, WithDesensitize(desensitize.NewHook(desensitize.BuiltinRules()...)))
	}
	all = append(all, opts...)

	switch strings.ToLower(c.Output) {
	case "", "console":
		return New(all...), nil
	case "file":
		return NewFile(c.File, all...)
	case "multi":
		return NewMulti(c.File, all...)
	}
	return nil, fmt.Errorf("unsupported log output: %q", c.Output)
}

// ParseLevel 解析日志级别, 空字符串为 info
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func fileWriter(c FileConfig) (io.WriteCloser, error) {
	o, err := c.withDefaults().options()
	if err != nil {
		return nil, err
	}
	return writer.File(o)
}
