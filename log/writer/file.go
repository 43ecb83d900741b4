package writer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RotateMode 日志轮转方式
type RotateMode int

const (
	RotateBySize RotateMode = iota // lumberjack
	RotateByTime                   // file-rotatelogs
)

func (m RotateMode) String() string {
	if m == RotateByTime {
		return "time"
	}
	return "size"
}

// ParseRotateMode 空串视为 size
func ParseRotateMode(s string) (RotateMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "size":
		return RotateBySize, nil
	case "time":
		return RotateByTime, nil
	}
	return 0, fmt.Errorf("log: unsupported rotate mode %q", s)
}

// FileOptions 描述日志文件位置与轮转策略
//
// 按大小轮转时文件名为 <Name>.<Ext>; 按时间轮转时为 <Name>.<时间戳>.<Ext>,
// 并维护一个指向当前文件的 <Name>.<Ext> 软链接。
type FileOptions struct {
	Dir  string
	Name string
	Ext  string
	Mode RotateMode

	// size 模式
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool

	// time 模式
	Retain time.Duration
	Every  time.Duration
}

// File 打开带轮转的日志文件, 目录不存在时自动创建
func File(o FileOptions) (io.WriteCloser, error) {
	if o.Name == "" {
		return nil, errors.New("log: file name is empty")
	}
	if o.Dir != "" {
		if err := os.MkdirAll(o.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("log: create directory: %w", err)
		}
	}

	if o.Mode == RotateByTime {
		w, err := rotatelogs.New(
			o.path("%Y%m%d%H%M"),
			rotatelogs.WithLinkName(o.path("")),
			rotatelogs.WithMaxAge(o.Retain),
			rotatelogs.WithRotationTime(o.Every),
		)
		if err != nil {
			return nil, fmt.Errorf("log: open time rotated file: %w", err)
		}
		return w, nil
	}

	return &lumberjack.Logger{
		Filename:   o.path(""),
		MaxSize:    o.MaxSizeMB,
		MaxBackups: o.MaxBackups,
		MaxAge:     o.MaxAgeDays,
		Compress:   o.Compress,
	}, nil
}

func (o FileOptions) path(stamp string) string {
	parts := []string{o.Name}
	if stamp != "" {
		parts = append(parts, stamp)
	}
	if o.Ext != "" {
		parts = append(parts, o.Ext)
	}
	return filepath.Join(o.Dir, strings.Join(parts, "."))
}
