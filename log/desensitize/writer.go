package desensitize

import (
	"io"

	"github.com/kochabx/eckit/log/internal"
)

// Writer 包装 writer 以支持脱敏
type Writer struct {
	writer io.Writer
	hook   *Hook
}

// NewWriter 创建脱敏 writer
func NewWriter(writer io.Writer, hook *Hook) *Writer {
	if writer == nil {
		panic("writer cannot be nil")
	}
	if hook == nil {
		panic("hook cannot be nil")
	}

	return &Writer{
		writer: writer,
		hook:   hook,
	}
}

// Write 实现 io.Writer 接口. 成功时返回 len(p), 与脱敏后的长度无关
func (w *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if w.hook.RuleCount() == 0 {
		return w.writer.Write(p)
	}

	text := string(p)
	desensitized := w.hook.Desensitize(text)
	if desensitized == text {
		return w.writer.Write(p)
	}

	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)
	buf.WriteString(desensitized)

	if _, err := w.writer.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close 关闭下层 writer (如果支持)
func (w *Writer) Close() error {
	if c, ok := w.writer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
