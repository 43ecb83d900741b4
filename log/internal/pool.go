package internal

import (
	"bytes"
	"sync"
)

// maxPooledSize 超过该容量的 Buffer 交给 GC 回收
const maxPooledSize = 64 * 1024

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// GetBuffer 从池中获取一个 Buffer
func GetBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// PutBuffer 清空并归还 Buffer, 日志内容可能包含脱敏前的数据
func PutBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledSize {
		return
	}
	b := buf.Bytes()
	clear(b[:cap(b)])
	buf.Reset()
	bufferPool.Put(buf)
}
