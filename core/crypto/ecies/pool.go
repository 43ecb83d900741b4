package ecies

import "sync"

// bufferPool 复用加解密过程中的临时缓冲区
type bufferPool struct {
	pool    sync.Pool
	maxSize int // 超过该容量的缓冲区不回收
}

var buffers = newBufferPool(1024, 64*1024)

func newBufferPool(initial, maxSize int) *bufferPool {
	return &bufferPool{
		pool: sync.Pool{
			New: func() any {
				buf := make([]byte, 0, initial)
				return &buf
			},
		},
		maxSize: maxSize,
	}
}

// get 返回长度为 n 的缓冲区
func (p *bufferPool) get(n int) []byte {
	buf := *p.pool.Get().(*[]byte)
	if cap(buf) < n {
		buf = make([]byte, 0, n)
	}
	return buf[:n]
}

// put 清零后归还缓冲区, 其中可能残留明文或密钥材料
func (p *bufferPool) put(buf []byte) {
	if cap(buf) > p.maxSize {
		return
	}
	clear(buf[:cap(buf)])
	buf = buf[:0]
	p.pool.Put(&buf)
}
