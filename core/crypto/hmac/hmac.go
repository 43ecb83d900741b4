// Package hmac implements HMAC_DRBG (NIST SP 800-90A) without reseeding,
// the generator RFC 6979 uses to derive deterministic ECDSA nonces.
package hmac

import (
	"crypto/hmac"
	"hash"

	"github.com/kochabx/eckit/errors"
)

// DRBG HMAC_DRBG 生成器
type DRBG struct {
	h func() hash.Hash
	k []byte
	v []byte
}

// NewDRBG 使用给定的哈希函数和种子材料实例化生成器
// 种子按顺序拼接，对应 RFC 6979 中的 int2octets(x) || bits2octets(h1)
func NewDRBG(h func() hash.Hash, seed ...[]byte) (*DRBG, error) {
	if h == nil {
		return nil, errors.BadRequest("hash function cannot be nil")
	}

	size := h().Size()
	d := &DRBG{
		h: h,
		k: make([]byte, size), // K = 0x00 0x00 ...
		v: make([]byte, size), // V = 0x01 0x01 ...
	}
	for i := range d.v {
		d.v[i] = 0x01
	}

	d.update(seed...)
	return d, nil
}

// Read 填充 p 并在输出后更新内部状态，永不返回错误
func (d *DRBG) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		d.v = d.mac(d.k, d.v)
		n += copy(p[n:], d.v)
	}
	d.update()
	return n, nil
}

// Reset 清除内部状态
func (d *DRBG) Reset() {
	clear(d.k)
	clear(d.v)
}

// update 是 HMAC_DRBG_Update：
//
//	K = HMAC(K, V || 0x00 || data); V = HMAC(K, V)
//	若 data 非空：K = HMAC(K, V || 0x01 || data); V = HMAC(K, V)
func (d *DRBG) update(data ...[]byte) {
	d.k = d.mac(d.k, append([][]byte{d.v, {0x00}}, data...)...)
	d.v = d.mac(d.k, d.v)

	if totalLen(data) == 0 {
		return
	}
	d.k = d.mac(d.k, append([][]byte{d.v, {0x01}}, data...)...)
	d.v = d.mac(d.k, d.v)
}

// mac 计算 HMAC(key, parts[0] || parts[1] || ...)
func (d *DRBG) mac(key []byte, parts ...[]byte) []byte {
	m := hmac.New(d.h, key)
	for _, p := range parts {
		m.Write(p)
	}
	return m.Sum(nil)
}

func totalLen(parts [][]byte) int {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	return n
}
