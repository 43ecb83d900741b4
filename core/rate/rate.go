// Package rate 提供按 key 计数的限流器, 分布式实现基于 redis lua 脚本
package rate

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidConfig   = errors.New("rate: capacity and rate must be positive")
	ErrUnexpectedReply = errors.New("rate: unexpected script reply")
)

// Limiter 按 key 限流, key 通常为客户端 IP 或调用方标识
type Limiter interface {
	// AllowN 在时刻 t 申请 n 个配额
	AllowN(ctx context.Context, key string, t time.Time, n int) (bool, error)
}

// Allow 申请一个配额
func Allow(ctx context.Context, l Limiter, key string) (bool, error) {
	return l.AllowN(ctx, key, time.Now(), 1)
}

func scriptResult(v any, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	n, ok := v.(int64)
	if !ok {
		return false, ErrUnexpectedReply
	}
	return n == 1, nil
}
