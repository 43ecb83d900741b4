package rate

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LocalLimiter 进程内令牌桶, 未配置 redis 时使用
type LocalLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*rate.Limiter
	capacity int
	rate     rate.Limit
}

func NewLocalLimiter(capacity, r int) (*LocalLimiter, error) {
	if capacity <= 0 || r <= 0 {
		return nil, ErrInvalidConfig
	}
	return &LocalLimiter{
		buckets:  make(map[string]*rate.Limiter),
		capacity: capacity,
		rate:     rate.Limit(r),
	}, nil
}

func (lim *LocalLimiter) AllowN(_ context.Context, key string, t time.Time, n int) (bool, error) {
	lim.mu.Lock()
	b, ok := lim.buckets[key]
	if !ok {
		b = rate.NewLimiter(lim.rate, lim.capacity)
		lim.buckets[key] = b
	}
	lim.mu.Unlock()

	return b.AllowN(t, n), nil
}
