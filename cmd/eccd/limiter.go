package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kochabx/eckit/core/rate"
	"github.com/kochabx/eckit/internal/conf"
	"github.com/kochabx/eckit/log"
)

// newLimiter 按配置创建限流器, 返回的 close 释放 redis 连接
func newLimiter(ctx context.Context, c conf.RateLimit) (rate.Limiter, func() error, error) {
	nop := func() error { return nil }

	if len(c.Redis.Addrs) == 0 {
		if c.Algorithm == "sliding_window" {
			return nil, nop, fmt.Errorf("rate limit: sliding_window requires redis")
		}
		lim, err := rate.NewLocalLimiter(c.Capacity, c.Rate)
		return lim, nop, err
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    c.Redis.Addrs,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		// 限流中间件出错时放行, 不阻止启动
		log.Warn().Err(err).Strs("addrs", c.Redis.Addrs).Msg("rate limit redis unreachable")
	}

	var (
		lim rate.Limiter
		err error
	)
	switch c.Algorithm {
	case "sliding_window":
		lim, err = rate.NewSlidingWindowLimiter(client, c.Redis.Prefix, c.Window, c.Capacity)
	default:
		lim, err = rate.NewTokenBucketLimiter(client, c.Redis.Prefix, c.Capacity, c.Rate)
	}
	if err != nil {
		_ = client.Close()
		return nil, nop, err
	}
	return lim, client.Close, nil
}
