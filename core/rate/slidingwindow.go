package rate

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// 窗口内的每次请求记为 zset 成员, 分值为毫秒时间戳
const slidingWindowLua = `
local window = tonumber(ARGV[1])
local limit = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])

redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', now - window)
local count = redis.call('ZCARD', KEYS[1])
if count + requested > limit then
  return 0
end

for i = 1, requested do
  redis.call('ZADD', KEYS[1], now, ARGV[5] .. ':' .. i)
end
redis.call('PEXPIRE', KEYS[1], window)
return 1
`

var slidingWindowScript = redis.NewScript(slidingWindowLua)

// SlidingWindowLimiter redis 滑动窗口, window 内最多 limit 次
type SlidingWindowLimiter struct {
	client redis.Scripter
	prefix string
	window time.Duration
	limit  int
}

func NewSlidingWindowLimiter(client redis.Scripter, prefix string, window time.Duration, limit int) (*SlidingWindowLimiter, error) {
	if window < time.Millisecond || limit <= 0 {
		return nil, ErrInvalidConfig
	}
	return &SlidingWindowLimiter{
		client: client,
		prefix: prefix,
		window: window,
		limit:  limit,
	}, nil
}

func (lim *SlidingWindowLimiter) AllowN(ctx context.Context, key string, t time.Time, n int) (bool, error) {
	return scriptResult(slidingWindowScript.Run(ctx, lim.client, []string{lim.prefix + key},
		lim.window.Milliseconds(), lim.limit, t.UnixMilli(), n, uuid.NewString()).Result())
}
