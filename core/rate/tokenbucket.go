package rate

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// 令牌以毫秒精度补充, 桶在满额所需时间后过期
const tokenBucketLua = `
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])

local bucket = redis.call('HMGET', KEYS[1], 'tokens', 'ts')
local tokens = tonumber(bucket[1])
local ts = tonumber(bucket[2])
if tokens == nil or ts == nil then
  tokens = capacity
  ts = now
end

local elapsed = math.max(0, now - ts)
tokens = math.min(capacity, tokens + elapsed * rate / 1000)

local allowed = 0
if tokens >= requested then
  tokens = tokens - requested
  allowed = 1
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'ts', now)
redis.call('PEXPIRE', KEYS[1], math.ceil(capacity * 1000 / rate) + 1000)
return allowed
`

var tokenBucketScript = redis.NewScript(tokenBucketLua)

// TokenBucketLimiter redis 令牌桶, 容量 capacity, 每秒补充 rate 个
type TokenBucketLimiter struct {
	client   redis.Scripter
	prefix   string
	capacity int
	rate     int
}

func NewTokenBucketLimiter(client redis.Scripter, prefix string, capacity, rate int) (*TokenBucketLimiter, error) {
	if capacity <= 0 || rate <= 0 {
		return nil, ErrInvalidConfig
	}
	return &TokenBucketLimiter{
		client:   client,
		prefix:   prefix,
		capacity: capacity,
		rate:     rate,
	}, nil
}

func (lim *TokenBucketLimiter) AllowN(ctx context.Context, key string, t time.Time, n int) (bool, error) {
	return scriptResult(tokenBucketScript.Run(ctx, lim.client, []string{lim.prefix + key},
		lim.capacity, lim.rate, t.UnixMilli(), n).Result())
}
