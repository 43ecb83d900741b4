// Package conf 定义 eccd 服务的配置结构与默认值
package conf

import (
	"time"

	"github.com/kochabx/eckit/core/crypto/ecc"
	"github.com/kochabx/eckit/log"
	"github.com/kochabx/eckit/transport/http"
)

// EnvPrefix 环境变量前缀, 例如 ECCD_SERVER_ADDR
const EnvPrefix = "ECCD"

// Config eccd 服务配置
type Config struct {
	Server     Server     `json:"server" mapstructure:"server"`
	Crypto     Crypto     `json:"crypto" mapstructure:"crypto"`
	Log        log.Config `json:"log" mapstructure:"log"`
	Batch      Batch      `json:"batch" mapstructure:"batch"`
	Middleware Middleware `json:"middleware" mapstructure:"middleware"`
}

// Server HTTP 服务配置
type Server struct {
	Addr            string             `json:"addr" mapstructure:"addr" validate:"required"`
	Mode            string             `json:"mode" mapstructure:"mode" validate:"omitempty,oneof=debug release test"`
	ShutdownTimeout time.Duration      `json:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	Timeouts        http.TimeoutOption `json:"timeouts" mapstructure:"timeouts"`
	Metrics         http.MetricsOption `json:"metrics" mapstructure:"metrics"`
	Swagger         http.SwagOption    `json:"swagger" mapstructure:"swagger"`
	Health          http.HealthOption  `json:"health" mapstructure:"health"`
}

// Crypto 服务密钥与默认算法参数
type Crypto struct {
	Curve      string `json:"curve" mapstructure:"curve" validate:"required,curve"`
	Compressed bool   `json:"compressed" mapstructure:"compressed"`
	Nonce      string `json:"nonce" mapstructure:"nonce" validate:"omitempty,nonce_mode"`
	// PrivateKey base64 编码的服务私钥, 为空时启动时生成
	PrivateKey string `json:"private_key" mapstructure:"private_key" validate:"omitempty,ecc_key"`
}

// Batch 批量验签配置
type Batch struct {
	Workers  int `json:"workers" mapstructure:"workers" validate:"gte=1,lte=1024"`
	MaxItems int `json:"max_items" mapstructure:"max_items" validate:"gte=1"`
}

// Middleware 可选中间件
type Middleware struct {
	AccessLog bool `json:"access_log" mapstructure:"access_log"`
	// SignaturePublicKey 受信任客户端的 base64 公钥, 非空时 /v1 需要 X-Signature
	SignaturePublicKey string `json:"signature_public_key" mapstructure:"signature_public_key" validate:"omitempty,ecc_key"`
	// SignatureMaxSkew 非零时签名须带 X-Timestamp (unix 秒), 超出时间窗的请求被拒绝
	SignatureMaxSkew time.Duration `json:"signature_max_skew" mapstructure:"signature_max_skew" validate:"gte=0"`
	// EncryptedPaths 请求体以服务公钥 ECIES 加密的路径
	EncryptedPaths []string  `json:"encrypted_paths" mapstructure:"encrypted_paths"`
	RateLimit      RateLimit `json:"rate_limit" mapstructure:"rate_limit"`
	Cors           Cors      `json:"cors" mapstructure:"cors"`
}

// Cors 浏览器跨域访问
type Cors struct {
	Enabled          bool          `json:"enabled" mapstructure:"enabled"`
	AllowOrigins     []string      `json:"allow_origins" mapstructure:"allow_origins"`
	AllowCredentials bool          `json:"allow_credentials" mapstructure:"allow_credentials"`
	MaxAge           time.Duration `json:"max_age" mapstructure:"max_age"`
}

// RateLimit 按客户端 IP 限流, 配置 redis 时多实例共享计数
type RateLimit struct {
	Enabled   bool          `json:"enabled" mapstructure:"enabled"`
	Algorithm string        `json:"algorithm" mapstructure:"algorithm" validate:"omitempty,oneof=token_bucket sliding_window"`
	Capacity  int           `json:"capacity" mapstructure:"capacity" validate:"gte=0"`
	Rate      int           `json:"rate" mapstructure:"rate" validate:"gte=0"` // 每秒补充的令牌数
	Window    time.Duration `json:"window" mapstructure:"window"`
	Redis     Redis         `json:"redis" mapstructure:"redis"`
}

// Redis 限流计数存储, Addrs 为空时使用进程内令牌桶
type Redis struct {
	Addrs    []string `json:"addrs" mapstructure:"addrs"`
	Password string   `json:"password" mapstructure:"password"`
	DB       int      `json:"db" mapstructure:"db"`
	Prefix   string   `json:"prefix" mapstructure:"prefix"`
}

// CurveID 返回配置的曲线, 已通过 curve 标签校验
func (c Crypto) CurveID() ecc.CurveID {
	id, _ := ecc.ParseCurveID(c.Curve)
	return id
}

// NonceMode 返回配置的 nonce 模式
func (c Crypto) NonceMode() ecc.NonceMode {
	mode, _ := ecc.ParseNonceMode(c.Nonce)
	return mode
}

// Defaults 默认值, 以 viper 的点分路径为键
func Defaults() map[string]any {
	return map[string]any{
		"server.addr":                        ":8080",
		"server.mode":                        "release",
		"server.shutdown_timeout":            "15s",
		"server.metrics.enabled":             true,
		"server.metrics.path":                "/metrics",
		"server.swagger.enabled":             false,
		"server.health.enabled":              true,
		"server.health.path":                 "/health",
		"crypto.curve":                       ecc.Secp256r1.String(),
		"crypto.compressed":                  true,
		"crypto.nonce":                       ecc.NonceRandom.String(),
		"log.level":                          "info",
		"log.output":                         "console",
		"log.desensitize":                    true,
		"batch.workers":                      8,
		"batch.max_items":                    256,
		"middleware.access_log":              true,
		"middleware.cors.enabled":            false,
		"middleware.cors.allow_origins":      []string{"*"},
		"middleware.cors.max_age":            "12h",
		"middleware.rate_limit.enabled":      false,
		"middleware.rate_limit.algorithm":    "token_bucket",
		"middleware.rate_limit.capacity":     100,
		"middleware.rate_limit.rate":         50,
		"middleware.rate_limit.window":       "1s",
		"middleware.rate_limit.redis.prefix": "eccd:rate:",
	}
}
