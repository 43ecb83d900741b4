package middleware

import (
	"bytes"
	"encoding/base64"
	"io"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/eckit/core/crypto/ecc"
	"github.com/kochabx/eckit/errors"
	"github.com/kochabx/eckit/log"
	"github.com/kochabx/eckit/transport/http"
)

// Signer 校验客户端对请求数据的签名
type Signer interface {
	Verify(data []byte, signature string) error
}

type SignerFunc func(data []byte, signature string) error

func (f SignerFunc) Verify(data []byte, signature string) error {
	return f(data, signature)
}

// ECDSASigner 创建 ECDSA 签名验证器
//
// publicKey 为受信任客户端的编码公钥, 曲线由长度与前缀识别。
// 签名为 base64 的 r||s, 摘要由 ecc.Crypto.Digest 计算。
func ECDSASigner(publicKey []byte) (Signer, error) {
	verifier, err := ecc.ForKey(publicKey)
	if err != nil {
		return nil, err
	}

	return SignerFunc(func(data []byte, signature string) error {
		sig, err := base64.StdEncoding.DecodeString(signature)
		if err != nil {
			return ErrSignatureFailed.WithCause(err)
		}
		ok, err := verifier.VerifyBytes(sig, verifier.Digest(data))
		if err != nil {
			return ErrSignatureFailed.WithCause(err)
		}
		if !ok {
			return ErrSignatureFailed
		}
		return nil
	}), nil
}

// ECDSASignerBase64 公钥为 base64 编码
func ECDSASignerBase64(publicKey string) (Signer, error) {
	raw, err := base64.StdEncoding.DecodeString(publicKey)
	if err != nil {
		return nil, err
	}
	return ECDSASigner(raw)
}

// SignatureConfig 请求签名中间件配置
//
// 待签名数据依次为 method、path、按 key 排序的 query (同名参数的每个值按出现顺序
// 各占一项)、请求体; 请求体超过 MaxBody 时返回 ErrBodyTooLarge。设置了
// TimestampHeader 时再追加该头的值, 并拒绝与服务器时间相差超过 MaxSkew 的请求。
type SignatureConfig struct {
	Signer          Signer                    // 必需
	HeaderName      string                    // 默认 X-Signature
	TimestampHeader string                    // 为空时不做时间窗校验
	MaxSkew         time.Duration             // 默认 5 分钟
	MaxBody         int64                     // 参与签名的请求体上限, 默认 DefaultMaxSignedBody
	ParamsEnabled   bool                      // 签名包含 query
	BodyEnabled     bool                      // 签名包含请求体
	PathEnabled     bool                      // 签名包含路径
	MethodEnabled   bool                      // 签名包含方法
	SkipPaths       []string                  // 跳过处理的路径
	SkipFunc        func(*gin.Context) bool   // 动态跳过判断函数
	ErrorHandler    func(*gin.Context, error) // 默认返回 ErrSignatureFailed
	Logger          *log.Logger

	now func() time.Time
}

// DefaultMaxSignedBody 参与签名的请求体上限
const DefaultMaxSignedBody = 1 << 20

// DefaultSignatureConfig method、path、query、body 全部参与签名
func DefaultSignatureConfig() SignatureConfig {
	return SignatureConfig{
		HeaderName:    "X-Signature",
		ParamsEnabled: true,
		BodyEnabled:   true,
		PathEnabled:   true,
		MethodEnabled: true,
	}
}

// Signature 校验请求签名, 失败时中止请求
func Signature(cfg SignatureConfig) gin.HandlerFunc {
	if cfg.Signer == nil {
		panic("middleware: Signer is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.G
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Signature"
	}
	if cfg.MaxSkew <= 0 {
		cfg.MaxSkew = 5 * time.Minute
	}
	if cfg.MaxBody <= 0 {
		cfg.MaxBody = DefaultMaxSignedBody
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c *gin.Context, err error) {
			if errors.Is(err, ErrBodyTooLarge) {
				http.GinError(c, ErrBodyTooLarge)
				return
			}
			http.GinError(c, ErrSignatureFailed)
		}
	}

	matcher := NewPathMatcher(cfg.SkipPaths)

	reject := func(c *gin.Context, err error, msg string) {
		cfg.Logger.Warn().Err(err).
			Str("path", c.Request.URL.Path).
			Str("request_id", RequestIDFrom(c)).
			Msg(msg)
		cfg.ErrorHandler(c, err)
	}

	return func(c *gin.Context) {
		if shouldSkip(c, matcher, cfg.SkipFunc) {
			c.Next()
			return
		}

		signature := c.GetHeader(cfg.HeaderName)
		if signature == "" {
			reject(c, ErrSignatureFailed, "signature header missing")
			return
		}

		if cfg.TimestampHeader != "" {
			if err := checkTimestamp(c.GetHeader(cfg.TimestampHeader), cfg.now(), cfg.MaxSkew); err != nil {
				reject(c, err, "signature timestamp rejected")
				return
			}
		}

		data, err := signedData(c, cfg)
		if err != nil {
			reject(c, err, "read signed data")
			return
		}

		if err := cfg.Signer.Verify(data, signature); err != nil {
			reject(c, err, "signature mismatch")
			return
		}

		c.Next()
	}
}

// checkTimestamp 时间戳为 unix 秒
func checkTimestamp(value string, now time.Time, skew time.Duration) error {
	sec, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return ErrSignatureFailed.WithCause(err)
	}
	d := now.Sub(time.Unix(sec, 0))
	if d > skew || d < -skew {
		return ErrSignatureFailed.WithMetadata(map[string]string{"skew": d.Truncate(time.Second).String()})
	}
	return nil
}

// signedData 拼接待签名数据, 读取后的请求体放回供 handler 使用
func signedData(c *gin.Context, cfg SignatureConfig) ([]byte, error) {
	var buf bytes.Buffer

	if cfg.MethodEnabled {
		buf.WriteString(c.Request.Method)
	}
	if cfg.PathEnabled {
		buf.WriteString(c.Request.URL.Path)
	}
	if params := c.Request.URL.Query(); cfg.ParamsEnabled && len(params) > 0 {
		first := true
		for _, k := range slices.Sorted(maps.Keys(params)) {
			for _, v := range params[k] {
				if !first {
					buf.WriteByte('&')
				}
				first = false
				buf.WriteString(k)
				buf.WriteByte('=')
				buf.WriteString(v)
			}
		}
	}
	if cfg.BodyEnabled && c.Request.Body != nil {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, cfg.MaxBody+1))
		if err != nil {
			return nil, err
		}
		if int64(len(body)) > cfg.MaxBody {
			return nil, ErrBodyTooLarge
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		buf.Write(body)
	}
	if cfg.TimestampHeader != "" {
		buf.WriteString(c.GetHeader(cfg.TimestampHeader))
	}

	return buf.Bytes(), nil
}
