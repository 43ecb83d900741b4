package middleware

import (
	"bytes"
	"encoding/base64"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/eckit/core/crypto/ecies"
	"github.com/kochabx/eckit/errors"
	"github.com/kochabx/eckit/log"
	"github.com/kochabx/eckit/transport/http"
)

// DefaultMaxEncryptedBody 密文请求体上限
const DefaultMaxEncryptedBody = 1 << 20

// Decryptor 把请求体密文还原为明文
type Decryptor interface {
	Decrypt(ciphertext []byte) ([]byte, error)
}

type DecryptorFunc func(ciphertext []byte) ([]byte, error)

func (f DecryptorFunc) Decrypt(ciphertext []byte) ([]byte, error) {
	return f(ciphertext)
}

// CryptoConfig 请求体解密中间件配置
type CryptoConfig struct {
	Decryptor    Decryptor                 // 必需
	RawBody      bool                      // 请求体为原始密文, 默认按 base64 解码
	MaxBody      int64                     // 读取上限, 默认 DefaultMaxEncryptedBody
	SkipPaths    []string                  // 不加密的路径
	SkipFunc     func(*gin.Context) bool   // 动态跳过判断函数
	ErrorHandler func(*gin.Context, error) // 默认返回 ErrDecryptFailed 或 ErrBodyTooLarge
	Logger       *log.Logger
}

// ECIESDecryptor 以服务私钥解密, 密文须由同一曲线的公钥加密
func ECIESDecryptor(privateKey *ecies.PrivateKey) Decryptor {
	return DecryptorFunc(func(ciphertext []byte) ([]byte, error) {
		return ecies.Decrypt(privateKey, ciphertext)
	})
}

// ECIESDecryptorFromFile 从 PEM 私钥文件加载
func ECIESDecryptorFromFile(privateKeyPath string) (Decryptor, error) {
	privateKey, err := ecies.LoadPrivateKey(privateKeyPath)
	if err != nil {
		return nil, err
	}
	return ECIESDecryptor(privateKey), nil
}

// Crypto 解密 ECIES 加密的请求体并替换为明文, 后续 handler 按普通 JSON 处理
//
// 空请求体原样放行。
func Crypto(cfg CryptoConfig) gin.HandlerFunc {
	if cfg.Decryptor == nil {
		panic("middleware: Decryptor is required")
	}
	if cfg.MaxBody <= 0 {
		cfg.MaxBody = DefaultMaxEncryptedBody
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c *gin.Context, err error) {
			if errors.Is(err, ErrBodyTooLarge) {
				http.GinError(c, ErrBodyTooLarge)
				return
			}
			http.GinError(c, ErrDecryptFailed)
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.G
	}

	matcher := NewPathMatcher(cfg.SkipPaths)

	return func(c *gin.Context) {
		if shouldSkip(c, matcher, cfg.SkipFunc) {
			c.Next()
			return
		}

		plaintext, stage, err := openBody(c.Request.Body, cfg)
		if err != nil {
			cfg.Logger.Warn().Err(err).
				Str("stage", stage).
				Str("path", c.Request.URL.Path).
				Str("request_id", RequestIDFrom(c)).
				Msg("reject encrypted body")
			cfg.ErrorHandler(c, err)
			return
		}

		if plaintext != nil {
			c.Request.Body = io.NopCloser(bytes.NewReader(plaintext))
			c.Request.ContentLength = int64(len(plaintext))
		}
		c.Next()
	}
}

// openBody 读取并解密请求体, 空体返回 nil; stage 标记失败环节
func openBody(body io.Reader, cfg CryptoConfig) (plaintext []byte, stage string, err error) {
	if body == nil {
		return nil, "", nil
	}

	data, err := io.ReadAll(io.LimitReader(body, cfg.MaxBody+1))
	if err != nil {
		return nil, "read", err
	}
	if int64(len(data)) > cfg.MaxBody {
		return nil, "read", ErrBodyTooLarge
	}
	if len(data) == 0 {
		return nil, "", nil
	}

	if !cfg.RawBody {
		data, err = base64.StdEncoding.DecodeString(string(bytes.TrimSpace(data)))
		if err != nil {
			return nil, "base64", err
		}
	}

	plaintext, err = cfg.Decryptor.Decrypt(data)
	if err != nil {
		return nil, "decrypt", err
	}
	return plaintext, "", nil
}
