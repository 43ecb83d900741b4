// Package service 实现 eccd 的 HTTP 接口
package service

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"

	"github.com/kochabx/eckit/core/crypto/ecc"
	"github.com/kochabx/eckit/core/crypto/ecies"
	"github.com/kochabx/eckit/core/validator"
	"github.com/kochabx/eckit/internal/conf"
	"github.com/kochabx/eckit/log"
	"github.com/kochabx/eckit/transport/http"
	httpmetrics "github.com/kochabx/eckit/transport/http/metrics"
)

// Service 持有服务密钥与批量验签协程池
type Service struct {
	curve      ecc.CurveID
	compressed bool
	nonce      ecc.NonceMode
	maxItems   int
	key        *ecies.PrivateKey
	pool       *ants.Pool
	metrics    *httpmetrics.Prometheus
}

// New 按配置创建服务, 未配置私钥时在配置的曲线上生成临时密钥
func New(c *conf.Config) (*Service, error) {
	s := &Service{
		curve:      c.Crypto.CurveID(),
		compressed: c.Crypto.Compressed,
		nonce:      c.Crypto.NonceMode(),
		maxItems:   c.Batch.MaxItems,
		metrics:    httpmetrics.Prom,
	}

	var err error
	if c.Crypto.PrivateKey == "" {
		s.key, err = ecies.GenerateKey(s.curve)
		if err != nil {
			return nil, fmt.Errorf("generate service key: %w", err)
		}
		log.Warn().Str("curve", s.curve.String()).Msg("no service private key configured, using an ephemeral key")
	} else {
		raw, err := base64.StdEncoding.DecodeString(c.Crypto.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("decode service key: %w", err)
		}
		s.key, err = ecies.NewPrivateKeyOn(s.curve, raw)
		if err != nil {
			return nil, fmt.Errorf("load service key: %w", err)
		}
	}

	s.pool, err = ants.NewPool(c.Batch.Workers, ants.WithPanicHandler(func(p any) {
		log.Error().Interface("panic", p).Msg("batch verify worker panicked")
	}))
	if err != nil {
		s.key.Destroy()
		return nil, err
	}

	log.Info().
		Str("curve", s.curve.String()).
		Str("public_key", base64.StdEncoding.EncodeToString(s.key.Public().Bytes(s.compressed))).
		Int("workers", c.Batch.Workers).
		Msg("ecc service ready")
	return s, nil
}

// PrivateKey 返回服务私钥, 供 ECIES 中间件解密请求体
func (s *Service) PrivateKey() *ecies.PrivateKey {
	return s.key
}

// Close 释放协程池并清除服务私钥
func (s *Service) Close() error {
	err := s.pool.ReleaseTimeout(5 * time.Second)
	s.key.Destroy()
	return err
}

// Register 注册 /v1 路由
func (s *Service) Register(r gin.IRouter) {
	v1 := r.Group("/v1")

	v1.GET("/curves", s.Curves)
	v1.GET("/service/key", s.ServiceKey)

	keys := v1.Group("/keys")
	keys.POST("", s.GenerateKey)
	keys.POST("/compress", s.CompressKey)
	keys.POST("/decompress", s.DecompressKey)
	keys.POST("/detect", s.DetectKey)
	keys.POST("/qrcode", s.KeyQRCode)

	v1.POST("/ecdh", s.ECDH)
	v1.POST("/sign", s.Sign)
	v1.POST("/verify", s.Verify)
	v1.POST("/verify/batch", s.VerifyBatch)

	v1.POST("/ecies/encrypt", s.Encrypt)
	v1.POST("/ecies/decrypt", s.Decrypt)
}

// bind 解析 JSON 请求体并按 validate 标签校验, 失败时已写入 400 响应
func bind[T any](c *gin.Context, req *T) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		http.GinError(c, invalidArgument(err))
		return false
	}
	if err := validator.Validate.StructCtx(c.Request.Context(), req); err != nil {
		http.GinError(c, invalidArgument(err))
		return false
	}
	return true
}

// curveOr 解析请求中的曲线, 为空时使用服务曲线
func (s *Service) curveOr(name string) ecc.CurveID {
	if name == "" {
		return s.curve
	}
	id, _ := ecc.ParseCurveID(name)
	return id
}

// contextFor 在指定曲线上载入私钥; curve 为空时按私钥长度识别
func (s *Service) contextFor(curve string, privateKey []byte) (*ecc.Crypto, error) {
	opts := []ecc.Option{ecc.WithCompression(s.compressed), ecc.WithNonce(s.nonce)}
	if curve == "" {
		x, err := ecc.ForKey(privateKey, opts...)
		if err != nil {
			return nil, err
		}
		if !x.HasPrivateKey() {
			return nil, fmt.Errorf("%w: got %d bytes", ecc.ErrInvalidKeyLength, len(privateKey))
		}
		return x, nil
	}

	x, err := ecc.New(s.curveOr(curve), opts...)
	if err != nil {
		return nil, err
	}
	if err := x.SetPrivateKey(privateKey); err != nil {
		return nil, err
	}
	return x, nil
}

// fail 记录运算失败并写入错误响应
func (s *Service) fail(c *gin.Context, op string, curve ecc.CurveID, start time.Time, err error) {
	s.metrics.ObserveOperation(op, curve.String(), start, err)
	log.Ctx(c.Request.Context()).Debug().Err(err).Str("op", op).Str("curve", curve.String()).Msg("operation failed")
	http.GinError(c, err)
}
