package service

import (
	"encoding/base64"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/eckit/core/crypto/ecc"
	"github.com/kochabx/eckit/core/crypto/ecies"
	"github.com/kochabx/eckit/core/util/qrcode"
	"github.com/kochabx/eckit/errors"
	"github.com/kochabx/eckit/transport/http"
)

// Curves godoc
//
//	@Summary	List supported curves
//	@Tags		keys
//	@Produce	json
//	@Success	200	{object}	http.Response[[]CurveInfo]
//	@Router		/v1/curves [get]
func (s *Service) Curves(c *gin.Context) {
	ids := ecc.Curves()
	infos := make([]CurveInfo, 0, len(ids))
	for _, id := range ids {
		p, err := ecc.ParametersFor(id)
		if err != nil {
			continue
		}
		infos = append(infos, CurveInfo{
			Name:               id.String(),
			Bits:               p.BitSize,
			PrivateKeyLength:   p.PrivateKeyLength(),
			CompressedLength:   p.CompressedLength(),
			UncompressedLength: p.UncompressedLength(),
			SignatureLength:    2 * p.ByteLen(),
		})
	}
	http.GinJSON(c, infos)
}

// ServiceKey godoc
//
//	@Summary		Service public key
//	@Description	Public key for encrypting request bodies to this service
//	@Tags			keys
//	@Produce		json
//	@Success		200	{object}	http.Response[ServiceKeyResponse]
//	@Router			/v1/service/key [get]
func (s *Service) ServiceKey(c *gin.Context) {
	pub := s.key.Public()
	pem, err := ecies.MarshalPublicKey(pub)
	if err != nil {
		http.GinError(c, err)
		return
	}
	http.GinJSON(c, ServiceKeyResponse{
		Curve:      pub.Curve().String(),
		Bits:       int(pub.Curve()),
		Compressed: s.compressed,
		PublicKey:  pub.Bytes(s.compressed),
		PEM:        string(pem),
	})
}

// GenerateKey godoc
//
//	@Summary	Generate a key pair
//	@Tags		keys
//	@Accept		json
//	@Produce	json
//	@Param		request	body		KeyRequest	true	"curve defaults to the service curve"
//	@Success	200		{object}	http.Response[KeyResponse]
//	@Failure	400		{object}	http.Response[any]
//	@Router		/v1/keys [post]
func (s *Service) GenerateKey(c *gin.Context) {
	var req KeyRequest
	if !bind(c, &req) {
		return
	}

	start := time.Now()
	curve := s.curveOr(req.Curve)
	compressed := s.compressed
	if req.Compressed != nil {
		compressed = *req.Compressed
	}

	x, err := ecc.GenerateKeyPair(curve, ecc.WithCompression(compressed))
	if err != nil {
		s.fail(c, "keygen", curve, start, err)
		return
	}
	defer x.Destroy()
	s.metrics.ObserveOperation("keygen", curve.String(), start, nil)

	http.GinJSON(c, KeyResponse{
		Curve:      x.Name(),
		Bits:       x.Bits(),
		PrivateKey: x.PrivateKey(),
		PublicKey:  x.PublicKey(),
	})
}

// CompressKey godoc
//
//	@Summary	Compress a public key
//	@Tags		keys
//	@Accept		json
//	@Produce	json
//	@Param		request	body		PublicKeyRequest	true	"public key in either form"
//	@Success	200		{object}	http.Response[PublicKeyResponse]
//	@Failure	400		{object}	http.Response[any]
//	@Failure	422		{object}	http.Response[any]
//	@Router		/v1/keys/compress [post]
func (s *Service) CompressKey(c *gin.Context) {
	s.convertKey(c, "compress", ecc.CompressPublicKey)
}

// DecompressKey godoc
//
//	@Summary	Decompress a public key
//	@Tags		keys
//	@Accept		json
//	@Produce	json
//	@Param		request	body		PublicKeyRequest	true	"public key in either form"
//	@Success	200		{object}	http.Response[PublicKeyResponse]
//	@Failure	400		{object}	http.Response[any]
//	@Failure	422		{object}	http.Response[any]
//	@Router		/v1/keys/decompress [post]
func (s *Service) DecompressKey(c *gin.Context) {
	s.convertKey(c, "decompress", ecc.DecompressPublicKey)
}

func (s *Service) convertKey(c *gin.Context, op string, convert func([]byte) ([]byte, error)) {
	var req PublicKeyRequest
	if !bind(c, &req) {
		return
	}

	start := time.Now()
	curve, _ := ecc.DetectKey(req.PublicKey)
	out, err := convert(req.PublicKey)
	if err != nil {
		s.fail(c, op, curve, start, err)
		return
	}
	s.metrics.ObserveOperation(op, curve.String(), start, nil)

	http.GinJSON(c, PublicKeyResponse{Curve: curve.String(), PublicKey: out})
}

// DetectKey godoc
//
//	@Summary		Detect the curve of a key
//	@Description	Odd lengths are public keys, even lengths private keys
//	@Tags			keys
//	@Accept			json
//	@Produce		json
//	@Param			request	body		DetectRequest	true	"base64 key"
//	@Success		200		{object}	http.Response[DetectResponse]
//	@Failure		400		{object}	http.Response[any]
//	@Router			/v1/keys/detect [post]
func (s *Service) DetectKey(c *gin.Context) {
	var req DetectRequest
	if !bind(c, &req) {
		return
	}

	raw, err := base64.StdEncoding.DecodeString(req.Key)
	if err != nil {
		http.GinError(c, invalidArgument(err))
		return
	}
	id, err := ecc.DetectKey(raw)
	if err != nil {
		http.GinError(c, err)
		return
	}

	p, _ := ecc.ParametersFor(id)
	http.GinJSON(c, DetectResponse{
		Curve: id.String(),
		Bits:  p.BitSize,
		// 私钥长度恒为偶数, 公钥恒为奇数
		Public: len(raw)%2 == 1,
	})
}

// KeyQRCode godoc
//
//	@Summary	Render a public key as a QR code
//	@Tags		keys
//	@Accept		json
//	@Produce	json
//	@Param		request	body		QRCodeRequest	true	"public key and image options"
//	@Success	200		{object}	http.Response[QRCodeResponse]
//	@Failure	400		{object}	http.Response[any]
//	@Router		/v1/keys/qrcode [post]
func (s *Service) KeyQRCode(c *gin.Context) {
	var req QRCodeRequest
	if !bind(c, &req) {
		return
	}

	id, err := ecc.DetectKey(req.PublicKey)
	if err != nil {
		http.GinError(c, err)
		return
	}
	if len(req.PublicKey)%2 == 0 {
		// 拒绝把私钥编码进二维码
		http.GinError(c, errors.BadRequest("public_key must be an encoded public key").WithReason(ReasonInvalidArgument))
		return
	}

	level, err := qrcode.ParseLevel(req.Level)
	if err != nil {
		http.GinError(c, invalidArgument(err))
		return
	}
	size := req.Size
	if size == 0 {
		size = qrcode.DefaultSize
	}

	content := qrcode.KeyContent(id.String(), req.PublicKey)
	png, err := qrcode.Encode(content, size, level)
	if err != nil {
		http.GinError(c, errors.Internal("encode qrcode: %v", err))
		return
	}
	http.GinJSON(c, QRCodeResponse{Content: content, PNG: png})
}
