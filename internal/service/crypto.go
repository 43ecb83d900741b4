package service

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/eckit/core/crypto/ecc"
	"github.com/kochabx/eckit/core/crypto/ecies"
	"github.com/kochabx/eckit/transport/http"
)

// ECDH godoc
//
//	@Summary		Compute an ECDH shared secret
//	@Description	The secret is the x coordinate of d·Q, curve byte length
//	@Tags			ecc
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ECDHRequest	true	"curve is detected from the private key when empty"
//	@Success		200		{object}	http.Response[ECDHResponse]
//	@Failure		400		{object}	http.Response[any]
//	@Failure		422		{object}	http.Response[any]
//	@Router			/v1/ecdh [post]
func (s *Service) ECDH(c *gin.Context) {
	var req ECDHRequest
	if !bind(c, &req) {
		return
	}

	start := time.Now()
	x, err := s.contextFor(req.Curve, req.PrivateKey)
	if err != nil {
		s.fail(c, "ecdh", s.curveOr(req.Curve), start, err)
		return
	}
	defer x.Destroy()

	secret, err := x.SharedSecret(req.PublicKey)
	if err != nil {
		s.fail(c, "ecdh", x.CurveID(), start, err)
		return
	}
	s.metrics.ObserveOperation("ecdh", x.Name(), start, nil)

	http.GinJSON(c, ECDHResponse{Curve: x.Name(), SharedSecret: secret})
}

// Sign godoc
//
//	@Summary		Sign a digest with ECDSA
//	@Description	hash must be exactly the curve byte length; message is hashed with SHA-256 (SHA-384 on secp384r1) instead
//	@Tags			ecc
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SignRequest	true	"private key and hash or message"
//	@Success		200		{object}	http.Response[SignResponse]
//	@Failure		400		{object}	http.Response[any]
//	@Failure		422		{object}	http.Response[any]
//	@Router			/v1/sign [post]
func (s *Service) Sign(c *gin.Context) {
	var req SignRequest
	if !bind(c, &req) {
		return
	}

	start := time.Now()
	x, err := s.contextFor(req.Curve, req.PrivateKey)
	if err != nil {
		s.fail(c, "sign", s.curveOr(req.Curve), start, err)
		return
	}
	defer x.Destroy()

	if req.Nonce != "" {
		mode, err := ecc.ParseNonceMode(req.Nonce)
		if err != nil {
			s.fail(c, "sign", x.CurveID(), start, err)
			return
		}
		// 重新构建以应用请求的 nonce 模式
		y, err := ecc.New(x.CurveID(), ecc.WithNonce(mode))
		if err == nil {
			err = y.SetPrivateKey(x.PrivateKey())
		}
		if err != nil {
			s.fail(c, "sign", x.CurveID(), start, err)
			return
		}
		defer y.Destroy()
		x = y
	}

	hash := req.Hash
	if len(hash) == 0 {
		hash = x.Digest(req.Message)
	}

	sig, err := x.SignBytes(hash)
	if err != nil {
		s.fail(c, "sign", x.CurveID(), start, err)
		return
	}
	s.metrics.ObserveOperation("sign", x.Name(), start, nil)

	http.GinJSON(c, SignResponse{Curve: x.Name(), Hash: hash, Signature: sig})
}

// Verify godoc
//
//	@Summary		Verify an ECDSA signature
//	@Description	The curve is detected from the public key; a forged signature is valid=false, not an error
//	@Tags			ecc
//	@Accept			json
//	@Produce		json
//	@Param			request	body		VerifyRequest	true	"public key, hash or message, raw r||s signature"
//	@Success		200		{object}	http.Response[VerifyResponse]
//	@Failure		400		{object}	http.Response[any]
//	@Failure		422		{object}	http.Response[any]
//	@Router			/v1/verify [post]
func (s *Service) Verify(c *gin.Context) {
	var req VerifyRequest
	if !bind(c, &req) {
		return
	}

	start := time.Now()
	item, curve, err := batchItem(req)
	if err != nil {
		s.fail(c, "verify", curve, start, err)
		return
	}

	res := ecc.VerifyItem(item)
	if res.Err != nil {
		s.fail(c, "verify", curve, start, res.Err)
		return
	}
	s.metrics.ObserveOperation("verify", curve.String(), start, nil)
	s.metrics.CountOperation("verify", curve.String(), validLabel(res.Valid))

	http.GinJSON(c, VerifyResponse{Curve: curve.String(), Valid: res.Valid})
}

// batchItem 把验签请求转换为 BatchItem, 未给出 hash 时按公钥曲线计算摘要
func batchItem(req VerifyRequest) (ecc.BatchItem, ecc.CurveID, error) {
	x, err := ecc.ForKey(req.PublicKey)
	if err != nil {
		return ecc.BatchItem{}, ecc.None, err
	}
	if x.HasPrivateKey() {
		x.Destroy()
		return ecc.BatchItem{}, x.CurveID(), fmt.Errorf("%w: public_key holds a private key", ecc.ErrInvalidEncodingLength)
	}

	hash := req.Hash
	if len(hash) == 0 {
		hash = x.Digest(req.Message)
	}
	return ecc.BatchItem{PublicKey: req.PublicKey, Hash: hash, Signature: req.Signature}, x.CurveID(), nil
}

func validLabel(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}

// Encrypt godoc
//
//	@Summary		Encrypt with ECIES
//	@Description	Encrypts to public_key, or to the service key when it is empty
//	@Tags			ecies
//	@Accept			json
//	@Produce		json
//	@Param			request	body		EncryptRequest	true	"recipient and plaintext"
//	@Success		200		{object}	http.Response[EncryptResponse]
//	@Failure		400		{object}	http.Response[any]
//	@Failure		422		{object}	http.Response[any]
//	@Router			/v1/ecies/encrypt [post]
func (s *Service) Encrypt(c *gin.Context) {
	var req EncryptRequest
	if !bind(c, &req) {
		return
	}

	start := time.Now()
	pub := s.key.Public()
	if len(req.PublicKey) > 0 {
		var err error
		if pub, err = ecies.NewPublicKey(req.PublicKey); err != nil {
			s.fail(c, "encrypt", ecc.None, start, err)
			return
		}
	}

	ct, err := ecies.Encrypt(pub, req.Plaintext)
	if err != nil {
		s.fail(c, "encrypt", pub.Curve(), start, err)
		return
	}
	s.metrics.ObserveOperation("encrypt", pub.Curve().String(), start, nil)

	http.GinJSON(c, EncryptResponse{Curve: pub.Curve().String(), Ciphertext: ct})
}

// Decrypt godoc
//
//	@Summary	Decrypt with the service key
//	@Tags		ecies
//	@Accept		json
//	@Produce	json
//	@Param		request	body		DecryptRequest	true	"ciphertext for the service key"
//	@Success	200		{object}	http.Response[DecryptResponse]
//	@Failure	400		{object}	http.Response[any]
//	@Failure	422		{object}	http.Response[any]
//	@Router		/v1/ecies/decrypt [post]
func (s *Service) Decrypt(c *gin.Context) {
	var req DecryptRequest
	if !bind(c, &req) {
		return
	}

	start := time.Now()
	pt, err := ecies.Decrypt(s.key, req.Ciphertext)
	if err != nil {
		s.fail(c, "decrypt", s.key.Curve(), start, err)
		return
	}
	s.metrics.ObserveOperation("decrypt", s.key.Curve().String(), start, nil)

	http.GinJSON(c, DecryptResponse{Plaintext: pt})
}
