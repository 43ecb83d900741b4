package service

import (
	"net/http"

	"github.com/kochabx/eckit/core/crypto/ecc"
	"github.com/kochabx/eckit/core/crypto/ecies"
	"github.com/kochabx/eckit/core/validator"
	"github.com/kochabx/eckit/errors"
)

// 响应中的 reason
const (
	ReasonInvalidArgument = "INVALID_ARGUMENT"
	ReasonTooManyItems    = "TOO_MANY_ITEMS"
)

func init() {
	// 按匹配优先级注册, 未识别的公钥长度同时匹配两个哨兵
	errors.Register(ecc.ErrUnrecognizedKeyLength, http.StatusBadRequest, "UNRECOGNIZED_KEY_LENGTH")
	errors.Register(ecc.ErrInvalidEncodingLength, http.StatusBadRequest, "INVALID_ENCODING_LENGTH")
	errors.Register(ecc.ErrUnknownCurve, http.StatusBadRequest, "UNKNOWN_CURVE")
	errors.Register(ecc.ErrCurveRequired, http.StatusBadRequest, "CURVE_REQUIRED")
	errors.Register(ecc.ErrInvalidKeyLength, http.StatusBadRequest, "INVALID_KEY_LENGTH")
	errors.Register(ecc.ErrHashLengthMismatch, http.StatusBadRequest, "HASH_LENGTH_MISMATCH")
	errors.Register(ecc.ErrInvalidSignature, http.StatusBadRequest, "INVALID_SIGNATURE")
	errors.Register(ecc.ErrUnknownNonceMode, http.StatusBadRequest, "UNKNOWN_NONCE_MODE")
	errors.Register(ecc.ErrScalarOutOfRange, http.StatusUnprocessableEntity, "SCALAR_OUT_OF_RANGE")
	errors.Register(ecc.ErrPointNotOnCurve, http.StatusUnprocessableEntity, "POINT_NOT_ON_CURVE")
	errors.Register(ecc.ErrResultAtInfinity, http.StatusUnprocessableEntity, "RESULT_AT_INFINITY")
	errors.Register(ecc.ErrMissingPrivateKey, http.StatusUnprocessableEntity, "MISSING_PRIVATE_KEY")
	errors.Register(ecc.ErrMissingPublicKey, http.StatusUnprocessableEntity, "MISSING_PUBLIC_KEY")
	errors.Register(ecc.ErrRandomnessUnavailable, http.StatusInternalServerError, "RANDOMNESS_UNAVAILABLE")

	errors.Register(ecies.ErrInvalidPublicKey, http.StatusBadRequest, "INVALID_PUBLIC_KEY")
	errors.Register(ecies.ErrPublicKeyEmpty, http.StatusBadRequest, "INVALID_PUBLIC_KEY")
	errors.Register(ecies.ErrCurveMismatch, http.StatusBadRequest, "CURVE_MISMATCH")
	errors.Register(ecies.ErrEncryptionFailed, http.StatusBadRequest, "ENCRYPTION_FAILED")
	errors.Register(ecies.ErrCiphertextTooShort, http.StatusBadRequest, "INVALID_CIPHERTEXT")
	errors.Register(ecies.ErrInvalidCiphertext, http.StatusBadRequest, "INVALID_CIPHERTEXT")
	errors.Register(ecies.ErrUnsupportedVersion, http.StatusBadRequest, "INVALID_CIPHERTEXT")
	errors.Register(ecies.ErrDecryptionFailed, http.StatusUnprocessableEntity, "DECRYPTION_FAILED")
}

// invalidArgument 把绑定或校验失败转换为 400, 字段级消息放入 metadata
func invalidArgument(err error) error {
	e := errors.BadRequest("%s", err.Error()).WithReason(ReasonInvalidArgument)
	if details := validator.Details(err); len(details) > 0 {
		metadata := make(map[string]string, len(details))
		for _, d := range details {
			metadata[d.Field] = d.Message
		}
		e = e.WithMetadata(metadata)
	}
	return e.WithCause(err)
}
