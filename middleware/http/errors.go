package middleware

import (
	"net/http"

	"github.com/kochabx/eckit/errors"
)

var (
	ErrSignatureFailed = errors.BadRequest("verify signature failed").WithReason("SIGNATURE_INVALID")
	ErrDecryptFailed   = errors.BadRequest("decrypt request body failed").WithReason("DECRYPT_FAILED")
	ErrBodyTooLarge    = errors.New(http.StatusRequestEntityTooLarge, "encrypted body too large").WithReason("BODY_TOO_LARGE")
	ErrInternal        = errors.Internal("internal server error").WithReason("PANIC")
	ErrRateLimited     = errors.TooManyRequests("too many requests").WithReason("RATE_LIMITED")
)
