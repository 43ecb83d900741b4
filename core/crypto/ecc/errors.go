package ecc

import "errors"

// Curve errors
var (
	// ErrUnknownCurve indicates a curve identifier outside the supported set
	ErrUnknownCurve = errors.New("ecc: unknown curve")

	// ErrCurveRequired indicates an operation was invoked with the None curve
	ErrCurveRequired = errors.New("ecc: curve required")

	// ErrUnrecognizedKeyLength indicates that no curve matches a key length
	ErrUnrecognizedKeyLength = errors.New("ecc: unrecognized key length")
)

// Key errors
var (
	// ErrInvalidKeyLength indicates a private key of the wrong size
	ErrInvalidKeyLength = errors.New("ecc: invalid private key length")

	// ErrScalarOutOfRange indicates a scalar outside [1, n-1]
	ErrScalarOutOfRange = errors.New("ecc: scalar out of range")

	// ErrPointNotOnCurve indicates that a decoded point fails the curve equation
	ErrPointNotOnCurve = errors.New("ecc: point not on curve")

	// ErrInvalidEncodingLength indicates a public key encoding of the wrong size
	ErrInvalidEncodingLength = errors.New("ecc: invalid public key encoding length")

	// ErrMissingPrivateKey indicates that the context holds no private key
	ErrMissingPrivateKey = errors.New("ecc: private key is missing")

	// ErrMissingPublicKey indicates that the context holds no public key
	ErrMissingPublicKey = errors.New("ecc: public key is missing")
)

// Operation errors
var (
	// ErrResultAtInfinity indicates a shared secret at the point at infinity
	ErrResultAtInfinity = errors.New("ecc: result is the point at infinity")

	// ErrHashLengthMismatch indicates a digest whose length differs from HashLength
	ErrHashLengthMismatch = errors.New("ecc: hash length mismatch")

	// ErrRandomnessUnavailable indicates that the secure random source failed
	ErrRandomnessUnavailable = errors.New("ecc: randomness unavailable")

	// ErrInvalidSignature indicates a raw signature of the wrong size
	ErrInvalidSignature = errors.New("ecc: invalid signature encoding")

	// ErrUnknownNonceMode indicates a nonce mode name ParseNonceMode rejects
	ErrUnknownNonceMode = errors.New("ecc: unknown nonce mode")
)
