package ecc

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
)

// NonceMode selects how ECDSA nonces are produced.
type NonceMode int

const (
	// NonceRandom draws every nonce from the secure random source.
	NonceRandom NonceMode = iota
	// NonceDeterministic derives nonces from the key and hash (RFC 6979).
	NonceDeterministic
)

func (m NonceMode) String() string {
	switch m {
	case NonceRandom:
		return "random"
	case NonceDeterministic:
		return "deterministic"
	default:
		return "unknown"
	}
}

// ParseNonceMode accepts "random", "deterministic" or "rfc6979".
func ParseNonceMode(s string) (NonceMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "random":
		return NonceRandom, nil
	case "deterministic", "rfc6979":
		return NonceDeterministic, nil
	}
	return NonceRandom, fmt.Errorf("%w %q", ErrUnknownNonceMode, s)
}

type options struct {
	rand       io.Reader
	nonce      NonceMode
	compressed bool
}

func defaultOptions() options {
	return options{
		rand:       rand.Reader,
		nonce:      NonceRandom,
		compressed: true,
	}
}

// Option configures a Crypto context.
type Option func(*options)

// WithRand sets the secure random source. Defaults to crypto/rand.Reader.
func WithRand(r io.Reader) Option {
	return func(o *options) {
		if r != nil {
			o.rand = r
		}
	}
}

// WithNonce sets the ECDSA nonce strategy. Defaults to NonceRandom.
func WithNonce(mode NonceMode) Option {
	return func(o *options) {
		o.nonce = mode
	}
}

// WithCompression sets the initial public key encoding preference.
// Defaults to compressed.
func WithCompression(compressed bool) Option {
	return func(o *options) {
		o.compressed = compressed
	}
}
