package service

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/eckit/core/crypto/ecc"
	"github.com/kochabx/eckit/core/crypto/ecies"
	"github.com/kochabx/eckit/core/util/qrcode"
	"github.com/kochabx/eckit/errors"
	"github.com/kochabx/eckit/internal/conf"
	"github.com/kochabx/eckit/transport/http"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *conf.Config {
	return &conf.Config{
		Crypto: conf.Crypto{Curve: "secp256r1", Compressed: true, Nonce: "random"},
		Batch:  conf.Batch{Workers: 4, MaxItems: 8},
	}
}

func newTestService(t *testing.T, cfg *conf.Config) (*Service, *gin.Engine) {
	t.Helper()
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	r := gin.New()
	s.Register(r)
	return s, r
}

// call 发送 JSON 请求并解析统一响应
func call[T any](t *testing.T, r *gin.Engine, method, path string, body any) (int, http.Response[T]) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp http.Response[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func TestNew(t *testing.T) {
	key, err := ecc.GenerateKeyPair(ecc.Secp192r1)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Crypto.Curve = "secp192r1"
	cfg.Crypto.PrivateKey = key.PrivateKeyBase64()
	s, _ := newTestService(t, cfg)
	assert.Equal(t, key.PrivateKey(), s.PrivateKey().Bytes())

	// 私钥长度与曲线不符
	cfg.Crypto.Curve = "secp256r1"
	_, err = New(cfg)
	assert.ErrorIs(t, err, ecies.ErrInvalidPrivateKey)

	cfg.Crypto.PrivateKey = "%%"
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestCurves(t *testing.T) {
	_, r := newTestService(t, testConfig())

	code, resp := call[[]CurveInfo](t, r, nethttp.MethodGet, "/v1/curves", nil)
	require.Equal(t, nethttp.StatusOK, code)
	require.Len(t, resp.Data, 4)

	last := resp.Data[3]
	assert.Equal(t, "secp384r1", last.Name)
	assert.Equal(t, 48, last.PrivateKeyLength)
	assert.Equal(t, 49, last.CompressedLength)
	assert.Equal(t, 97, last.UncompressedLength)
	assert.Equal(t, 96, last.SignatureLength)
}

func TestServiceKey(t *testing.T) {
	s, r := newTestService(t, testConfig())

	code, resp := call[ServiceKeyResponse](t, r, nethttp.MethodGet, "/v1/service/key", nil)
	require.Equal(t, nethttp.StatusOK, code)
	assert.Equal(t, "secp256r1", resp.Data.Curve)
	assert.Len(t, resp.Data.PublicKey, 33)

	pub, err := ecies.ParsePublicKey([]byte(resp.Data.PEM))
	require.NoError(t, err)
	assert.True(t, pub.Equals(s.PrivateKey().Public()))
}

func TestGenerateKey(t *testing.T) {
	_, r := newTestService(t, testConfig())

	tests := []struct {
		name       string
		req        KeyRequest
		curve      string
		privateLen int
		publicLen  int
	}{
		{"default", KeyRequest{}, "secp256r1", 32, 33},
		{"secp128r1 uncompressed", KeyRequest{Curve: "secp128r1", Compressed: new(bool)}, "secp128r1", 16, 33},
		{"P-384", KeyRequest{Curve: "P-384"}, "secp384r1", 48, 49},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := call[KeyResponse](t, r, nethttp.MethodPost, "/v1/keys", tt.req)
			require.Equal(t, nethttp.StatusOK, code)
			assert.Equal(t, tt.curve, resp.Data.Curve)
			assert.Len(t, resp.Data.PrivateKey, tt.privateLen)
			assert.Len(t, resp.Data.PublicKey, tt.publicLen)
		})
	}

	code, resp := call[any](t, r, nethttp.MethodPost, "/v1/keys", KeyRequest{Curve: "secp256k1"})
	assert.Equal(t, nethttp.StatusBadRequest, code)
	assert.Equal(t, ReasonInvalidArgument, resp.Reason)
	assert.Contains(t, resp.Metadata, "curve")
}

func TestCompressDecompress(t *testing.T) {
	_, r := newTestService(t, testConfig())

	key, err := ecc.GenerateKeyPair(ecc.Secp192r1, ecc.WithCompression(false))
	require.NoError(t, err)

	code, resp := call[PublicKeyResponse](t, r, nethttp.MethodPost, "/v1/keys/compress", PublicKeyRequest{PublicKey: key.PublicKey()})
	require.Equal(t, nethttp.StatusOK, code)
	assert.Equal(t, "secp192r1", resp.Data.Curve)
	assert.Equal(t, key.CompressedPublicKey(), resp.Data.PublicKey)

	code, resp = call[PublicKeyResponse](t, r, nethttp.MethodPost, "/v1/keys/decompress", PublicKeyRequest{PublicKey: resp.Data.PublicKey})
	require.Equal(t, nethttp.StatusOK, code)
	assert.Equal(t, key.UncompressedPublicKey(), resp.Data.PublicKey)

	code, _ = call[any](t, r, nethttp.MethodPost, "/v1/keys/compress", PublicKeyRequest{PublicKey: []byte{0x02, 1, 2, 3}})
	assert.Equal(t, nethttp.StatusBadRequest, code)

	code, _ = call[any](t, r, nethttp.MethodPost, "/v1/keys/compress", map[string]any{})
	assert.Equal(t, nethttp.StatusBadRequest, code)
}

func TestDetectKey(t *testing.T) {
	_, r := newTestService(t, testConfig())

	key, err := ecc.GenerateKeyPair(ecc.Secp384r1)
	require.NoError(t, err)

	tests := []struct {
		name   string
		key    string
		curve  string
		public bool
	}{
		{"private", key.PrivateKeyBase64(), "secp384r1", false},
		{"compressed", base64.StdEncoding.EncodeToString(key.CompressedPublicKey()), "secp384r1", true},
		{"uncompressed", base64.StdEncoding.EncodeToString(key.UncompressedPublicKey()), "secp384r1", true},
		{"24 byte private", base64.StdEncoding.EncodeToString(make([]byte, 24)), "secp192r1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := call[DetectResponse](t, r, nethttp.MethodPost, "/v1/keys/detect", DetectRequest{Key: tt.key})
			require.Equal(t, nethttp.StatusOK, code)
			assert.Equal(t, tt.curve, resp.Data.Curve)
			assert.Equal(t, tt.public, resp.Data.Public)
		})
	}

	code, resp := call[any](t, r, nethttp.MethodPost, "/v1/keys/detect", DetectRequest{Key: base64.StdEncoding.EncodeToString(make([]byte, 20))})
	assert.Equal(t, nethttp.StatusBadRequest, code)
	assert.Equal(t, "UNRECOGNIZED_KEY_LENGTH", resp.Reason)
}

func TestKeyQRCode(t *testing.T) {
	_, r := newTestService(t, testConfig())

	key, err := ecc.GenerateKeyPair(ecc.Secp128r1)
	require.NoError(t, err)

	code, resp := call[QRCodeResponse](t, r, nethttp.MethodPost, "/v1/keys/qrcode", QRCodeRequest{PublicKey: key.PublicKey(), Level: "high"})
	require.Equal(t, nethttp.StatusOK, code)
	assert.True(t, bytes.HasPrefix(resp.Data.PNG, []byte{0x89, 'P', 'N', 'G'}))

	curve, pub, err := qrcode.ParseKeyContent(resp.Data.Content)
	require.NoError(t, err)
	assert.Equal(t, "secp128r1", curve)
	assert.Equal(t, key.PublicKey(), pub)

	// 私钥不允许生成二维码
	code, _ = call[any](t, r, nethttp.MethodPost, "/v1/keys/qrcode", QRCodeRequest{PublicKey: key.PrivateKey()})
	assert.Equal(t, nethttp.StatusBadRequest, code)

	code, _ = call[any](t, r, nethttp.MethodPost, "/v1/keys/qrcode", QRCodeRequest{PublicKey: key.PublicKey(), Size: 8})
	assert.Equal(t, nethttp.StatusBadRequest, code)
}

func TestECDH(t *testing.T) {
	_, r := newTestService(t, testConfig())

	for _, id := range ecc.Curves() {
		t.Run(id.String(), func(t *testing.T) {
			alice, err := ecc.GenerateKeyPair(id)
			require.NoError(t, err)
			bob, err := ecc.GenerateKeyPair(id, ecc.WithCompression(false))
			require.NoError(t, err)

			code, a := call[ECDHResponse](t, r, nethttp.MethodPost, "/v1/ecdh", ECDHRequest{PrivateKey: alice.PrivateKey(), PublicKey: bob.PublicKey()})
			require.Equal(t, nethttp.StatusOK, code)
			code, b := call[ECDHResponse](t, r, nethttp.MethodPost, "/v1/ecdh", ECDHRequest{Curve: id.String(), PrivateKey: bob.PrivateKey(), PublicKey: alice.PublicKey()})
			require.Equal(t, nethttp.StatusOK, code)

			assert.Equal(t, id.String(), a.Data.Curve)
			assert.Len(t, a.Data.SharedSecret, alice.SharedSecretLength())
			assert.Equal(t, a.Data.SharedSecret, b.Data.SharedSecret)
		})
	}

	alice, err := ecc.GenerateKeyPair(ecc.Secp192r1)
	require.NoError(t, err)
	other, err := ecc.GenerateKeyPair(ecc.Secp256r1)
	require.NoError(t, err)

	code, resp := call[any](t, r, nethttp.MethodPost, "/v1/ecdh", ECDHRequest{PrivateKey: alice.PrivateKey(), PublicKey: other.PublicKey()})
	assert.Equal(t, nethttp.StatusBadRequest, code)
	assert.Equal(t, "INVALID_ENCODING_LENGTH", resp.Reason)

	code, _ = call[any](t, r, nethttp.MethodPost, "/v1/ecdh", ECDHRequest{Curve: "secp256r1", PrivateKey: alice.PrivateKey(), PublicKey: other.PublicKey()})
	assert.Equal(t, nethttp.StatusBadRequest, code)
}

func TestSignVerify(t *testing.T) {
	_, r := newTestService(t, testConfig())

	for _, id := range ecc.Curves() {
		t.Run(id.String(), func(t *testing.T) {
			key, err := ecc.GenerateKeyPair(id)
			require.NoError(t, err)
			message := []byte("transfer 100 to bob")

			code, signed := call[SignResponse](t, r, nethttp.MethodPost, "/v1/sign", SignRequest{PrivateKey: key.PrivateKey(), Message: message})
			require.Equal(t, nethttp.StatusOK, code)
			assert.Len(t, signed.Data.Signature, key.SignatureLength())
			assert.Equal(t, key.Digest(message), signed.Data.Hash)

			code, verified := call[VerifyResponse](t, r, nethttp.MethodPost, "/v1/verify", VerifyRequest{
				PublicKey: key.PublicKey(),
				Hash:      signed.Data.Hash,
				Signature: signed.Data.Signature,
			})
			require.Equal(t, nethttp.StatusOK, code)
			assert.True(t, verified.Data.Valid)

			// 篡改消息后验签失败但不是错误
			code, verified = call[VerifyResponse](t, r, nethttp.MethodPost, "/v1/verify", VerifyRequest{
				PublicKey: key.PublicKey(),
				Message:   []byte("transfer 900 to bob"),
				Signature: signed.Data.Signature,
			})
			require.Equal(t, nethttp.StatusOK, code)
			assert.False(t, verified.Data.Valid)
		})
	}
}

func TestSignDeterministic(t *testing.T) {
	_, r := newTestService(t, testConfig())

	key, err := ecc.GenerateKeyPair(ecc.Secp256r1)
	require.NoError(t, err)
	req := SignRequest{PrivateKey: key.PrivateKey(), Message: []byte("sample"), Nonce: "rfc6979"}

	_, first := call[SignResponse](t, r, nethttp.MethodPost, "/v1/sign", req)
	_, second := call[SignResponse](t, r, nethttp.MethodPost, "/v1/sign", req)
	assert.Equal(t, first.Data.Signature, second.Data.Signature)
}

func TestSignErrors(t *testing.T) {
	_, r := newTestService(t, testConfig())

	key, err := ecc.GenerateKeyPair(ecc.Secp192r1)
	require.NoError(t, err)

	code, resp := call[any](t, r, nethttp.MethodPost, "/v1/sign", SignRequest{PrivateKey: key.PrivateKey(), Hash: make([]byte, 32)})
	assert.Equal(t, nethttp.StatusBadRequest, code)
	assert.Equal(t, "HASH_LENGTH_MISMATCH", resp.Reason)

	code, resp = call[any](t, r, nethttp.MethodPost, "/v1/sign", SignRequest{PrivateKey: key.PrivateKey()})
	assert.Equal(t, nethttp.StatusBadRequest, code)
	assert.Equal(t, ReasonInvalidArgument, resp.Reason)

	// 全零私钥超出 [1, n-1]
	code, resp = call[any](t, r, nethttp.MethodPost, "/v1/sign", SignRequest{PrivateKey: make([]byte, 24), Message: []byte("m")})
	assert.Equal(t, nethttp.StatusUnprocessableEntity, code)
	assert.Equal(t, "SCALAR_OUT_OF_RANGE", resp.Reason)

	code, resp = call[any](t, r, nethttp.MethodPost, "/v1/sign", SignRequest{Curve: "secp256r1", PrivateKey: key.PrivateKey(), Message: []byte("m")})
	assert.Equal(t, nethttp.StatusBadRequest, code)
	assert.Equal(t, "INVALID_KEY_LENGTH", resp.Reason)
}

func TestUnknownNonceMode(t *testing.T) {
	_, err := ecc.ParseNonceMode("counter")
	require.Error(t, err)
	assert.Equal(t, nethttp.StatusBadRequest, errors.Code(err))
	assert.Equal(t, "UNKNOWN_NONCE_MODE", errors.Reason(err))
}

func TestVerifyBatch(t *testing.T) {
	_, r := newTestService(t, testConfig())

	items := make([]VerifyRequest, 0, 5)
	for _, id := range ecc.Curves() {
		key, err := ecc.GenerateKeyPair(id)
		require.NoError(t, err)
		hash := key.Digest([]byte(id.String()))
		sig, err := key.SignBytes(hash)
		require.NoError(t, err)
		items = append(items, VerifyRequest{PublicKey: key.PublicKey(), Hash: hash, Signature: sig})
	}
	// 签名长度不符
	bad := items[0]
	bad.Signature = bad.Signature[1:]
	items = append(items, bad)

	code, resp := call[BatchVerifyResponse](t, r, nethttp.MethodPost, "/v1/verify/batch", BatchVerifyRequest{Items: items})
	require.Equal(t, nethttp.StatusOK, code)
	assert.Equal(t, 5, resp.Data.Total)
	assert.Equal(t, 4, resp.Data.Valid)
	for _, res := range resp.Data.Results[:4] {
		assert.True(t, res.Valid)
	}
	assert.False(t, resp.Data.Results[4].Valid)
	assert.Equal(t, "INVALID_SIGNATURE", resp.Data.Results[4].Reason)

	tooMany := make([]VerifyRequest, 9)
	for i := range tooMany {
		tooMany[i] = items[0]
	}
	code, failed := call[any](t, r, nethttp.MethodPost, "/v1/verify/batch", BatchVerifyRequest{Items: tooMany})
	assert.Equal(t, nethttp.StatusBadRequest, code)
	assert.Equal(t, ReasonTooManyItems, failed.Reason)

	code, _ = call[any](t, r, nethttp.MethodPost, "/v1/verify/batch", BatchVerifyRequest{})
	assert.Equal(t, nethttp.StatusBadRequest, code)
}

func TestECIES(t *testing.T) {
	s, r := newTestService(t, testConfig())
	plaintext := []byte(`{"amount":100}`)

	code, enc := call[EncryptResponse](t, r, nethttp.MethodPost, "/v1/ecies/encrypt", EncryptRequest{Plaintext: plaintext})
	require.Equal(t, nethttp.StatusOK, code)
	assert.Equal(t, "secp256r1", enc.Data.Curve)

	code, dec := call[DecryptResponse](t, r, nethttp.MethodPost, "/v1/ecies/decrypt", DecryptRequest{Ciphertext: enc.Data.Ciphertext})
	require.Equal(t, nethttp.StatusOK, code)
	assert.Equal(t, plaintext, dec.Data.Plaintext)

	pt, err := ecies.Decrypt(s.PrivateKey(), enc.Data.Ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, pt)

	// 加密给其他公钥
	other, err := ecies.GenerateKey(ecc.Secp128r1)
	require.NoError(t, err)
	code, enc = call[EncryptResponse](t, r, nethttp.MethodPost, "/v1/ecies/encrypt", EncryptRequest{PublicKey: other.Public().Bytes(true), Plaintext: plaintext})
	require.Equal(t, nethttp.StatusOK, code)
	assert.Equal(t, "secp128r1", enc.Data.Curve)

	code, resp := call[any](t, r, nethttp.MethodPost, "/v1/ecies/decrypt", DecryptRequest{Ciphertext: enc.Data.Ciphertext})
	assert.Equal(t, nethttp.StatusBadRequest, code)
	assert.Equal(t, "INVALID_CIPHERTEXT", resp.Reason)

	pt, err = ecies.Decrypt(other, enc.Data.Ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, pt)

	code, resp = call[any](t, r, nethttp.MethodPost, "/v1/ecies/encrypt", EncryptRequest{PublicKey: []byte{1, 2, 3}, Plaintext: plaintext})
	assert.Equal(t, nethttp.StatusBadRequest, code)
	assert.Equal(t, "INVALID_PUBLIC_KEY", resp.Reason)
}
