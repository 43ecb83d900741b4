package middleware

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/eckit/core/crypto/ecc"
	"github.com/kochabx/eckit/core/crypto/ecies"
	"github.com/kochabx/eckit/log"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type errorBody struct {
	Code   int    `json:"code"`
	Reason string `json:"reason"`
	Msg    string `json:"msg"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// echo 返回请求体
func echo(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Data(http.StatusOK, "text/plain", body)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPathMatcher(t *testing.T) {
	pm := NewPathMatcher([]string{"/healthz", "/swagger/**", "/v1/*/verify"})

	tests := []struct {
		path string
		want bool
	}{
		{"/healthz", true},
		{"/healthz/x", false},
		{"/swagger", true},
		{"/swagger/index.html", true},
		{"/swaggerx", false},
		{"/v1/ecdsa/verify", true},
		{"/v1/ecdsa/sign", false},
		{"/metrics", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, pm.Match(tt.path))
		})
	}

	var nilMatcher *PathMatcher
	assert.False(t, nilMatcher.Match("/healthz"))
}

func TestRequestID(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestID(RequestIDConfig{Logger: log.NewWriter(&buf)}))
	r.GET("/id", func(c *gin.Context) {
		log.Ctx(c.Request.Context()).Info().Msg("handled")
		c.String(http.StatusOK, RequestIDFrom(c))
	})

	t.Run("propagate", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/id", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		w := serve(r, req)

		assert.Equal(t, "req-42", w.Body.String())
		assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
		assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	})

	t.Run("generate", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/id", nil))

		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestID(), Logger(LoggerConfig{
		Logger:      log.NewWriter(&buf),
		RequestBody: true,
		SkipPaths:   []string{"/healthz"},
	}))
	r.POST("/v1/echo", echo)
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, httptest.NewRequest(http.MethodPost, "/v1/echo?x=1", strings.NewReader("hello")))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, "/v1/echo", entry["route"])
	assert.Equal(t, "x=1", entry["query"])
	assert.NotEmpty(t, entry["request_id"])

	buf.Reset()
	serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Empty(t, buf.String())

	serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(Recovery(RecoveryConfig{Logger: log.NewWriter(&buf)}))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, http.StatusInternalServerError, body.Code)
	assert.Equal(t, "PANIC", body.Reason)
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "boom")
}

func TestSignature(t *testing.T) {
	client, err := ecc.GenerateKeyPair(ecc.Secp256r1)
	require.NoError(t, err)

	signer, err := ECDSASignerBase64(client.PublicKeyBase64())
	require.NoError(t, err)

	cfg := DefaultSignatureConfig()
	cfg.Signer = signer
	cfg.Logger = log.NewWriter(io.Discard)
	cfg.SkipPaths = []string{"/healthz"}

	r := gin.New()
	r.Use(Signature(cfg))
	r.POST("/v1/echo", echo)
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	sign := func(data string) string {
		sig, err := client.SignBytes(client.Digest([]byte(data)))
		require.NoError(t, err)
		return base64.StdEncoding.EncodeToString(sig)
	}

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/echo?b=2&a=1", strings.NewReader("payload"))
		req.Header.Set("X-Signature", sign("POST/v1/echoa=1&b=2payload"))
		w := serve(r, req)

		assert.Equal(t, http.StatusOK, w.Code)
		// 下游仍能读取请求体
		assert.Equal(t, "payload", w.Body.String())
	})

	t.Run("tampered", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/echo?a=1&b=2", strings.NewReader("payload!"))
		req.Header.Set("X-Signature", sign("POST/v1/echoa=1&b=2payload"))
		w := serve(r, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "SIGNATURE_INVALID", decodeError(t, w).Reason)
	})

	t.Run("missing", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodPost, "/v1/echo", strings.NewReader("payload")))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/echo", strings.NewReader("payload"))
		req.Header.Set("X-Signature", "%%%")
		assert.Equal(t, http.StatusBadRequest, serve(r, req).Code)
	})

	t.Run("repeated query values", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/echo?a=1&a=2", strings.NewReader("payload"))
		req.Header.Set("X-Signature", sign("POST/v1/echoa=1payload"))
		assert.Equal(t, http.StatusBadRequest, serve(r, req).Code)

		req = httptest.NewRequest(http.MethodPost, "/v1/echo?a=1&a=2", strings.NewReader("payload"))
		req.Header.Set("X-Signature", sign("POST/v1/echoa=1&a=2payload"))
		assert.Equal(t, http.StatusOK, serve(r, req).Code)
	})

	t.Run("skip", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestSignatureBodyLimit(t *testing.T) {
	client, err := ecc.GenerateKeyPair(ecc.Secp128r1)
	require.NoError(t, err)
	signer, err := ECDSASigner(client.PublicKey())
	require.NoError(t, err)

	cfg := DefaultSignatureConfig()
	cfg.Signer = signer
	cfg.MaxBody = 16
	cfg.Logger = log.NewWriter(io.Discard)

	r := gin.New()
	r.Use(Signature(cfg))
	r.POST("/v1/echo", echo)

	for _, body := range []string{"0123456789abcdef", "0123456789abcdefX"} {
		sig, err := client.SignBytes(client.Digest([]byte("POST/v1/echo" + body)))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/v1/echo", strings.NewReader(body))
		req.Header.Set("X-Signature", base64.StdEncoding.EncodeToString(sig))
		w := serve(r, req)

		if len(body) <= 16 {
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, body, w.Body.String())
			continue
		}
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, "BODY_TOO_LARGE", decodeError(t, w).Reason)
	}
}

func TestSignatureTimestamp(t *testing.T) {
	client, err := ecc.GenerateKeyPair(ecc.Secp192r1)
	require.NoError(t, err)
	signer, err := ECDSASigner(client.PublicKey())
	require.NoError(t, err)

	now := time.Unix(1_700_000_000, 0)
	cfg := DefaultSignatureConfig()
	cfg.Signer = signer
	cfg.TimestampHeader = "X-Timestamp"
	cfg.MaxSkew = time.Minute
	cfg.Logger = log.NewWriter(io.Discard)
	cfg.now = func() time.Time { return now }

	r := gin.New()
	r.Use(Signature(cfg))
	r.GET("/v1/curves", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name string
		ts   string
		code int
	}{
		{"in window", strconv.FormatInt(now.Unix()-30, 10), http.StatusOK},
		{"expired", strconv.FormatInt(now.Unix()-120, 10), http.StatusBadRequest},
		{"future", strconv.FormatInt(now.Unix()+120, 10), http.StatusBadRequest},
		{"not a number", "yesterday", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, err := client.SignBytes(client.Digest([]byte("GET/v1/curves" + tt.ts)))
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/v1/curves", nil)
			req.Header.Set("X-Signature", base64.StdEncoding.EncodeToString(sig))
			req.Header.Set("X-Timestamp", tt.ts)
			assert.Equal(t, tt.code, serve(r, req).Code)
		})
	}
}

func TestECDSASignerInvalidKey(t *testing.T) {
	_, err := ECDSASigner(make([]byte, 7))
	assert.ErrorIs(t, err, ecc.ErrUnrecognizedKeyLength)

	_, err = ECDSASignerBase64("not base64!")
	assert.Error(t, err)

	assert.Panics(t, func() { Signature(SignatureConfig{}) })
}

func TestCrypto(t *testing.T) {
	priv, err := ecies.GenerateKey(ecc.Secp192r1)
	require.NoError(t, err)

	ciphertext, err := ecies.Encrypt(priv.Public(), []byte(`{"msg":"secret"}`))
	require.NoError(t, err)

	newRouter := func(raw bool) *gin.Engine {
		r := gin.New()
		r.Use(Crypto(CryptoConfig{
			Decryptor: ECIESDecryptor(priv),
			RawBody:   raw,
			MaxBody:   4096,
			Logger:    log.NewWriter(io.Discard),
		}))
		r.POST("/v1/echo", echo)
		return r
	}

	t.Run("base64", func(t *testing.T) {
		body := base64.StdEncoding.EncodeToString(ciphertext)
		w := serve(newRouter(false), httptest.NewRequest(http.MethodPost, "/v1/echo", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `{"msg":"secret"}`, w.Body.String())
	})

	t.Run("raw", func(t *testing.T) {
		w := serve(newRouter(true), httptest.NewRequest(http.MethodPost, "/v1/echo", bytes.NewReader(ciphertext)))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `{"msg":"secret"}`, w.Body.String())
	})

	t.Run("empty", func(t *testing.T) {
		w := serve(newRouter(false), httptest.NewRequest(http.MethodPost, "/v1/echo", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("tampered", func(t *testing.T) {
		tampered := bytes.Clone(ciphertext)
		tampered[len(tampered)-1] ^= 0xff
		w := serve(newRouter(true), httptest.NewRequest(http.MethodPost, "/v1/echo", bytes.NewReader(tampered)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "DECRYPT_FAILED", decodeError(t, w).Reason)
	})

	t.Run("too large", func(t *testing.T) {
		big := bytes.Repeat([]byte{0x04}, 4097)
		w := serve(newRouter(true), httptest.NewRequest(http.MethodPost, "/v1/echo", bytes.NewReader(big)))

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, "BODY_TOO_LARGE", decodeError(t, w).Reason)
	})

	t.Run("wrong curve", func(t *testing.T) {
		other, err := ecies.GenerateKey(ecc.Secp256r1)
		require.NoError(t, err)
		ct, err := ecies.Encrypt(other.Public(), []byte("x"))
		require.NoError(t, err)

		w := serve(newRouter(true), httptest.NewRequest(http.MethodPost, "/v1/echo", bytes.NewReader(ct)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestECIESDecryptorFromFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ecies.GenerateKeyPair(ecc.Secp384r1, ecies.WithDirpath(dir)))

	dec, err := ECIESDecryptorFromFile(dir + "/private.pem")
	require.NoError(t, err)

	pub, err := ecies.LoadPublicKey(dir + "/public.pem")
	require.NoError(t, err)
	ct, err := ecies.Encrypt(pub, []byte("hi"))
	require.NoError(t, err)

	pt, err := dec.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), pt)

	_, err = ECIESDecryptorFromFile(dir + "/absent.pem")
	assert.Error(t, err)
}
