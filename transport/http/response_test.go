package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	kiterrors "github.com/kochabx/eckit/errors"
)

var errTestSentinel = errors.New("test: hash length mismatch")

func init() {
	kiterrors.Register(errTestSentinel, http.StatusBadRequest, "HASH_LENGTH_MISMATCH")
}

func TestGinJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		data any
		want string
	}{
		{
			name: "string data",
			data: "test data",
			want: `{"code":200,"msg":"success","data":"test data"}`,
		},
		{
			name: "map data",
			data: map[string]string{"curve": "secp256r1"},
			want: `{"code":200,"msg":"success","data":{"curve":"secp256r1"}}`,
		},
		{
			name: "nil data",
			data: nil,
			want: `{"code":200,"msg":"success"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			GinJSON(c, tt.data)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestGinError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		want   string
	}{
		{
			name:   "registered sentinel",
			err:    errTestSentinel,
			status: http.StatusBadRequest,
			want:   `{"code":400,"reason":"HASH_LENGTH_MISMATCH","msg":"test: hash length mismatch"}`,
		},
		{
			name:   "wrapped sentinel",
			err:    errors.Join(errors.New("sign"), errTestSentinel),
			status: http.StatusBadRequest,
			want:   `{"code":400,"reason":"HASH_LENGTH_MISMATCH","msg":"sign\ntest: hash length mismatch"}`,
		},
		{
			name:   "kit error",
			err:    kiterrors.UnprocessableEntity("point not on curve").WithReason("POINT_NOT_ON_CURVE"),
			status: http.StatusUnprocessableEntity,
			want:   `{"code":422,"reason":"POINT_NOT_ON_CURVE","msg":"point not on curve"}`,
		},
		{
			name:   "unknown error",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			want:   `{"code":500,"reason":"UNKNOWN","msg":"boom"}`,
		},
		{
			name:   "business code",
			err:    kiterrors.New(10001, "custom"),
			status: http.StatusInternalServerError,
			want:   `{"code":10001,"msg":"custom"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			GinError(c, tt.err)

			assert.True(t, c.IsAborted())
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestGinJSONE(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		code int
		data any
		want string
	}{
		{
			name: "with kit error",
			code: 10001,
			data: kiterrors.New(10001, "custom error message"),
			want: `{"code":10001,"msg":"custom error message"}`,
		},
		{
			name: "with registered error",
			code: 400,
			data: errTestSentinel,
			want: `{"code":400,"reason":"HASH_LENGTH_MISMATCH","msg":"test: hash length mismatch"}`,
		},
		{
			name: "with string message",
			code: 400,
			data: "bad request",
			want: `{"code":400,"msg":"bad request"}`,
		},
		{
			name: "with nil",
			code: 500,
			data: nil,
			want: `{"code":500,"msg":"operation failed"}`,
		},
		{
			name: "with data object",
			code: 201,
			data: map[string]any{"id": 123},
			want: `{"code":201,"data":{"id":123}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			GinJSONE(c, tt.code, tt.data)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestNilContext(t *testing.T) {
	// 应该不会 panic
	GinJSON(nil, "test")
	GinJSONE(nil, 500, "error")
	GinError(nil, errTestSentinel)
}

func TestSuccessFailure(t *testing.T) {
	resp := Success("test data")
	assert.Equal(t, 200, resp.Code)
	assert.Equal(t, "success", resp.Msg)
	assert.Equal(t, "test data", resp.Data)

	fail := Failure(nil)
	assert.Equal(t, 500, fail.Code)
	assert.Equal(t, "UNKNOWN", fail.Reason)
	assert.Nil(t, fail.Data)
}

func BenchmarkGinJSON(b *testing.B) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	testData := map[string]string{"key": "value"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Body.Reset()
		GinJSON(c, testData)
	}
}

func BenchmarkGinError(b *testing.B) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Body.Reset()
		GinError(c, errTestSentinel)
	}
}
