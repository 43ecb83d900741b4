package http

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestAdditionalHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := NewServer(
		"",
		gin.New(),
		WithMeta(Meta{Name: "eccd"}),
		WithMetricsOptions(MetricsOption{Enabled: true, EnabledBuildInfoCollector: true}),
		WithHealthOptions(HealthOption{Enabled: true}),
		WithSwagOptions(SwagOption{Enabled: true, Path: "/docs/*any"}),
	)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "go_build_info"))

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDisabledHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := NewServer("", gin.New())

	for _, path := range []string{"/health", "/metrics"} {
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestServerRunShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	addr := freeAddr(t)
	s := NewServer(addr, gin.New(), WithHealthOptions(HealthOption{Enabled: true}))

	errCh := make(chan error, 1)
	go func() { errCh <- s.Run() }()

	select {
	case <-s.Ready():
	case err := <-errCh:
		t.Fatalf("server stopped early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}
	assert.Equal(t, addr, s.Addr())

	resp, err := http.Get("http://" + s.Addr() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	assert.ErrorIs(t, <-errCh, http.ErrServerClosed)
}
