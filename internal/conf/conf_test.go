package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/eckit/config"
	"github.com/kochabx/eckit/core/crypto/ecc"
	"github.com/kochabx/eckit/core/validator"
	"github.com/kochabx/eckit/errors"
)

func load(t *testing.T, content string) (*Config, error) {
	t.Helper()
	file := filepath.Join(t.TempDir(), "eccd.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	cfg := new(Config)
	v := viper.New()
	c := config.New(cfg,
		config.WithViper(v),
		config.WithLoader(config.NewPathLoader(file, v, validator.Validate,
			config.WithDefaults(Defaults()),
			config.WithEnvPrefix(EnvPrefix),
		)),
	)
	return cfg, c.Load()
}

func TestDefaults(t *testing.T) {
	cfg, err := load(t, "{}\n")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Server.Metrics.Enabled)
	assert.Equal(t, ecc.Secp256r1, cfg.Crypto.CurveID())
	assert.Equal(t, ecc.NonceRandom, cfg.Crypto.NonceMode())
	assert.True(t, cfg.Crypto.Compressed)
	assert.Equal(t, 8, cfg.Batch.Workers)
	assert.Equal(t, 256, cfg.Batch.MaxItems)
	assert.True(t, cfg.Log.Desensitize)
	assert.False(t, cfg.Middleware.RateLimit.Enabled)
	assert.Equal(t, "token_bucket", cfg.Middleware.RateLimit.Algorithm)
	assert.Equal(t, time.Second, cfg.Middleware.RateLimit.Window)
	assert.Equal(t, "eccd:rate:", cfg.Middleware.RateLimit.Redis.Prefix)
	assert.False(t, cfg.Middleware.Cors.Enabled)
	assert.Equal(t, []string{"*"}, cfg.Middleware.Cors.AllowOrigins)
	assert.Equal(t, 12*time.Hour, cfg.Middleware.Cors.MaxAge)
}

func TestOverrides(t *testing.T) {
	key, err := ecc.GenerateKeyPair(ecc.Secp384r1)
	require.NoError(t, err)
	t.Setenv("ECCD_SERVER_ADDR", "127.0.0.1:9443")

	cfg, err := load(t, `
crypto:
  curve: P-384
  nonce: rfc6979
  private_key: `+key.PrivateKeyBase64()+`
batch:
  workers: 2
middleware:
  rate_limit:
    enabled: true
    algorithm: sliding_window
    window: 10s
    redis:
      addrs: ["127.0.0.1:6379"]
`)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9443", cfg.Server.Addr)
	assert.Equal(t, ecc.Secp384r1, cfg.Crypto.CurveID())
	assert.Equal(t, ecc.NonceDeterministic, cfg.Crypto.NonceMode())
	assert.Equal(t, key.PrivateKeyBase64(), cfg.Crypto.PrivateKey)
	assert.Equal(t, 2, cfg.Batch.Workers)

	rl := cfg.Middleware.RateLimit
	assert.True(t, rl.Enabled)
	assert.Equal(t, "sliding_window", rl.Algorithm)
	assert.Equal(t, 10*time.Second, rl.Window)
	assert.Equal(t, []string{"127.0.0.1:6379"}, rl.Redis.Addrs)
	assert.Equal(t, 100, rl.Capacity)
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"curve", "crypto:\n  curve: secp256k1\n", "curve"},
		{"nonce", "crypto:\n  nonce: counter\n", "nonce"},
		{"key", "crypto:\n  private_key: AAEC\n", "private_key"},
		{"workers", "batch:\n  workers: 0\n", "workers"},
		{"log level", "log:\n  level: loud\n", "level"},
		{"rate algorithm", "middleware:\n  rate_limit:\n    algorithm: leaky\n", "algorithm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(t, tt.content)
			require.Error(t, err)
			assert.Equal(t, 400, errors.Code(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
