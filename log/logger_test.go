package log

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/eckit/errors"
)

type keyInfo struct {
	Curve string `json:"curve"`
	Bits  int    `json:"bits"`
}

func (k *keyInfo) String() string {
	b, _ := json.Marshal(k)
	return string(b)
}

func TestLog(t *testing.T) {
	logger := New()
	logger.Debug().Msg("test debug message")
	logger.Info().Str("curve", "secp256r1").Msg("test info with field")
	logger.Error().Err(errors.New(422, "point not on curve")).Msg("test error")
	logger.Info().Any("key", &keyInfo{Curve: "secp192r1", Bits: 192}).Msg("test with struct")
}

func TestGlobalLog(t *testing.T) {
	var buf bytes.Buffer
	prev := SetGlobalLogger(NewWriter(&buf, WithLevel(zerolog.WarnLevel)))
	t.Cleanup(func() { SetGlobalLogger(prev) })
	assert.Equal(t, zerolog.WarnLevel, GlobalLevel())

	Info().Msg("dropped")
	Warn().Err(errors.New(400, "test warn error")).Msg("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), `"message":"kept"`)

	// 热更新后, 由 G 派生的 logger 同样生效
	derived := G.With().Str("request_id", "r1").Logger()
	SetGlobalLevel(zerolog.DebugLevel)
	derived.Debug().Msg("reloaded")
	assert.Contains(t, buf.String(), `"request_id":"r1"`)
	assert.Contains(t, buf.String(), `"message":"reloaded"`)

	SetGlobalLevel(zerolog.ErrorLevel)
	buf.Reset()
	Warn().Msg("quiet")
	Error().Err(errors.New(500, "boom")).Msg("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, WithLevel(zerolog.WarnLevel), WithFields(map[string]any{"service": "eccd"}))

	logger.Info().Msg("dropped")
	logger.Warn().Str("curve", "secp384r1").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "eccd", entry["service"])
	assert.Equal(t, "secp384r1", entry["curve"])
	assert.Equal(t, "warn", entry["level"])
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	base := NewWriter(&buf)
	ctx := WithContext(context.Background(), base.With().Str("request_id", "abc").Logger())

	Ctx(ctx).Info().Msg("with request")
	assert.Contains(t, buf.String(), `"request_id":"abc"`)

	assert.Same(t, &G.Logger, Ctx(context.Background()))
}

func TestFileLog(t *testing.T) {
	dir := t.TempDir()
	config := FileConfig{
		Filepath:   dir,
		RotateMode: "size",
		Filename:   "test",
		LumberjackConfig: LumberjackConfig{
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   true,
		},
	}

	logger, err := NewFile(config)
	require.NoError(t, err)

	logger.Info().Msg("test file log")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(filepath.Join(dir, "test.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "test file log")
}

func TestMultiLog(t *testing.T) {
	config := FileConfig{
		Filepath:   t.TempDir(),
		RotateMode: "time",
		Filename:   "multi",
		RotatelogsConfig: RotatelogsConfig{
			MaxAge:       24,
			RotationTime: 1,
		},
	}

	logger, err := NewMulti(config)
	require.NoError(t, err)
	defer logger.Close()

	logger.Info().Str("type", "multi").Msg("test multi output log")
}

func TestNewFromConfig(t *testing.T) {
	logger, err := NewFromConfig(Config{Level: "debug", Desensitize: true})
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
	assert.NotNil(t, logger.GetDesensitizeHook())

	_, err = NewFromConfig(Config{Level: "loud"})
	assert.Error(t, err)

	_, err = NewFromConfig(Config{Output: "syslog"})
	assert.Error(t, err)

	_, err = NewFromConfig(Config{Output: "file", File: FileConfig{Filepath: t.TempDir(), RotateMode: "daily"}})
	assert.Error(t, err)
}

func TestFileConfigDefaults(t *testing.T) {
	c := FileConfig{Filename: "custom"}.withDefaults()
	assert.Equal(t, "log", c.Filepath)
	assert.Equal(t, "custom", c.Filename)
	assert.Equal(t, "log", c.FileExt)
	assert.Equal(t, "size", c.RotateMode)
	assert.Equal(t, 100, c.LumberjackConfig.MaxSize)
	assert.Equal(t, 24, c.RotatelogsConfig.MaxAge)
}

func TestFileOptions(t *testing.T) {
	o, err := FileConfig{RotateMode: "time"}.withDefaults().options()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, o.Retain)
	assert.Equal(t, time.Hour, o.Every)
	assert.Equal(t, "eccd", o.Name)
	assert.Equal(t, 30, o.MaxAgeDays)
}
