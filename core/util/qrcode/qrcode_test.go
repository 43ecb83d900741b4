package qrcode

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"", Medium, false},
		{"low", Low, false},
		{"M", Medium, false},
		{"high", High, false},
		{"q", High, false},
		{" highest ", Highest, false},
		{"ultra", Medium, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyContent(t *testing.T) {
	key := []byte{0x02, 0x01, 0x02, 0x03}
	content := KeyContent("secp128r1", key)
	assert.Equal(t, "ecc:secp128r1:AgECAw==", content)

	curve, got, err := ParseKeyContent(content)
	require.NoError(t, err)
	assert.Equal(t, "secp128r1", curve)
	assert.Equal(t, key, got)

	for _, bad := range []string{"", "ecc:secp128r1", "otp:secp128r1:AgECAw==", "ecc::AgECAw==", "ecc:secp128r1:%%"} {
		_, _, err := ParseKeyContent(bad)
		assert.Error(t, err, bad)
	}
}

func TestEncode(t *testing.T) {
	for _, level := range []Level{Low, Medium, High, Highest} {
		png, err := Encode("ecc:secp256r1:AgECAw==", DefaultSize, level)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(png, pngMagic))
	}

	_, err := Encode("x", MinSize-1, Medium)
	assert.Error(t, err)
	_, err = Encode("x", MaxSize+1, Medium)
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	result, err := Generate("ecc:secp192r1:AgECAw==", DefaultSize)
	require.NoError(t, err)

	png, err := base64.StdEncoding.DecodeString(result)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestWriteFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "key.png")

	require.NoError(t, WriteFile("ecc:secp384r1:AgECAw==", DefaultSize, High, filename))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}

func BenchmarkEncode(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Encode("ecc:secp256r1:AgECAw==", DefaultSize, Medium)
	}
}
