package qrcode

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/skip2/go-qrcode"
)

// Level 二维码纠错级别
type Level = qrcode.RecoveryLevel

const (
	// Low 7% 的纠错能力
	Low Level = qrcode.Low
	// Medium 15% 的纠错能力（默认）
	Medium Level = qrcode.Medium
	// High 25% 的纠错能力
	High Level = qrcode.High
	// Highest 30% 的纠错能力
	Highest Level = qrcode.Highest
)

// 图片边长范围, 单位像素
const (
	MinSize     = 64
	MaxSize     = 1024
	DefaultSize = 256
)

// KeyScheme 公钥二维码内容前缀, 完整内容为 "ecc:<curve>:<base64 key>"
const KeyScheme = "ecc"

// ParseLevel 解析纠错级别, 空字符串为 Medium
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "low":
		return Low, nil
	case "", "m", "medium":
		return Medium, nil
	case "q", "high":
		return High, nil
	case "h", "highest":
		return Highest, nil
	}
	return Medium, fmt.Errorf("qrcode: unknown recovery level %q", s)
}

// KeyContent 构造公钥二维码内容
func KeyContent(curve string, key []byte) string {
	return KeyScheme + ":" + curve + ":" + base64.StdEncoding.EncodeToString(key)
}

// ParseKeyContent 解析 KeyContent 生成的内容
func ParseKeyContent(content string) (curve string, key []byte, err error) {
	parts := strings.SplitN(content, ":", 3)
	if len(parts) != 3 || parts[0] != KeyScheme || parts[1] == "" {
		return "", nil, fmt.Errorf("qrcode: malformed key content")
	}
	key, err = base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return "", nil, fmt.Errorf("qrcode: malformed key content: %w", err)
	}
	return parts[1], key, nil
}

// Encode 生成 PNG 二维码
func Encode(content string, size int, level Level) ([]byte, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("qrcode: size %d out of range [%d, %d]", size, MinSize, MaxSize)
	}
	return qrcode.Encode(content, level, size)
}

// Generate 生成二维码并返回 Base64 编码的 PNG
func Generate(content string, size int) (string, error) {
	png, err := Encode(content, size, Medium)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

// WriteFile 生成二维码并保存为 PNG 文件
func WriteFile(content string, size int, level Level, filename string) error {
	png, err := Encode(content, size, level)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, png, 0o644)
}
