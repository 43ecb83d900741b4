package ecies

import "errors"

// 密钥
var (
	ErrInvalidPrivateKey = errors.New("ecies: invalid private key")
	ErrInvalidPublicKey  = errors.New("ecies: invalid public key")
	ErrPrivateKeyEmpty   = errors.New("ecies: private key is empty")  // nil 或已 Destroy
	ErrPublicKeyEmpty    = errors.New("ecies: public key is empty")
	ErrCurveMismatch     = errors.New("ecies: keys are on different curves")
)

// 加解密与密文格式, 解密失败不区分认证失败与密钥错误
var (
	ErrEncryptionFailed    = errors.New("ecies: encryption failed")
	ErrDecryptionFailed    = errors.New("ecies: decryption failed")
	ErrInvalidCiphertext   = errors.New("ecies: invalid ciphertext format")
	ErrCiphertextTooShort  = errors.New("ecies: ciphertext too short")
	ErrUnsupportedVersion  = errors.New("ecies: unsupported protocol version")
	ErrKeyDerivationFailed = errors.New("ecies: key derivation failed")
)

// PEM 文件
var (
	ErrInvalidPEMBlock = errors.New("ecies: invalid PEM block")
	ErrKeyFileRead     = errors.New("ecies: failed to access key file")
)
