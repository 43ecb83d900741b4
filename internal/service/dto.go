package service

// 字节字段在 JSON 中为标准 base64

// KeyRequest 生成密钥对
type KeyRequest struct {
	// 为空时使用服务配置的曲线
	Curve      string `json:"curve" validate:"omitempty,curve"`
	Compressed *bool  `json:"compressed,omitempty"`
}

// KeyResponse 密钥对
type KeyResponse struct {
	Curve      string `json:"curve"`
	Bits       int    `json:"bits"`
	PrivateKey []byte `json:"private_key,omitempty"`
	PublicKey  []byte `json:"public_key"`
}

// PublicKeyRequest 公钥编码转换
type PublicKeyRequest struct {
	PublicKey []byte `json:"public_key" validate:"required"`
}

// PublicKeyResponse 公钥编码转换结果
type PublicKeyResponse struct {
	Curve     string `json:"curve"`
	PublicKey []byte `json:"public_key"`
}

// DetectRequest 识别密钥曲线
type DetectRequest struct {
	Key string `json:"key" validate:"required"`
}

// DetectResponse 识别结果
type DetectResponse struct {
	Curve  string `json:"curve"`
	Bits   int    `json:"bits"`
	Public bool   `json:"public"`
}

// QRCodeRequest 公钥二维码
type QRCodeRequest struct {
	PublicKey []byte `json:"public_key" validate:"required"`
	Size      int    `json:"size" validate:"omitempty,gte=64,lte=1024"`
	Level     string `json:"level" validate:"omitempty,oneof=low medium high highest l m q h"`
}

// QRCodeResponse 二维码
type QRCodeResponse struct {
	Content string `json:"content"`
	PNG     []byte `json:"png"`
}

// ECDHRequest 计算共享密钥
type ECDHRequest struct {
	Curve      string `json:"curve" validate:"omitempty,curve"`
	PrivateKey []byte `json:"private_key" validate:"required"`
	PublicKey  []byte `json:"public_key" validate:"required"`
}

// ECDHResponse 共享密钥
type ECDHResponse struct {
	Curve        string `json:"curve"`
	SharedSecret []byte `json:"shared_secret"`
}

// SignRequest ECDSA 签名, 提供 message 时由服务计算摘要
type SignRequest struct {
	Curve      string `json:"curve" validate:"omitempty,curve"`
	PrivateKey []byte `json:"private_key" validate:"required"`
	Hash       []byte `json:"hash" validate:"required_without=Message"`
	Message    []byte `json:"message"`
	Nonce      string `json:"nonce" validate:"omitempty,nonce_mode"`
}

// SignResponse 签名结果
type SignResponse struct {
	Curve     string `json:"curve"`
	Hash      []byte `json:"hash"`
	Signature []byte `json:"signature"`
}

// VerifyRequest ECDSA 验签, 曲线由公钥识别
type VerifyRequest struct {
	PublicKey []byte `json:"public_key" validate:"required"`
	Hash      []byte `json:"hash" validate:"required_without=Message"`
	Message   []byte `json:"message"`
	Signature []byte `json:"signature" validate:"required"`
}

// VerifyResponse 验签结果
type VerifyResponse struct {
	Curve string `json:"curve"`
	Valid bool   `json:"valid"`
}

// BatchVerifyRequest 批量验签
type BatchVerifyRequest struct {
	Items []VerifyRequest `json:"items" validate:"required,min=1,dive"`
}

// BatchVerifyResult 单条验签结果, 输入不合法时 error 非空
type BatchVerifyResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BatchVerifyResponse 批量验签结果, 与请求顺序一致
type BatchVerifyResponse struct {
	Total   int                 `json:"total"`
	Valid   int                 `json:"valid"`
	Results []BatchVerifyResult `json:"results"`
}

// EncryptRequest ECIES 加密
type EncryptRequest struct {
	// 为空时使用服务公钥
	PublicKey []byte `json:"public_key"`
	Plaintext []byte `json:"plaintext" validate:"required"`
}

// EncryptResponse ECIES 密文
type EncryptResponse struct {
	Curve      string `json:"curve"`
	Ciphertext []byte `json:"ciphertext"`
}

// DecryptRequest 使用服务私钥解密
type DecryptRequest struct {
	Ciphertext []byte `json:"ciphertext" validate:"required"`
}

// DecryptResponse 明文
type DecryptResponse struct {
	Plaintext []byte `json:"plaintext"`
}

// ServiceKeyResponse 服务公钥
type ServiceKeyResponse struct {
	Curve      string `json:"curve"`
	Bits       int    `json:"bits"`
	Compressed bool   `json:"compressed"`
	PublicKey  []byte `json:"public_key"`
	PEM        string `json:"pem"`
}

// CurveInfo 曲线参数
type CurveInfo struct {
	Name               string `json:"name"`
	Bits               int    `json:"bits"`
	PrivateKeyLength   int    `json:"private_key_length"`
	CompressedLength   int    `json:"compressed_length"`
	UncompressedLength int    `json:"uncompressed_length"`
	SignatureLength    int    `json:"signature_length"`
}
