package desensitize

const mask = "******"

var (
	// PrivateKeyRule 私钥字段脱敏, 同时覆盖 snake_case 与 camelCase 写法
	PrivateKeyRule = MustNewFieldRule(
		"private_key",
		`private_?[kK]ey`,
		`.*`,
		mask,
	)

	// SharedSecretRule ECDH 共享密钥字段脱敏
	SharedSecretRule = MustNewFieldRule(
		"shared_secret",
		`shared_?[sS]ecret`,
		`.*`,
		mask,
	)

	// PlaintextRule ECIES 明文字段脱敏
	PlaintextRule = MustNewFieldRule(
		"plaintext",
		"plaintext",
		`.*`,
		mask,
	)

	// PEMPrivateKeyRule PEM 格式私钥块脱敏 (日志中的 JSON 字符串, 换行已转义)
	PEMPrivateKeyRule = MustNewContentRule(
		"pem_private_key",
		`-----BEGIN ([A-Z ]*)PRIVATE KEY-----.*?-----END ([A-Z ]*)PRIVATE KEY-----`,
		"-----BEGIN ${1}PRIVATE KEY-----"+mask+"-----END ${2}PRIVATE KEY-----",
	)

	// PasswordRule 密码字段脱敏
	PasswordRule = MustNewFieldRule(
		"password",
		"password",
		`.*`,
		mask,
	)

	// TokenRule Token字段脱敏
	TokenRule = MustNewFieldRule(
		"token",
		"token",
		`.*`,
		mask,
	)

	// SecretRule Secret字段脱敏
	SecretRule = MustNewFieldRule(
		"secret",
		"secret",
		`.*`,
		mask,
	)
)

// BuiltinRules 返回所有内置规则
func BuiltinRules() []Rule {
	return []Rule{
		PEMPrivateKeyRule,
		PrivateKeyRule,
		SharedSecretRule,
		PlaintextRule,
		PasswordRule,
		TokenRule,
		SecretRule,
	}
}
