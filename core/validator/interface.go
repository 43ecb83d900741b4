package validator

import "context"

// Validator 校验请求体与配置; 返回的错误实现 ValidationErrors
type Validator interface {
	Struct(s any) error
	StructCtx(ctx context.Context, s any) error
	// Var 校验单个值, 例如 Var("secp256r1", "curve")
	Var(field any, tag string) error
}

// ValidationErrors 一次校验中全部字段的错误
type ValidationErrors interface {
	error
	Errors() []FieldError
}

// FieldError 单个字段的错误, Field 为 json 名
type FieldError interface {
	Field() string
	Tag() string
	Value() any
	Message() string
	// Translate 按语言翻译, 未启用的语言回退到默认语言
	Translate(lang string) string
}

type ValidationOption func(*validatorImpl)

// WithTagName 结构体标签名, 默认 validate
func WithTagName(tagName string) ValidationOption {
	return func(v *validatorImpl) {
		v.validator.SetTagName(tagName)
	}
}

// WithTranslator 启用的翻译语言, 支持 en 和 zh
func WithTranslator(langs ...string) ValidationOption {
	return func(v *validatorImpl) {
		v.enabledLangs = langs
	}
}

// WithDefaultLang Message 使用的语言
func WithDefaultLang(lang string) ValidationOption {
	return func(v *validatorImpl) {
		v.defaultLang = lang
	}
}
