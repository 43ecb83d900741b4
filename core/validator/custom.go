package validator

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/kochabx/eckit/core/crypto/ecc"
)

// 自定义标签
const (
	// TagCurve 曲线名称或位长, 不接受 none
	TagCurve = "curve"
	// TagNonceMode ECDSA nonce 模式
	TagNonceMode = "nonce_mode"
	// TagECCKey base64 编码且长度可识别的私钥或公钥
	TagECCKey = "ecc_key"
)

func registerCustomValidations(v *validator.Validate) {
	_ = v.RegisterValidation(TagCurve, func(fl validator.FieldLevel) bool {
		id, err := ecc.ParseCurveID(fl.Field().String())
		return err == nil && id.Supported()
	})
	_ = v.RegisterValidation(TagNonceMode, func(fl validator.FieldLevel) bool {
		_, err := ecc.ParseNonceMode(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation(TagECCKey, func(fl validator.FieldLevel) bool {
		_, err := ecc.DetectKeyBase64(fl.Field().String())
		return err == nil
	})
}

var customMessages = map[string]map[string]string{
	"en": {
		TagCurve:     "{0} must be one of secp128r1, secp192r1, secp256r1, secp384r1",
		TagNonceMode: "{0} must be random, deterministic or rfc6979",
		TagECCKey:    "{0} must be a base64 key of a supported curve",
	},
	"zh": {
		TagCurve:     "{0}必须是secp128r1、secp192r1、secp256r1或secp384r1",
		TagNonceMode: "{0}必须是random、deterministic或rfc6979",
		TagECCKey:    "{0}必须是受支持曲线的base64密钥",
	},
}

func registerCustomTranslations(v *validator.Validate, lang string, trans ut.Translator) {
	for tag, text := range customMessages[lang] {
		_ = v.RegisterTranslation(tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(tag, text, true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				msg, err := ut.T(fe.Tag(), fe.Field())
				if err != nil {
					return fe.Error()
				}
				return msg
			},
		)
	}
}
