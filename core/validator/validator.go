package validator

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// validatorImpl 校验器实现
type validatorImpl struct {
	validator    *validator.Validate
	uni          *ut.UniversalTranslator
	translators  map[string]ut.Translator
	enabledLangs []string
	defaultLang  string
}

// Validate 全局校验器实例
var Validate = New()

// New 创建新的校验器实例, 已注册 curve 与 nonce_mode 标签
func New(opts ...ValidationOption) Validator {
	v := &validatorImpl{
		validator:    validator.New(validator.WithRequiredStructEnabled()),
		translators:  make(map[string]ut.Translator),
		enabledLangs: []string{"en", "zh"},
		defaultLang:  "en",
	}

	// 初始化通用翻译器
	enLocale := en.New()
	v.uni = ut.New(enLocale, enLocale, zh.New())

	// 应用选项
	for _, opt := range opts {
		opt(v)
	}

	// 字段名优先使用 json 标签
	v.validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	registerCustomValidations(v.validator)
	v.initTranslators()

	return v
}

// initTranslators 初始化翻译器
func (v *validatorImpl) initTranslators() {
	for _, lang := range v.enabledLangs {
		trans, found := v.uni.GetTranslator(lang)
		if !found {
			continue
		}

		switch lang {
		case "en":
			_ = en_translations.RegisterDefaultTranslations(v.validator, trans)
		case "zh":
			_ = zh_translations.RegisterDefaultTranslations(v.validator, trans)
		default:
			continue
		}
		registerCustomTranslations(v.validator, lang, trans)
		v.translators[lang] = trans
	}
}

// Struct 校验结构体
func (v *validatorImpl) Struct(s any) error {
	if s == nil {
		return errors.New("validation target cannot be nil")
	}
	return v.translateError(v.validator.Struct(s))
}

// StructCtx 带上下文校验结构体
func (v *validatorImpl) StructCtx(ctx context.Context, s any) error {
	if s == nil {
		return errors.New("validation target cannot be nil")
	}
	return v.translateError(v.validator.StructCtx(ctx, s))
}

// Var 校验单个值
func (v *validatorImpl) Var(field any, tag string) error {
	return v.translateError(v.validator.Var(field, tag))
}

// translateError 使用默认语言翻译错误
func (v *validatorImpl) translateError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	trans, exists := v.translators[v.defaultLang]
	if !exists {
		return err
	}

	fieldErrors := make([]FieldError, 0, len(validationErrors))
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fieldError := &fieldErrorImpl{
			fieldError:  fe,
			message:     fe.Translate(trans),
			translators: v.translators,
		}
		fieldErrors = append(fieldErrors, fieldError)
		messages = append(messages, fieldError.message)
	}

	return &validationErrorsImpl{
		fieldErrors: fieldErrors,
		message:     strings.Join(messages, "; "),
	}
}
