package validator

import (
	"errors"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// validationErrorsImpl 校验错误实现
type validationErrorsImpl struct {
	fieldErrors []FieldError
	message     string
}

// Error 返回错误信息
func (ve *validationErrorsImpl) Error() string {
	return ve.message
}

// Errors 返回错误列表
func (ve *validationErrorsImpl) Errors() []FieldError {
	return ve.fieldErrors
}

// fieldErrorImpl 字段错误实现
type fieldErrorImpl struct {
	fieldError  validator.FieldError
	message     string
	translators map[string]ut.Translator
}

func (fe *fieldErrorImpl) Field() string   { return fe.fieldError.Field() }
func (fe *fieldErrorImpl) Tag() string     { return fe.fieldError.Tag() }
func (fe *fieldErrorImpl) Value() any      { return fe.fieldError.Value() }
func (fe *fieldErrorImpl) Message() string { return fe.message }

// Translate 翻译错误消息, 未启用的语言返回默认消息
func (fe *fieldErrorImpl) Translate(lang string) string {
	if trans, exists := fe.translators[lang]; exists {
		return fe.fieldError.Translate(trans)
	}
	return fe.message
}

// ValidationError 校验错误详情, 用于接口响应的 metadata
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   any    `json:"value"`
	Message string `json:"message"`
}

// Details 展开校验错误, 非校验错误返回 nil
func Details(err error) []ValidationError {
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	details := make([]ValidationError, 0, len(ve.Errors()))
	for _, fe := range ve.Errors() {
		details = append(details, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Value:   fe.Value(),
			Message: fe.Message(),
		})
	}
	return details
}

// IsValidationError 检查是否为校验错误
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}
