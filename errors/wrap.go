package errors

import (
	goerrors "errors"
)

// 标准库 errors 的同名转发, 调用方只需导入本包

func Unwrap(err error) error {
	return goerrors.Unwrap(err)
}

func Is(err, target error) bool {
	return goerrors.Is(err, target)
}

func As(err error, target any) bool {
	return goerrors.As(err, target)
}

func Join(errs ...error) error {
	return goerrors.Join(errs...)
}

// AsError returns the first *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var ge *Error
	if goerrors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
