package errors

import "net/http"

// 按 HTTP 状态分类的构造函数, 只保留服务实际会返回的几类

// BadRequest 请求体或参数不合法, 如编码错误、长度不符
func BadRequest(format string, args ...any) *Error {
	return New(http.StatusBadRequest, format, args...)
}

// NotFound 所需资源缺失, 如配置文件
func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, format, args...)
}

func RequestTimeout(format string, args ...any) *Error {
	return New(http.StatusRequestTimeout, format, args...)
}

// UnprocessableEntity 输入格式正确但数学上不成立, 如点不在曲线上
func UnprocessableEntity(format string, args ...any) *Error {
	return New(http.StatusUnprocessableEntity, format, args...)
}

func TooManyRequests(format string, args ...any) *Error {
	return New(http.StatusTooManyRequests, format, args...)
}

func Internal(format string, args ...any) *Error {
	return New(http.StatusInternalServerError, format, args...)
}

// ServiceUnavailable 内部资源暂不可用, 如批量验签池已满
func ServiceUnavailable(format string, args ...any) *Error {
	return New(http.StatusServiceUnavailable, format, args...)
}

// IsClient reports whether err maps to a 4xx status.
func IsClient(err error) bool {
	code := Code(err)
	return code >= http.StatusBadRequest && code < http.StatusInternalServerError
}

// IsServer reports whether err maps to a 5xx status.
func IsServer(err error) bool {
	return Code(err) >= http.StatusInternalServerError
}
