package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/eckit/errors"
)

const (
	// 默认响应消息
	defaultSuccessMsg = "success"
	defaultErrorMsg   = "operation failed"

	// 默认响应码
	successCode = http.StatusOK
)

// Response 表示标准化的 API 响应结构
// 使用泛型 T 来支持任意类型的数据字段
type Response[T any] struct {
	Code     int               `json:"code"`               // 业务状态码
	Reason   string            `json:"reason,omitempty"`   // 机器可读的错误原因
	Msg      string            `json:"msg,omitempty"`      // 响应消息
	Data     T                 `json:"data,omitempty"`     // 响应数据
	Metadata map[string]string `json:"metadata,omitempty"` // 错误附加信息
}

// GinJSON 写入成功的 JSON 响应
// HTTP 状态码固定为 200，业务码为 200，消息为 "success"
//
// 示例：
//
//	GinJSON(c, gin.H{"curve": "secp256r1"})
//	// 输出: {"code":200, "msg":"success", "data":{"curve":"secp256r1"}}
func GinJSON(c *gin.Context, data any) {
	if c == nil {
		return
	}

	c.JSON(http.StatusOK, Success(data))
}

// GinError 按错误的状态码写入失败响应并中止后续处理
//
// 错误经 errors.FromError 转换, 已注册的哨兵错误 (例如 ecc.ErrPointNotOnCurve)
// 映射到对应的状态码与 reason, 未知错误为 500。HTTP 状态码与业务码一致。
//
// 示例：
//
//	GinError(c, ecc.ErrHashLengthMismatch)
//	// HTTP 400 {"code":400, "reason":"HASH_LENGTH_MISMATCH", "msg":"ecc: hash length mismatch"}
func GinError(c *gin.Context, err error) {
	if c == nil {
		return
	}

	// 5xx 的原始错误挂到 c.Errors, 供访问日志输出
	if err != nil && errors.IsServer(err) {
		_ = c.Error(err)
	}
	resp := Failure(err)
	c.AbortWithStatusJSON(httpStatus(resp.Code), resp)
}

// GinJSONE 写入带有自定义业务码的 JSON 响应
// HTTP 状态码固定为 200，业务码和消息根据参数决定
//
// data 参数支持多种类型：
//   - error: 自动提取错误消息与 reason
//   - string: 直接作为消息使用
//   - nil: 使用默认错误消息
//   - 其他类型: 作为 data 字段返回，消息为空
func GinJSONE(c *gin.Context, code int, data any) {
	if c == nil {
		return
	}

	resp := &Response[any]{Code: code}
	switch v := data.(type) {
	case error:
		e := errors.FromError(v)
		resp.Msg, resp.Reason, resp.Metadata = e.Message, e.Reason, e.Metadata
	case string:
		resp.Msg = v
	case nil:
		resp.Msg = defaultErrorMsg
	default:
		resp.Data = v
	}

	c.JSON(http.StatusOK, resp)
}

// Success 创建成功响应对象
func Success[T any](data T) *Response[T] {
	return &Response[T]{
		Code: successCode,
		Msg:  defaultSuccessMsg,
		Data: data,
	}
}

// Failure 由错误创建失败响应对象, nil 视为未知错误
func Failure(err error) *Response[any] {
	if err == nil {
		return &Response[any]{Code: errors.UnknownCode, Reason: errors.UnknownReason, Msg: defaultErrorMsg}
	}

	e := errors.FromError(err)
	return &Response[any]{
		Code:     e.Code,
		Reason:   e.Reason,
		Msg:      e.Message,
		Metadata: e.Metadata,
	}
}

// httpStatus 业务码不是合法的错误状态码时返回 500
func httpStatus(code int) int {
	if code >= 400 && code <= 599 {
		return code
	}
	return http.StatusInternalServerError
}
