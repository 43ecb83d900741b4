package errors

import (
	"errors"
	"fmt"
	"maps"
	"strconv"
	"strings"
	"sync"
)

const (
	UnknownCode       = 500
	UnknownReason     = "UNKNOWN"
	MetadataSeparator = ", "
	MetadataPrefix    = "metadata={"
	MetadataSuffix    = "}"
	CausePrefix       = "cause="
)

// Status is the wire form of an error: HTTP status code, machine readable
// reason, human readable message and metadata.
type Status struct {
	Code     int               `json:"code,omitempty"`
	Reason   string            `json:"reason,omitempty"`
	Message  string            `json:"message,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Error is a structured error carrying a Status and an optional cause.
type Error struct {
	Status
	cause error
}

func (e *Error) Error() string {
	var msg strings.Builder

	msg.WriteString("code=")
	msg.WriteString(strconv.Itoa(e.Code))
	if e.Reason != "" {
		msg.WriteString(MetadataSeparator)
		msg.WriteString("reason=")
		msg.WriteString(e.Reason)
	}
	msg.WriteString(MetadataSeparator)
	msg.WriteString("message=")
	msg.WriteString(e.Message)

	if len(e.Metadata) > 0 {
		msg.WriteString(MetadataSeparator)
		msg.WriteString(MetadataPrefix)
		first := true
		for k, v := range e.Metadata {
			if !first {
				msg.WriteString(", ")
			}
			msg.WriteString(k)
			msg.WriteByte('=')
			msg.WriteString(v)
			first = false
		}
		msg.WriteString(MetadataSuffix)
	}

	if e.cause != nil {
		msg.WriteString(MetadataSeparator)
		msg.WriteString(CausePrefix)
		msg.WriteString(e.cause.Error())
	}

	return msg.String()
}

// Unwrap returns the cause of the error
func (e *Error) Unwrap() error {
	return e.cause
}

// WithMetadata returns a copy of e with m merged into its metadata.
func (e *Error) WithMetadata(m map[string]string) *Error {
	if len(m) == 0 {
		return e
	}

	err := e.clone()
	if err.Metadata == nil {
		err.Metadata = make(map[string]string, len(m))
	}

	maps.Copy(err.Metadata, m)
	return err
}

// WithCause returns a copy of e wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	if cause == nil {
		return e
	}

	err := e.clone()
	err.cause = cause
	return err
}

// WithReason returns a copy of e with the given reason.
func (e *Error) WithReason(reason string) *Error {
	err := e.clone()
	err.Reason = reason
	return err
}

func (e *Error) clone() *Error {
	var metadata map[string]string
	if len(e.Metadata) > 0 {
		metadata = make(map[string]string, len(e.Metadata))
		maps.Copy(metadata, e.Metadata)
	}

	return &Error{
		Status: Status{
			Code:     e.Code,
			Reason:   e.Reason,
			Message:  e.Message,
			Metadata: metadata,
		},
		cause: e.cause,
	}
}

// Is reports whether err is an *Error with the same code and reason. Errors
// without a reason compare by message instead.
func (e *Error) Is(err error) bool {
	var ge *Error
	if !errors.As(err, &ge) || e.Code != ge.Code {
		return false
	}
	if e.Reason != "" || ge.Reason != "" {
		return e.Reason == ge.Reason
	}
	return e.Message == ge.Message
}

func (e *Error) GetCode() int {
	return e.Code
}

func (e *Error) GetReason() string {
	return e.Reason
}

func (e *Error) GetMessage() string {
	return e.Message
}

// GetMetadata returns a copy of the metadata
func (e *Error) GetMetadata() map[string]string {
	if len(e.Metadata) == 0 {
		return nil
	}

	result := make(map[string]string, len(e.Metadata))
	maps.Copy(result, e.Metadata)
	return result
}

func (e *Error) GetCause() error {
	return e.cause
}

// New creates a new error with the given code and formatted message
func New(code int, format string, args ...any) *Error {
	var message string
	if len(args) == 0 {
		message = format
	} else {
		message = fmt.Sprintf(format, args...)
	}

	return &Error{
		Status: Status{
			Code:    code,
			Message: message,
		},
	}
}

// NewWithMetadata creates a new error with metadata
func NewWithMetadata(code int, metadata map[string]string, format string, args ...any) *Error {
	err := New(code, format, args...)
	if len(metadata) > 0 {
		err.Metadata = make(map[string]string, len(metadata))
		maps.Copy(err.Metadata, metadata)
	}
	return err
}

// mapping 记录哨兵错误到状态码和 reason 的映射
type mapping struct {
	target error
	code   int
	reason string
}

var (
	mu       sync.RWMutex
	mappings []mapping
)

// Register maps a sentinel error onto a status code and reason. FromError
// consults the mappings in registration order, so register the most
// specific sentinels first.
func Register(target error, code int, reason string) {
	mu.Lock()
	defer mu.Unlock()
	mappings = append(mappings, mapping{target: target, code: code, reason: reason})
}

// FromError converts a generic error to *Error. An *Error anywhere in the
// chain is returned as is; otherwise the first registered sentinel the
// chain matches decides the code and reason, with the original error kept
// as the cause.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	if ge, ok := err.(*Error); ok {
		return ge
	}
	var ge *Error
	if errors.As(err, &ge) {
		return ge
	}

	mu.RLock()
	defer mu.RUnlock()
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return &Error{
				Status: Status{Code: m.code, Reason: m.reason, Message: err.Error()},
				cause:  err,
			}
		}
	}

	return &Error{
		Status: Status{Code: UnknownCode, Reason: UnknownReason, Message: err.Error()},
		cause:  err,
	}
}

// Code returns the status code FromError would assign, or 200 for nil.
func Code(err error) int {
	if err == nil {
		return 200
	}
	return FromError(err).Code
}

// Reason returns the reason FromError would assign, or "" for nil.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	return FromError(err).Reason
}

// Wrap wraps an error with additional context while preserving the chain.
// Returns nil if the input error is nil
func Wrap(err error, code int, format string, args ...any) *Error {
	if err == nil {
		return nil
	}

	return New(code, format, args...).WithCause(err)
}

// WrapWithMetadata wraps an error with metadata and additional context.
// Returns nil if the input error is nil
func WrapWithMetadata(err error, code int, metadata map[string]string, format string, args ...any) *Error {
	if err == nil {
		return nil
	}

	return NewWithMetadata(code, metadata, format, args...).WithCause(err)
}
