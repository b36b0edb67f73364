package errors

import (
	"errors"
	"fmt"
)

// Kind 业务错误类别，Handler 层据此映射 HTTP 状态码
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// AppError 带类别的业务错误
// Msg 面向调用方展示；Err 为底层原因，仅在非生产环境随响应返回
type AppError struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *AppError) Unwrap() error { return e.Err }

// Is 同类别的 AppError 视为相等，便于 errors.Is(err, ErrNotFound) 这类判断
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

// ── 类别哨兵（仅用于 errors.Is 比较）──

var (
	ErrValidation     = &AppError{Kind: KindValidation}
	ErrAuthentication = &AppError{Kind: KindAuthentication}
	ErrAuthorization  = &AppError{Kind: KindAuthorization}
	ErrNotFound       = &AppError{Kind: KindNotFound}
	ErrConflict       = &AppError{Kind: KindConflict}
	ErrInternal       = &AppError{Kind: KindInternal}
)

// ── 构造函数 ──

func Validation(format string, args ...any) *AppError {
	return &AppError{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func Authentication(msg string) *AppError {
	return &AppError{Kind: KindAuthentication, Msg: msg}
}

func Authorization(msg string) *AppError {
	return &AppError{Kind: KindAuthorization, Msg: msg}
}

func NotFound(format string, args ...any) *AppError {
	return &AppError{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *AppError {
	return &AppError{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// Internal 包装底层错误为 500 类错误
func Internal(msg string, err error) *AppError {
	return &AppError{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf 提取错误类别；非 AppError 一律视为内部错误
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Message 提取面向调用方的错误信息
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Msg != "" {
		return appErr.Msg
	}
	return "Something went wrong, try again later"
}
