package errors

import (
	"errors"
	"net/http"
)

// Kind 业务错误分类
type Kind uint8

const (
	KindUnknown Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindStore
)

// Error 带分类的应用错误
// Message 面向用户；Details 为可选的底层信息（如存储层报错）
type Error struct {
	Kind    Kind
	Message string
	Details string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New 创建不带底层错误的应用错误，适合作为包级哨兵值
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap 包装底层错误，Details 取底层错误文本
func Wrap(kind Kind, message string, err error) *Error {
	e := &Error{Kind: kind, Message: message, Err: err}
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

// Validation 校验错误快捷方式
func Validation(message string) *Error { return New(KindValidation, message) }

// Store 存储层错误快捷方式
func Store(message string, err error) *Error { return Wrap(KindStore, message, err) }

// KindOf 返回错误链上第一个应用错误的分类
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// As 提取错误链上的应用错误
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// HTTPStatus 分类到 HTTP 状态码的映射
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
