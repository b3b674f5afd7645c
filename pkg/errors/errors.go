package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// ========== 错误码常量定义 ==========

// 领域错误码，处理器根据错误码决定响应形态
const (
	CodeValidation   = "VALIDATION_FAILED" // 参数校验失败 -> 422
	CodeNotFound     = "NOT_FOUND"         // 资源不存在 -> 404
	CodeUnauthorized = "UNAUTHORIZED"      // 凭证缺失或无效 -> 401
	CodeForbidden    = "FORBIDDEN"         // 已认证但无权限 -> 403
	CodeConflict     = "CONFLICT"          // 唯一字段冲突 -> 400
	CodeUpstream     = "UPSTREAM_STORAGE"  // 对象存储调用失败 -> 400
	CodeRateLimited  = "RATE_LIMITED"      // 请求过于频繁 -> 429
	CodeInternal     = "INTERNAL"          // 未处理错误 -> 500
)

// AppError 领域错误
type AppError struct {
	Code    string            // 稳定的错误码
	Status  int               // 对应HTTP状态码
	Message string            // 对外消息
	Fields  map[string]string // 字段级错误（仅校验错误使用）
}

func (e *AppError) Error() string {
	return e.Message
}

// ========== 构造函数 ==========

// NewValidation 字段级校验错误
func NewValidation(fields map[string]string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Fields:  fields,
	}
}

// NewNotFound 资源不存在
func NewNotFound(resource string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Status:  http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewUnauthorized 凭证缺失或无效
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Status:  http.StatusUnauthorized,
		Message: message,
	}
}

// NewForbidden 已认证但无权限
func NewForbidden(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Status:  http.StatusForbidden,
		Message: message,
	}
}

// NewConflict 唯一字段冲突，消息中标明字段和值
func NewConflict(field, value string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("%s '%s' already exists", field, value),
	}
}

// NewUpstream 对象存储调用失败
func NewUpstream(message string) *AppError {
	return &AppError{
		Code:    CodeUpstream,
		Status:  http.StatusBadRequest,
		Message: message,
	}
}

// NewBadRequest 通用请求错误
func NewBadRequest(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Status:  http.StatusBadRequest,
		Message: message,
	}
}

// NewInternal 内部错误，消息对外不暴露细节
func NewInternal() *AppError {
	return &AppError{
		Code:    CodeInternal,
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
	}
}

// ========== 错误判定与转换 ==========

// As 尝试取出AppError
func As(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// IsCode 判断错误是否携带指定错误码
func IsCode(err error, code string) bool {
	if appErr, ok := As(err); ok {
		return appErr.Code == code
	}
	return false
}

// From 将存储层错误形态映射为领域错误，调用方不感知存储细节
func From(err error, resource string) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := As(err); ok {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFound(resource)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return NewConflict("field", "value")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewUpstream("storage request timed out")
	}
	return NewInternal()
}
