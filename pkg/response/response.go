package response

import (
	"net/http"
	"time"

	"vaatco/pkg/errors"
	"vaatco/pkg/pagination"

	"github.com/gin-gonic/gin"
)

// Response 统一返回格式
type Response struct {
	Status    bool        `json:"status"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
	Meta      *Meta       `json:"meta,omitempty"`
	Errors    interface{} `json:"errors,omitempty"`
}

// Meta 附加元数据
type Meta struct {
	Pagination *pagination.PageInfo `json:"pagination,omitempty"`
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ========== 基础返回方法 ==========

// Success 成功返回
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Status:    true,
		Message:   message,
		Data:      data,
		Timestamp: timestamp(),
	})
}

// Created 创建成功返回
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Status:    true,
		Message:   message,
		Data:      data,
		Timestamp: timestamp(),
	})
}

// Paginated 分页成功返回
func Paginated(c *gin.Context, message string, data interface{}, pageInfo *pagination.PageInfo) {
	c.JSON(http.StatusOK, Response{
		Status:    true,
		Message:   message,
		Data:      data,
		Timestamp: timestamp(),
		Meta:      &Meta{Pagination: pageInfo},
	})
}

// Error 通用错误返回
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Status:    false,
		Message:   message,
		Timestamp: timestamp(),
	})
}

// ========== HTTP错误快捷方法 ==========

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// ValidationError 字段级校验错误返回
func ValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, Response{
		Status:    false,
		Message:   "Validation failed",
		Timestamp: timestamp(),
		Errors:    fields,
	})
}

func TooManyRequests(c *gin.Context, message string) {
	Error(c, http.StatusTooManyRequests, message)
}

func ServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// HandleError 将领域错误映射为响应
func HandleError(c *gin.Context, err error) {
	appErr, ok := errors.As(err)
	if !ok {
		ServerError(c, "Internal server error")
		return
	}

	if appErr.Code == errors.CodeValidation && appErr.Fields != nil {
		ValidationError(c, appErr.Fields)
		return
	}

	Error(c, appErr.Status, appErr.Message)
}
