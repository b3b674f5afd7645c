package handlers

import (
	"strconv"
	"strings"

	"vaatco/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindJSON 绑定并校验请求体。校验失败返回字段级422，
// 其他绑定失败返回400。返回false表示已写出响应。
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		fields := make(map[string]string, len(validationErrs))
		for _, fieldErr := range validationErrs {
			fields[strings.ToLower(fieldErr.Field())] = validationMessage(fieldErr)
		}
		response.ValidationError(c, fields)
		return false
	}

	response.BadRequest(c, "Invalid request body")
	return false
}

// validationMessage 将校验标签翻译为可读消息
func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "url":
		return "Must be a valid URL"
	case "min":
		return "Must be at least " + fieldErr.Param() + " characters"
	case "max":
		return "Must be at most " + fieldErr.Param() + " characters"
	case "oneof":
		return "Must be one of: " + fieldErr.Param()
	default:
		return "Invalid value"
	}
}

// parseID 解析路径中的数字ID。返回0表示已写出400响应。
func parseID(c *gin.Context) uint {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid ID")
		return 0
	}
	return uint(id)
}
