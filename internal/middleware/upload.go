package middleware

import (
	"net/http"
	"strings"

	"vaatco/pkg/response"

	"github.com/gin-gonic/gin"
)

// 上传限制
const (
	MaxUploadSize  = 10 << 20 // 单文件10MB
	MaxUploadCount = 10       // 单次请求最多10个文件
)

// 允许的图片MIME类型
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// ValidateUpload 校验multipart上传的文件数量、大小和类型
func ValidateUpload(field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize*MaxUploadCount)

		form, err := c.MultipartForm()
		if err != nil {
			response.BadRequest(c, "Invalid multipart form")
			c.Abort()
			return
		}

		files := form.File[field]
		if len(files) == 0 {
			response.BadRequest(c, "No files provided")
			c.Abort()
			return
		}
		if len(files) > MaxUploadCount {
			response.BadRequest(c, "Too many files in a single request")
			c.Abort()
			return
		}

		for _, file := range files {
			if file.Size > MaxUploadSize {
				response.BadRequest(c, "File exceeds maximum size of 10MB: "+file.Filename)
				c.Abort()
				return
			}
			contentType := strings.ToLower(file.Header.Get("Content-Type"))
			if !allowedImageTypes[contentType] {
				response.BadRequest(c, "Unsupported file type: "+file.Filename)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
