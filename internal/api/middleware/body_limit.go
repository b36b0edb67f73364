package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/beingharisali/accounts-software-backend/pkg/response"
)

// BodyLimit 请求体大小限制
// 声明的 Content-Length 超限时直接返回 413；未声明长度的请求由 MaxBytesReader 截断，
// 读取超限后 Handler 的绑定会失败
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "Request body too large")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
