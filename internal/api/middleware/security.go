package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders 安全响应头；接口只返回 JSON / 文件，CSP 一律拒绝外部资源
// hsts 仅在生产环境（HTTPS 反代之后）开启
func SecurityHeaders(hsts bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Cross-Origin-Resource-Policy", "same-site")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		if hsts {
			c.Header("Strict-Transport-Security", "max-age=15552000; includeSubDomains")
		}

		c.Next()
	}
}
