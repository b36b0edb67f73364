package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/beingharisali/accounts-software-backend/pkg/response"
)

// 上下文键，由 JWTAuth 中间件写入
const (
	CtxUserID   = "user_id"
	CtxRole     = "role"
	CtxTokenJTI = "token_jti"
	CtxTokenExp = "token_exp"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	s := c.GetString(CtxUserID)
	if s == "" {
		response.Unauthorized(c, codeUnauthenticated, "Not authorized to access this route")
		return "", false
	}
	return s, true
}

// TokenMeta 当前 Token 的 JTI 与过期时间（登出时写入黑名单）
func TokenMeta(c *gin.Context) (string, time.Time) {
	return c.GetString(CtxTokenJTI), c.GetTime(CtxTokenExp)
}
