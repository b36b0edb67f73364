package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/beingharisali/accounts-software-backend/internal/model"
	"github.com/beingharisali/accounts-software-backend/pkg/jwt"
	"github.com/beingharisali/accounts-software-backend/pkg/response"
)

// TokenChecker 登出黑名单查询；为 nil 时不检查
type TokenChecker interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

const msgNotAuthorized = "Not authorized to access this route"

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证会话 Token
func JWTAuth(jwtMgr *jwt.Manager, checker TokenChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, msgNotAuthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			response.Unauthorized(c, 10002, msgNotAuthorized)
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Unauthorized(c, 10002, msgNotAuthorized)
			c.Abort()
			return
		}

		// 黑名单查询失败时降级放行
		if checker != nil && claims.ID != "" {
			if revoked, err := checker.IsBlacklisted(c.Request.Context(), claims.ID); err == nil && revoked {
				response.Unauthorized(c, 10002, "Token has been revoked")
				c.Abort()
				return
			}
		}

		// 将用户信息注入上下文
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("name", claims.Name)
		c.Set("token_jti", claims.ID)
		if claims.ExpiresAt != nil {
			c.Set("token_exp", claims.ExpiresAt.Time)
		} else {
			c.Set("token_exp", time.Time{})
		}

		c.Next()
	}
}

// RoleAuth 角色权限中间件
// 检查当前用户是否具有指定角色之一（大小写不敏感）
func RoleAuth(allowedRoles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Unauthorized(c, 10002, msgNotAuthorized)
			c.Abort()
			return
		}

		userRole, _ := model.ParseRole(role)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "User role "+userRole.Display()+" is not authorized to access this route")
		c.Abort()
	}
}
