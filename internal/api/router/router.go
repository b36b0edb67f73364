package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/beingharisali/accounts-software-backend/config"
	"github.com/beingharisali/accounts-software-backend/internal/api/handler"
	"github.com/beingharisali/accounts-software-backend/internal/api/middleware"
	"github.com/beingharisali/accounts-software-backend/internal/model"
	"github.com/beingharisali/accounts-software-backend/pkg/jwt"
	"github.com/beingharisali/accounts-software-backend/pkg/response"
)

// Deps 路由依赖；Checker / Limiter 为 nil 时对应功能降级关闭
type Deps struct {
	JWT     *jwt.Manager
	Checker middleware.TokenChecker
	Limiter middleware.RateLimiter
	Logger  *zap.Logger
}

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, deps Deps) *gin.Engine {
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.SecurityHeaders(cfg.App.IsProduction()))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitMB << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "time": time.Now().UTC().Format(time.RFC3339)})
	})

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, 10006, "Route not found: "+c.Request.Method+" "+c.Request.URL.Path)
	})

	api := r.Group(cfg.Server.BasePath)
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(deps.Limiter, cfg.RateLimit.Max, cfg.RateLimit.Window))
	}

	adminOnly := middleware.RoleAuth(model.RoleAdmin)
	adminOrManager := middleware.RoleAuth(model.RoleAdmin, model.RoleManager)

	// 认证模块（无需认证）
	auth := api.Group("/auth")
	{
		auth.POST("/register-admin", h.Auth.RegisterAdmin)
		auth.POST("/login", h.Auth.Login)
	}

	// 需要认证的路由
	authorized := api.Group("")
	authorized.Use(middleware.JWTAuth(deps.JWT, deps.Checker))
	{
		authorized.POST("/auth/logout", h.Auth.Logout)
		authorized.GET("/auth/me", h.Auth.Me)

		// 员工账号（仅管理员）
		authorized.POST("/auth/create-staff", adminOnly, h.User.CreateStaff)
		authorized.GET("/auth/users", adminOnly, h.User.ListStaff)
		authorized.DELETE("/auth/user/:id", adminOnly, h.User.DeleteStaff)

		// 学员记录
		students := authorized.Group("/students")
		{
			students.GET("/all", h.Student.List)
			students.GET("/stats", h.Report.DashboardStats)
			students.GET("/daily-report", h.Report.DailyReport)
			students.GET("/course-breakdown", h.Report.CourseBreakdown)
			students.GET("/export", adminOrManager, h.Export.ExportStudents)
			students.GET("/installments.ics", h.Export.InstallmentCalendar)
			students.GET("/:id", h.Student.Get)

			students.POST("/add", h.Student.Create)
			students.POST("/bulk-add", h.Student.BulkAdd)
			students.POST("/import", adminOrManager, h.Student.Import)
			students.PUT("/update/:id", h.Student.Update)
			students.DELETE("/delete/:id", adminOrManager, h.Student.Delete)
		}
	}

	return r
}
