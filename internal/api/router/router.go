package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mohamamdsajadi/shift/config"
	"github.com/mohamamdsajadi/shift/internal/api/handler"
	"github.com/mohamamdsajadi/shift/internal/api/middleware"
	"github.com/mohamamdsajadi/shift/pkg/jwt"
	"github.com/mohamamdsajadi/shift/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20)) // 1 MiB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/send-code", middleware.RateLimit(rdb, cfg.Auth.SendCodeLimit, cfg.Auth.SendCodeWindow), h.Auth.SendCode)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("/me", h.User.GetMe)
				users.PUT("/me", h.User.UpdateMe)
				users.PUT("/me/password", h.Auth.ChangePassword)
			}

			// 排班模块
			shifts := authorized.Group("/shifts")
			{
				shifts.GET("/current-month", h.Shift.CurrentMonth)
				shifts.GET("/next-month", h.Shift.NextMonth)
				shifts.POST("/flags", h.Shift.SetFlag)
			}

			// 改班申请模块
			editRequests := authorized.Group("/edit-requests")
			{
				editRequests.POST("", h.EditRequest.File)
				editRequests.GET("/mine", h.EditRequest.ListMine)
				editRequests.GET("/quota", h.EditRequest.Quota)
			}

			// 折扣申报模块
			discounts := authorized.Group("/discounts")
			{
				discounts.POST("", h.Discount.Declare)
				discounts.GET("/current", h.Discount.GetCurrent)
			}

			// 银行账户与上传文件
			authorized.POST("/bank-info", h.User.AddBankInfo)
			authorized.GET("/bank-info", h.User.ListBankInfo)
			authorized.POST("/documents", h.User.AddDocument)
			authorized.GET("/documents", h.User.ListDocuments)

			// 个人日历导出
			authorized.GET("/export/shifts.ics", h.Export.ShiftsICS)

			// 管理员模块
			admin := authorized.Group("/admin")
			admin.Use(middleware.RoleAuth("admin"))
			{
				admin.GET("/users", h.User.ListUsers)
				admin.PUT("/users/:id/confirm", h.User.ConfirmUser)
				admin.GET("/edit-requests", h.EditRequest.ListPending)
				admin.PUT("/edit-requests/:id/approve", h.EditRequest.Approve)
				admin.GET("/export/roster.xlsx", h.Export.RosterXLSX)
			}
		}
	}

	return r
}
