package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/koshanqari/gl-app-checkin/config"
	"github.com/koshanqari/gl-app-checkin/internal/api/handler"
	"github.com/koshanqari/gl-app-checkin/internal/api/middleware"
	"github.com/koshanqari/gl-app-checkin/pkg/jwt"
	"github.com/koshanqari/gl-app-checkin/pkg/redis"
	"github.com/koshanqari/gl-app-checkin/pkg/validator"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时黑名单与限流降级放行
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	validator.RegisterGin()

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitKB << 10))

	// ── 健康检查 ──
	r.GET("/health", health(rdb))

	api := r.Group("/api")
	{
		// 签到记录
		checkIns := api.Group("/checkins")
		{
			checkIns.GET("", h.CheckIn.ListCheckIns)
			checkIns.POST("", h.CheckIn.CreateCheckIn)
			checkIns.GET("/:id", h.CheckIn.GetCheckIn)
			checkIns.PUT("/:id", h.CheckIn.UpdateCheckIn)
			checkIns.DELETE("/:id", h.CheckIn.DeleteCheckIn)
		}

		// 用户偏好
		prefs := api.Group("/user-preferences")
		{
			prefs.GET("", h.UserPreference.GetPreferences)
			prefs.POST("", h.UserPreference.SavePreferences)
		}

		// 公开签到表单（限流）
		public := api.Group("/public")
		{
			public.GET("/form", h.PublicForm.NewForm)
			public.POST("/form/counters/:name/:op", h.PublicForm.AdjustCounter)
			public.POST("/checkins",
				middleware.RateLimit(rdb, cfg.RateLimit.PublicFormLimit, cfg.RateLimit.PublicFormWindow),
				h.PublicForm.Submit,
			)
		}

		// 认证
		api.POST("/auth/login", h.Auth.Login)

		// 需要认证的路由
		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/session", h.Auth.Session)

			// 管理面板
			panel := authorized.Group("/panel")
			{
				panel.GET("/view", h.Panel.View)
				panel.PUT("/preferences", h.Panel.UpdatePreferences)
				panel.POST("/columns/:key/toggle", h.Panel.ToggleColumn)
				panel.POST("/reset", h.Panel.Reset)
				panel.PUT("/checkins/:id/present", h.Panel.SetPresent)

				panel.GET("/export/csv", h.Export.ExportCSV)
				panel.GET("/export/xlsx", h.Export.ExportXLSX)
			}
		}
	}

	return r
}

// health 返回服务状态；Redis 为可选依赖，不可用时仍返回 200
func health(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "disabled"
		if rdb != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			defer cancel()
			status = "ok"
			if err := rdb.Ping(ctx); err != nil {
				status = "unavailable"
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "redis": status})
	}
}
