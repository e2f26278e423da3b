package httptransport

import (
	"net/http"
	"time"

	gincors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"courrier/backend/internal/config"
	"courrier/backend/internal/health"
	"courrier/backend/internal/middleware"
	"courrier/backend/internal/monitoring"
	"courrier/backend/internal/service"
	"courrier/backend/internal/storage"
	"courrier/backend/internal/websocket"
)

// RouterDependencies 路由器依赖项
type RouterDependencies struct {
	Config        *config.Config
	IntakeService *service.IntakeService
	MailService   *service.MailService
	ViewService   *service.ViewService
	Store         storage.Store
	WebSocketHub  *websocket.Hub
	Metrics       *monitoring.Metrics
	HealthChecker *health.HealthChecker
	Logger        *zap.Logger
}

// NewRouter 创建并返回 Gin 路由实例。
func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()

	// 使用自定义中间件替代默认中间件
	router.Use(middleware.RecoveryHandler(deps.Metrics, deps.Logger))
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.HTTPMetrics(deps.Metrics))

	// 请求体大小限制与上传上限对齐
	router.Use(middleware.BodySizeLimit(deps.Config.Intake.MaxUploadBytes))

	// CORS 配置
	corsConfig := gincors.Config{
		AllowOrigins:     deps.Config.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	// 如果允许所有来源，则需清空凭证支持。
	for _, origin := range corsConfig.AllowOrigins {
		if origin == "*" {
			corsConfig.AllowCredentials = false
			break
		}
	}
	router.Use(gincors.New(corsConfig))

	intakeHandler := NewIntakeHandler(deps.IntakeService, deps.Metrics, deps.Logger)
	mailHandler := NewMailHandler(deps.MailService, deps.ViewService, deps.Store, deps.WebSocketHub, deps.Metrics, deps.Logger)

	// 扫描接口按 IP 限流
	scanRateLimit := middleware.ScanRateLimit(deps.Config.Intake.ScansPerMinute, deps.Logger)

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/health/live", gin.WrapF(deps.HealthChecker.LiveHandler()))
	router.GET("/health/ready", gin.WrapF(deps.HealthChecker.ReadyHandler()))

	// Prometheus 指标
	router.GET("/metrics", gin.WrapH(deps.Metrics.HTTPHandler()))

	// V1 API
	v1 := router.Group("/v1")
	{
		// ========== Intake Routes ==========
		intakeRoutes := v1.Group("/intake")
		{
			intakeRoutes.POST("/scan", scanRateLimit, intakeHandler.Scan)
		}

		// ========== Mail Routes ==========
		mailRoutes := v1.Group("/mails")
		{
			mailRoutes.POST("", mailHandler.Commit)
			mailRoutes.GET("", mailHandler.List)
			mailRoutes.GET("/:id", mailHandler.Get)
		}

		// ========== Stats Routes ==========
		v1.GET("/stats", mailHandler.Stats)

		// ========== WebSocket Routes ==========
		v1.GET("/ws", deps.WebSocketHub.HandleConnection)
	}

	return router
}
