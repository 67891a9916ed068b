package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/unimatch/backend/config"
	"github.com/unimatch/backend/internal/infrastructure/metrics"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger, m *metrics.Metrics) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger, m))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	var limiter *IPRateLimiter
	if cfg.RateLimit.PerIP > 0 {
		limiter = NewIPRateLimiter(cfg.RateLimit.PerIP, cfg.RateLimit.Burst)
	}

	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(limiter))
	{
		v1.POST("/clients", handler.CreateClient)

		client := v1.Group("/clients/:clientId")
		{
			client.GET("/profile", handler.GetProfile)
			client.PUT("/profile", handler.ReplaceProfile)
			client.PATCH("/profile", handler.PatchProfile)
			client.DELETE("/profile", handler.ResetProfile)

			client.GET("/matches", handler.GetMatches)
			client.POST("/swipes", handler.Swipe)

			client.GET("/likes", handler.GetLikes)
			client.POST("/likes/:institutionId/toggle", handler.ToggleLike)
		}

		v1.GET("/institutions", handler.ListInstitutions)
		v1.GET("/institutions/:id", handler.GetInstitution)

		v1.POST("/matches", handler.ScoreProfile)
	}

	return router
}
