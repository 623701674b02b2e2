package schedule

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"timeclock/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client, logger *zap.Logger) {
	events := r.Group("/schedule")
	events.Use(middleware.AuthMiddleware())
	events.Use(middleware.ContextLogger(logger))
	{
		events.GET("/recent", h.ListRecent)

		events.POST("/clock-in",
			middleware.RateLimitByEmployee(1, 5),
			middleware.Idempotency(rdb),
			h.ClockIn,
		)
		events.POST("/clock-out",
			middleware.RateLimitByEmployee(1, 5),
			middleware.Idempotency(rdb),
			h.ClockOut,
		)
		events.POST("/exit",
			middleware.RateLimitByEmployee(1, 5),
			middleware.Idempotency(rdb),
			h.Exit,
		)
	}
}
