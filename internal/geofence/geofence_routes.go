package geofence

import (
	"github.com/gin-gonic/gin"

	"timeclock/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	fences := r.Group("/geofences")
	fences.Use(middleware.AuthMiddleware())
	{
		fences.GET("", h.GetAll)
		fences.GET("/:id", h.GetByID)
		fences.POST("/:id/evaluate", h.Evaluate)

		// Provisioning is an administrative concern.
		admin := fences.Group("")
		admin.Use(middleware.RoleMiddleware("SUPER_ADMIN", "ADMIN", "HR"))
		{
			admin.POST("", h.Create)
			admin.PUT("/:id", h.Update)
			admin.DELETE("/:id", h.Delete)
		}
	}
}
