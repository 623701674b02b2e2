package timesheet

import (
	"github.com/gin-gonic/gin"

	"timeclock/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	sheets := r.Group("/timesheets")
	sheets.Use(middleware.AuthMiddleware())
	{
		sheets.GET("", h.GetOwn)
	}
}
