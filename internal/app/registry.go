package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"timeclock/internal/geofence"
	"timeclock/internal/messaging/kafka"
	"timeclock/internal/middleware"
	"timeclock/internal/schedule"
	"timeclock/internal/timesheet"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	geofenceRepo := geofence.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)
	timesheetRepo := timesheet.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	geofenceService := geofence.NewService(db, geofenceRepo, rdb)
	scheduleService := schedule.NewServiceWithOutbox(db, scheduleRepo, geofenceService, outboxRepo)
	timesheetService := timesheet.NewService(timesheetRepo)

	// --- Handlers ---
	geofenceHandler := geofence.NewHandler(geofenceService)
	scheduleHandler := schedule.NewHandlerWithRedis(scheduleService, rdb)
	timesheetHandler := timesheet.NewHandler(timesheetService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitByIP(20, 40))
	{
		geofence.RegisterRoutes(api, geofenceHandler)
		schedule.RegisterRoutes(api, scheduleHandler, rdb, zap.L())
		timesheet.RegisterRoutes(api, timesheetHandler)
	}

	return nil
}
