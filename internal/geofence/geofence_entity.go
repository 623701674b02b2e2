package geofence

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"timeclock/internal/geo"
)

type Geofence struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	Name         string         `gorm:"column:name;type:varchar(100);not null"`
	Latitude     float64        `gorm:"column:latitude;not null"`
	Longitude    float64        `gorm:"column:longitude;not null"`
	RadiusMeters float64        `gorm:"column:radius_meters;not null"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Geofence) TableName() string {
	return "geofences"
}

// Fence returns the geometric value the evaluator works with.
func (g Geofence) Fence() geo.Fence {
	return geo.Fence{
		Center:       geo.Point{Latitude: g.Latitude, Longitude: g.Longitude},
		RadiusMeters: g.RadiusMeters,
	}
}
