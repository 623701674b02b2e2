package schedule

import (
	"time"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventClockIn  EventKind = "CLOCK_IN"
	EventClockOut EventKind = "CLOCK_OUT"
	EventExit     EventKind = "EXIT"
)

// ScheduleEvent is one row of the append-only event ledger. Rows are
// created exactly once and never updated or deleted.
type ScheduleEvent struct {
	ID                    uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID             uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID            uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index"`
	GeofenceID            *uuid.UUID `gorm:"column:geofence_id;type:uuid;index"`
	EventKind             EventKind  `gorm:"column:event_kind;type:varchar(20);not null"`
	EventTime             time.Time  `gorm:"column:event_time;type:timestamptz;not null;index"`
	Latitude              *float64   `gorm:"column:latitude"`
	Longitude             *float64   `gorm:"column:longitude"`
	DurationMinutes       *int       `gorm:"column:duration_minutes"`
	DistanceFromGeofenceM *float64   `gorm:"column:distance_from_geofence_m"`
	CreatedAt             time.Time  `gorm:"column:created_at"`
}

func (ScheduleEvent) TableName() string {
	return "schedule_events"
}
