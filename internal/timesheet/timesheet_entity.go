package timesheet

import (
	"time"

	"github.com/google/uuid"
)

// TimesheetDay accumulates the clock-out durations of one employee on
// one calendar day (UTC). Rows are maintained by the schedule-event
// consumer, not by request handlers.
type TimesheetDay struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID   uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index"`
	WorkDate     time.Time `gorm:"column:work_date;type:date;not null"`
	TotalMinutes int       `gorm:"column:total_minutes;not null;default:0"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (TimesheetDay) TableName() string {
	return "timesheet_days"
}
