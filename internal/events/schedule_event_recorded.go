package events

import "time"

const ScheduleEventTopic = "timeclock.schedule.event.v1"

type ScheduleEventRecorded struct {
	EventType       string    `json:"event_type"`
	EventID         string    `json:"event_id"`
	CompanyID       string    `json:"company_id"`
	EmployeeID      string    `json:"employee_id"`
	GeofenceID      *string   `json:"geofence_id,omitempty"`
	EventKind       string    `json:"event_kind"`
	EventTime       time.Time `json:"event_time"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
