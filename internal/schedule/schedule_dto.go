package schedule

type ClockInRequest struct {
	GeofenceID *string  `json:"geofence_id"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

type ClockOutRequest struct {
	GeofenceID *string  `json:"geofence_id"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

type ExitRequest struct {
	GeofenceID                 string   `json:"geofence_id" binding:"required"`
	Latitude                   *float64 `json:"latitude" binding:"required"`
	Longitude                  *float64 `json:"longitude" binding:"required"`
	DistanceFromGeofenceMeters *float64 `json:"distance_from_geofence_meters"`
}

type ScheduleEventResponse struct {
	ID                         string   `json:"id"`
	CompanyID                  string   `json:"company_id"`
	EmployeeID                 string   `json:"employee_id"`
	GeofenceID                 *string  `json:"geofence_id,omitempty"`
	EventKind                  string   `json:"event_kind"`
	EventTime                  string   `json:"event_time"`
	Latitude                   *float64 `json:"latitude,omitempty"`
	Longitude                  *float64 `json:"longitude,omitempty"`
	DurationMinutes            *int     `json:"duration_minutes,omitempty"`
	DistanceFromGeofenceMeters *float64 `json:"distance_from_geofence_meters,omitempty"`
}
