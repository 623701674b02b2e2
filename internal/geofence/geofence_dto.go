package geofence

// Coordinate and radius fields are pointers so that binding can tell a
// missing field from a legitimate zero value (the equator and the prime
// meridian are valid coordinates).
type CreateGeofenceRequest struct {
	Name         string   `json:"name" binding:"required"`
	Latitude     *float64 `json:"latitude" binding:"required"`
	Longitude    *float64 `json:"longitude" binding:"required"`
	RadiusMeters *float64 `json:"radius_meters" binding:"required"`
}

type UpdateGeofenceRequest struct {
	Name         string   `json:"name" binding:"required"`
	Latitude     *float64 `json:"latitude" binding:"required"`
	Longitude    *float64 `json:"longitude" binding:"required"`
	RadiusMeters *float64 `json:"radius_meters" binding:"required"`
}

type EvaluateRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

type GeofenceResponse struct {
	ID           string  `json:"id"`
	CompanyID    string  `json:"company_id"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
}

type EvaluateResponse struct {
	GeofenceID     string  `json:"geofence_id"`
	Inside         bool    `json:"inside"`
	DistanceMeters float64 `json:"distance_meters"`
}
