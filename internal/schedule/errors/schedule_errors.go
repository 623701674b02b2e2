package scheduleerrors

import (
	"net/http"

	"timeclock/internal/shared/apperror"
)

var (
	ErrInvalidDistance = apperror.New(
		apperror.CodeInvalidDistance,
		"Distance from geofence must not be negative",
		http.StatusBadRequest,
	)

	ErrMissingLocation = apperror.New(
		apperror.CodeInvalidInput,
		"Latitude and longitude are required for exit events",
		http.StatusBadRequest,
	)

	ErrIncompleteLocation = apperror.New(
		apperror.CodeInvalidInput,
		"Latitude and longitude must be provided together",
		http.StatusBadRequest,
	)

	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)

	ErrInvalidGeofenceID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid geofence ID",
		http.StatusBadRequest,
	)
)
