package geofenceerrors

import (
	"net/http"

	"timeclock/internal/shared/apperror"
)

var (
	ErrGeofenceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Geofence not found",
		http.StatusNotFound,
	)

	ErrGeofenceAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Geofence with the same name already exists in this company",
		http.StatusConflict,
	)

	ErrRadiusTooSmall = apperror.New(
		apperror.CodeInvalidInput,
		"Radius is below the configured minimum",
		http.StatusBadRequest,
	)

	ErrInvalidGeofenceID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid geofence ID",
		http.StatusBadRequest,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
)
