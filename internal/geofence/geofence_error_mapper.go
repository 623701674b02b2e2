package geofence

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	geofenceerrors "timeclock/internal/geofence/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return geofenceerrors.ErrGeofenceNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_geofence_company_name" {
			return geofenceerrors.ErrGeofenceAlreadyExists
		}
	}

	// gorm wraps driver errors in plain strings for some dialects
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_geofence_company_name") {
		return geofenceerrors.ErrGeofenceAlreadyExists
	}

	return err
}
