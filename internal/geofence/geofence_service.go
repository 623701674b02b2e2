package geofence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"timeclock/internal/geo"
	geofenceerrors "timeclock/internal/geofence/errors"
	"timeclock/internal/shared/contextutil"
)

const (
	defaultMinRadiusMeters = 100
	cacheTTL               = 5 * time.Minute
)

func cacheKey(companyID, id string) string {
	return fmt.Sprintf("geofences:%s:%s", companyID, id)
}

// MinRadiusMeters reads the configured lower bound for fence radii,
// falling back to 100 m when unset or unparsable.
func MinRadiusMeters() float64 {
	if raw := os.Getenv("GEOFENCE_MIN_RADIUS_M"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			return v
		}
	}
	return defaultMinRadiusMeters
}

//go:generate mockgen -source=geofence_service.go -destination=mock/geofence_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateGeofenceRequest) (GeofenceResponse, error)
	GetAll(ctx context.Context, companyID string) ([]GeofenceResponse, error)
	GetByID(ctx context.Context, companyID, id string) (GeofenceResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateGeofenceRequest) (GeofenceResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	Evaluate(ctx context.Context, companyID, id string, req EvaluateRequest) (EvaluateResponse, error)
	FenceByID(ctx context.Context, companyID, id string) (geo.Fence, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	rdb       *redis.Client
	minRadius float64
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		db:        db,
		repo:      repo,
		rdb:       rdb,
		minRadius: MinRadiusMeters(),
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateGeofenceRequest) (GeofenceResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return GeofenceResponse{}, geofenceerrors.ErrInvalidCompanyID
	}

	center, err := geo.NewPoint(*req.Latitude, *req.Longitude)
	if err != nil {
		return GeofenceResponse{}, err
	}
	if *req.RadiusMeters < s.minRadius {
		return GeofenceResponse{}, geofenceerrors.ErrRadiusTooSmall
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return GeofenceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	fence := &Geofence{
		ID:           uuid.New(),
		CompanyID:    cid,
		Name:         req.Name,
		Latitude:     center.Latitude,
		Longitude:    center.Longitude,
		RadiusMeters: *req.RadiusMeters,
	}

	if err := qtx.Create(ctx, fence); err != nil {
		return GeofenceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return GeofenceResponse{}, err
	}

	return mapToResponse(*fence), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]GeofenceResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]GeofenceResponse, len(rows))
	for i, g := range rows {
		res[i] = mapToResponse(g)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (GeofenceResponse, error) {
	g, err := s.findCached(ctx, companyID, id)
	if err != nil {
		return GeofenceResponse{}, err
	}
	return mapToResponse(*g), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateGeofenceRequest) (GeofenceResponse, error) {
	center, err := geo.NewPoint(*req.Latitude, *req.Longitude)
	if err != nil {
		return GeofenceResponse{}, err
	}
	if *req.RadiusMeters < s.minRadius {
		return GeofenceResponse{}, geofenceerrors.ErrRadiusTooSmall
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return GeofenceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	fence, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return GeofenceResponse{}, mapRepositoryError(err)
	}

	fence.Name = req.Name
	fence.Latitude = center.Latitude
	fence.Longitude = center.Longitude
	fence.RadiusMeters = *req.RadiusMeters

	if err := qtx.Update(ctx, fence); err != nil {
		return GeofenceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return GeofenceResponse{}, err
	}

	s.invalidate(ctx, companyID, id)
	return mapToResponse(*fence), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByIDAndCompany(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidate(ctx, companyID, id)
	return nil
}

func (s *service) Evaluate(ctx context.Context, companyID, id string, req EvaluateRequest) (EvaluateResponse, error) {
	point, err := geo.NewPoint(*req.Latitude, *req.Longitude)
	if err != nil {
		return EvaluateResponse{}, err
	}

	fence, err := s.FenceByID(ctx, companyID, id)
	if err != nil {
		return EvaluateResponse{}, err
	}

	return EvaluateResponse{
		GeofenceID:     id,
		Inside:         fence.Contains(point),
		DistanceMeters: geo.Distance(point, fence.Center),
	}, nil
}

// FenceByID satisfies the schedule module's FenceProvider.
func (s *service) FenceByID(ctx context.Context, companyID, id string) (geo.Fence, error) {
	g, err := s.findCached(ctx, companyID, id)
	if err != nil {
		return geo.Fence{}, err
	}
	return g.Fence(), nil
}

// findCached reads through the redis cache. Concurrent misses for the
// same fence are collapsed into one database query via singleflight.
func (s *service) findCached(ctx context.Context, companyID, id string) (*Geofence, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, geofenceerrors.ErrInvalidGeofenceID
	}

	key := cacheKey(companyID, id)

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var g Geofence
			if err := json.Unmarshal([]byte(raw), &g); err == nil {
				return &g, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		g, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		if s.rdb != nil {
			if raw, err := json.Marshal(g); err == nil {
				if err := s.rdb.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
					contextutil.GetLogger(ctx, s.logger).Warn("geofence cache set failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return g, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Geofence), nil
}

func (s *service) invalidate(ctx context.Context, companyID, id string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, cacheKey(companyID, id)).Err(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("geofence cache invalidation failed",
			zap.String("geofence_id", id),
			zap.Error(err),
		)
	}
}

func mapToResponse(g Geofence) GeofenceResponse {
	return GeofenceResponse{
		ID:           g.ID.String(),
		CompanyID:    g.CompanyID.String(),
		Name:         g.Name,
		Latitude:     g.Latitude,
		Longitude:    g.Longitude,
		RadiusMeters: g.RadiusMeters,
	}
}
