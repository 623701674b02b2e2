package geofence

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"timeclock/internal/geo"
	geofenceerrors "timeclock/internal/geofence/errors"
)

type fakeRepo struct {
	withTxFn             func(tx *sql.Tx) Repository
	createFn             func(ctx context.Context, g *Geofence) error
	findByIDAndCompanyFn func(ctx context.Context, companyID, id string) (*Geofence, error)
	findAllByCompanyFn   func(ctx context.Context, companyID string) ([]Geofence, error)
	updateFn             func(ctx context.Context, g *Geofence) error
	deleteFn             func(ctx context.Context, companyID, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository                  { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, g *Geofence) error { return f.createFn(ctx, g) }
func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Geofence, error) {
	return f.findByIDAndCompanyFn(ctx, companyID, id)
}
func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Geofence, error) {
	return f.findAllByCompanyFn(ctx, companyID)
}
func (f *fakeRepo) Update(ctx context.Context, g *Geofence) error { return f.updateFn(ctx, g) }
func (f *fakeRepo) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}

func floatPtr(v float64) *float64 { return &v }

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New().String()
	var saved Geofence
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, g *Geofence) error { saved = *g; return nil }

	svc := NewService(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), companyID, CreateGeofenceRequest{
		Name:         "Main Office",
		Latitude:     floatPtr(39.9187),
		Longitude:    floatPtr(-75.3876),
		RadiusMeters: floatPtr(150),
	})
	assert.NoError(t, err)
	assert.Equal(t, "Main Office", resp.Name)
	assert.Equal(t, 150.0, resp.RadiusMeters)
	assert.Equal(t, saved.ID.String(), resp.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_RejectsSmallRadius(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	svc := NewService(db, repo, nil)

	_, err := svc.Create(context.Background(), uuid.New().String(), CreateGeofenceRequest{
		Name:         "Too Small",
		Latitude:     floatPtr(39.9187),
		Longitude:    floatPtr(-75.3876),
		RadiusMeters: floatPtr(50),
	})
	assert.ErrorIs(t, err, geofenceerrors.ErrRadiusTooSmall)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_RejectsInvalidCenter(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, nil)

	_, err := svc.Create(context.Background(), uuid.New().String(), CreateGeofenceRequest{
		Name:         "Broken",
		Latitude:     floatPtr(120),
		Longitude:    floatPtr(-75.3876),
		RadiusMeters: floatPtr(150),
	})
	assert.ErrorIs(t, err, geo.ErrInvalidCoordinate)
}

func TestService_GetByID_CacheHit(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()

	companyID := uuid.New().String()
	fenceID := uuid.New()
	cached := Geofence{
		ID:           fenceID,
		CompanyID:    uuid.MustParse(companyID),
		Name:         "Cached Office",
		Latitude:     39.9187,
		Longitude:    -75.3876,
		RadiusMeters: 100,
	}
	raw, _ := json.Marshal(cached)
	redisMock.ExpectGet(cacheKey(companyID, fenceID.String())).SetVal(string(raw))

	repo := &fakeRepo{
		findByIDAndCompanyFn: func(ctx context.Context, cid, id string) (*Geofence, error) {
			t.Fatal("repository must not be hit on cache hit")
			return nil, nil
		},
	}

	svc := NewService(db, repo, rdb)

	resp, err := svc.GetByID(context.Background(), companyID, fenceID.String())
	assert.NoError(t, err)
	assert.Equal(t, "Cached Office", resp.Name)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findByIDAndCompanyFn: func(ctx context.Context, cid, id string) (*Geofence, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(db, repo, nil)

	_, err := svc.GetByID(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, geofenceerrors.ErrGeofenceNotFound)
}

func TestService_Evaluate(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New().String()
	fenceID := uuid.New()
	stored := &Geofence{
		ID:           fenceID,
		CompanyID:    uuid.MustParse(companyID),
		Name:         "Office",
		Latitude:     39.9187,
		Longitude:    -75.3876,
		RadiusMeters: 100,
	}

	repo := &fakeRepo{
		findByIDAndCompanyFn: func(ctx context.Context, cid, id string) (*Geofence, error) {
			return stored, nil
		},
	}

	svc := NewService(db, repo, nil)

	t.Run("center is inside at distance zero", func(t *testing.T) {
		resp, err := svc.Evaluate(context.Background(), companyID, fenceID.String(), EvaluateRequest{
			Latitude:  floatPtr(39.9187),
			Longitude: floatPtr(-75.3876),
		})
		assert.NoError(t, err)
		assert.True(t, resp.Inside)
		assert.Equal(t, 0.0, resp.DistanceMeters)
	})

	t.Run("far point is outside", func(t *testing.T) {
		resp, err := svc.Evaluate(context.Background(), companyID, fenceID.String(), EvaluateRequest{
			Latitude:  floatPtr(40.7128),
			Longitude: floatPtr(-74.0060),
		})
		assert.NoError(t, err)
		assert.False(t, resp.Inside)
		assert.Greater(t, resp.DistanceMeters, 100.0)
	})

	t.Run("invalid point rejected", func(t *testing.T) {
		_, err := svc.Evaluate(context.Background(), companyID, fenceID.String(), EvaluateRequest{
			Latitude:  floatPtr(-95),
			Longitude: floatPtr(-74.0060),
		})
		assert.ErrorIs(t, err, geo.ErrInvalidCoordinate)
	})
}

func TestMinRadiusMeters_Env(t *testing.T) {
	t.Setenv("GEOFENCE_MIN_RADIUS_M", "250")
	assert.Equal(t, 250.0, MinRadiusMeters())

	t.Setenv("GEOFENCE_MIN_RADIUS_M", "not-a-number")
	assert.Equal(t, float64(defaultMinRadiusMeters), MinRadiusMeters())

	t.Setenv("GEOFENCE_MIN_RADIUS_M", "")
	assert.Equal(t, float64(defaultMinRadiusMeters), MinRadiusMeters())
}
