package schedule

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"timeclock/internal/geo"
	scheduleerrors "timeclock/internal/schedule/errors"
)

type fakeRepo struct {
	withTxFn            func(tx *sql.Tx) Repository
	createFn            func(ctx context.Context, e *ScheduleEvent) error
	findAllByEmployeeFn func(ctx context.Context, companyID, employeeID string) ([]ScheduleEvent, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, e *ScheduleEvent) error {
	return f.createFn(ctx, e)
}
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]ScheduleEvent, error) {
	return f.findAllByEmployeeFn(ctx, companyID, employeeID)
}

type fakeFences struct {
	fence geo.Fence
	err   error
}

func (f *fakeFences) FenceByID(ctx context.Context, companyID, geofenceID string) (geo.Fence, error) {
	return f.fence, f.err
}

func newLedgerRepo() (*fakeRepo, *[]ScheduleEvent) {
	ledger := &[]ScheduleEvent{}
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, e *ScheduleEvent) error {
		*ledger = append(*ledger, *e)
		return nil
	}
	repo.findAllByEmployeeFn = func(ctx context.Context, companyID, employeeID string) ([]ScheduleEvent, error) {
		return *ledger, nil
	}
	return repo, ledger
}

func TestService_ClockInThenClockOut(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	ctx := context.Background()

	repo, ledger := newLedgerRepo()
	svc := NewService(db, repo, &fakeFences{}).(*service)

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	mock.ExpectBegin()
	mock.ExpectCommit()
	inResp, err := svc.ClockIn(ctx, companyID, employeeID, ClockInRequest{})
	assert.NoError(t, err)
	assert.Equal(t, "CLOCK_IN", inResp.EventKind)
	assert.Nil(t, inResp.DurationMinutes)

	svc.now = func() time.Time { return start.Add(90 * time.Minute) }

	mock.ExpectBegin()
	mock.ExpectCommit()
	outResp, err := svc.ClockOut(ctx, companyID, employeeID, ClockOutRequest{})
	assert.NoError(t, err)
	assert.Equal(t, "CLOCK_OUT", outResp.EventKind)
	assert.NotNil(t, outResp.DurationMinutes)
	assert.Equal(t, 90, *outResp.DurationMinutes)

	assert.Len(t, *ledger, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ClockOutWithoutPriorClockIn(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo, _ := newLedgerRepo()
	svc := NewService(db, repo, &fakeFences{})

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.ClockOut(context.Background(), uuid.New().String(), uuid.New().String(), ClockOutRequest{})
	assert.NoError(t, err)
	assert.Nil(t, resp.DurationMinutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ClockIn_RejectsInvalidCoordinates(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo, _ := newLedgerRepo()
	svc := NewService(db, repo, &fakeFences{})

	lat, lon := 95.0, 10.0
	_, err := svc.ClockIn(context.Background(), uuid.New().String(), uuid.New().String(), ClockInRequest{
		Latitude:  &lat,
		Longitude: &lon,
	})
	assert.ErrorIs(t, err, geo.ErrInvalidCoordinate)

	// No transaction was opened for the rejected request.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ClockIn_RejectsIncompleteLocation(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo, _ := newLedgerRepo()
	svc := NewService(db, repo, &fakeFences{})

	lat := 39.9187
	_, err := svc.ClockIn(context.Background(), uuid.New().String(), uuid.New().String(), ClockInRequest{
		Latitude: &lat,
	})
	assert.ErrorIs(t, err, scheduleerrors.ErrIncompleteLocation)
}

func TestService_Exit_RejectsNegativeDistance(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo, _ := newLedgerRepo()
	center := geo.Point{Latitude: 39.9187, Longitude: -75.3876}
	svc := NewService(db, repo, &fakeFences{fence: geo.Fence{Center: center, RadiusMeters: 100}})

	lat, lon := 39.9200, -75.3876
	negative := -10.0
	_, err := svc.Exit(context.Background(), uuid.New().String(), uuid.New().String(), ExitRequest{
		GeofenceID:                 uuid.New().String(),
		Latitude:                   &lat,
		Longitude:                  &lon,
		DistanceFromGeofenceMeters: &negative,
	})
	assert.ErrorIs(t, err, scheduleerrors.ErrInvalidDistance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Exit_ComputesDistanceFromFence(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo, ledger := newLedgerRepo()
	center := geo.Point{Latitude: 39.9187, Longitude: -75.3876}
	svc := NewService(db, repo, &fakeFences{fence: geo.Fence{Center: center, RadiusMeters: 100}})

	lat, lon := 39.9300, -75.3876
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Exit(context.Background(), uuid.New().String(), uuid.New().String(), ExitRequest{
		GeofenceID: uuid.New().String(),
		Latitude:   &lat,
		Longitude:  &lon,
	})
	assert.NoError(t, err)
	assert.Equal(t, "EXIT", resp.EventKind)
	assert.NotNil(t, resp.DistanceFromGeofenceMeters)
	assert.InDelta(t, geo.Distance(geo.Point{Latitude: lat, Longitude: lon}, center), *resp.DistanceFromGeofenceMeters, 1e-9)

	assert.Len(t, *ledger, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Exit_RequiresLocation(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo, _ := newLedgerRepo()
	svc := NewService(db, repo, &fakeFences{})

	_, err := svc.Exit(context.Background(), uuid.New().String(), uuid.New().String(), ExitRequest{
		GeofenceID: uuid.New().String(),
	})
	assert.ErrorIs(t, err, scheduleerrors.ErrMissingLocation)
}

func TestService_ListRecent_AppliesWindowAndOrder(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New()
	employeeID := uuid.New()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	history := []ScheduleEvent{
		NextClockIn(companyID, employeeID, nil, now.Add(-10*24*time.Hour), nil),
		NextClockIn(companyID, employeeID, nil, now.Add(-2*24*time.Hour), nil),
		NextClockIn(companyID, employeeID, nil, now.Add(-time.Hour), nil),
	}

	repo := &fakeRepo{
		findAllByEmployeeFn: func(ctx context.Context, cid, eid string) ([]ScheduleEvent, error) {
			assert.Equal(t, companyID.String(), cid)
			assert.Equal(t, employeeID.String(), eid)
			return history, nil
		},
	}

	svc := NewService(db, repo, &fakeFences{}).(*service)
	svc.now = func() time.Time { return now }

	resp, err := svc.ListRecent(context.Background(), companyID.String(), employeeID.String())
	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, history[2].ID.String(), resp[0].ID)
	assert.Equal(t, history[1].ID.String(), resp[1].ID)
}

func TestService_InvalidIdentity(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo, _ := newLedgerRepo()
	svc := NewService(db, repo, &fakeFences{})

	_, err := svc.ClockIn(context.Background(), "not-a-uuid", uuid.New().String(), ClockInRequest{})
	assert.ErrorIs(t, err, scheduleerrors.ErrInvalidCompanyID)

	_, err = svc.ClockIn(context.Background(), uuid.New().String(), "not-a-uuid", ClockInRequest{})
	assert.ErrorIs(t, err, scheduleerrors.ErrInvalidEmployeeID)
}
