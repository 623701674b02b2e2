package timesheet

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"timeclock/internal/events"
)

type fakeRepo struct {
	added []addCall
	rows  []TimesheetDay
}

type addCall struct {
	companyID  uuid.UUID
	employeeID uuid.UUID
	workDate   time.Time
	minutes    int
}

func (f *fakeRepo) AddMinutes(ctx context.Context, companyID, employeeID uuid.UUID, workDate time.Time, minutes int) error {
	f.added = append(f.added, addCall{companyID, employeeID, workDate, minutes})
	return nil
}

func (f *fakeRepo) FindByEmployeeSince(ctx context.Context, companyID, employeeID string, since time.Time) ([]TimesheetDay, error) {
	return f.rows, nil
}

func TestService_Apply_ClockOutAccumulates(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	companyID := uuid.New()
	employeeID := uuid.New()
	minutes := 90
	eventTime := time.Date(2025, 3, 10, 17, 42, 0, 0, time.UTC)

	err := svc.Apply(context.Background(), events.ScheduleEventRecorded{
		EventType:       "schedule_event.recorded",
		EventID:         uuid.New().String(),
		CompanyID:       companyID.String(),
		EmployeeID:      employeeID.String(),
		EventKind:       "CLOCK_OUT",
		EventTime:       eventTime,
		DurationMinutes: &minutes,
	})
	assert.NoError(t, err)
	assert.Len(t, repo.added, 1)
	assert.Equal(t, companyID, repo.added[0].companyID)
	assert.Equal(t, 90, repo.added[0].minutes)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), repo.added[0].workDate)
}

func TestService_Apply_IgnoresNonClockOut(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	err := svc.Apply(context.Background(), events.ScheduleEventRecorded{
		CompanyID:  uuid.New().String(),
		EmployeeID: uuid.New().String(),
		EventKind:  "CLOCK_IN",
		EventTime:  time.Now().UTC(),
	})
	assert.NoError(t, err)
	assert.Empty(t, repo.added)
}

func TestService_Apply_IgnoresClockOutWithoutDuration(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	err := svc.Apply(context.Background(), events.ScheduleEventRecorded{
		CompanyID:  uuid.New().String(),
		EmployeeID: uuid.New().String(),
		EventKind:  "CLOCK_OUT",
		EventTime:  time.Now().UTC(),
	})
	assert.NoError(t, err)
	assert.Empty(t, repo.added)
}

func TestService_GetOwn(t *testing.T) {
	employeeID := uuid.New()
	repo := &fakeRepo{
		rows: []TimesheetDay{
			{
				ID:           uuid.New(),
				CompanyID:    uuid.New(),
				EmployeeID:   employeeID,
				WorkDate:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
				TotalMinutes: 480,
			},
		},
	}
	svc := NewService(repo)

	resp, err := svc.GetOwn(context.Background(), uuid.New().String(), employeeID.String())
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "2025-03-10", resp[0].WorkDate)
	assert.Equal(t, 480, resp[0].TotalMinutes)
}

func TestService_GetOwn_InvalidIdentity(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.GetOwn(context.Background(), "nope", uuid.New().String())
	assert.Error(t, err)
}
