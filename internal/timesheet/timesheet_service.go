package timesheet

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"timeclock/internal/events"
	"timeclock/internal/shared/apperror"
)

// historyWindow bounds the timesheet listing.
const historyWindow = 30 * 24 * time.Hour

var errInvalidIdentity = apperror.New(
	apperror.CodeInvalidInput,
	"Invalid company or employee ID",
	http.StatusBadRequest,
)

//go:generate mockgen -source=timesheet_service.go -destination=mock/timesheet_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, event events.ScheduleEventRecorded) error
	GetOwn(ctx context.Context, companyID, employeeID string) ([]TimesheetDayResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Apply folds one recorded schedule event into the daily rollup. Only
// clock-outs carrying a derived duration contribute; everything else
// is a no-op so the consumer can commit unconditionally.
func (s *service) Apply(ctx context.Context, event events.ScheduleEventRecorded) error {
	if event.EventKind != "CLOCK_OUT" || event.DurationMinutes == nil {
		return nil
	}

	companyID, err := uuid.Parse(event.CompanyID)
	if err != nil {
		return errInvalidIdentity
	}
	employeeID, err := uuid.Parse(event.EmployeeID)
	if err != nil {
		return errInvalidIdentity
	}

	workDate := event.EventTime.UTC().Truncate(24 * time.Hour)
	return s.repo.AddMinutes(ctx, companyID, employeeID, workDate, *event.DurationMinutes)
}

func (s *service) GetOwn(ctx context.Context, companyID, employeeID string) ([]TimesheetDayResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, errInvalidIdentity
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, errInvalidIdentity
	}

	since := time.Now().UTC().Add(-historyWindow)
	rows, err := s.repo.FindByEmployeeSince(ctx, companyID, employeeID, since)
	if err != nil {
		return nil, err
	}

	res := make([]TimesheetDayResponse, len(rows))
	for i, r := range rows {
		res[i] = TimesheetDayResponse{
			EmployeeID:   r.EmployeeID.String(),
			WorkDate:     r.WorkDate.Format("2006-01-02"),
			TotalMinutes: r.TotalMinutes,
		}
	}
	return res, nil
}
