package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"timeclock/internal/events"
	"timeclock/internal/geo"
	"timeclock/internal/messaging/kafka"
	scheduleerrors "timeclock/internal/schedule/errors"
	"timeclock/internal/shared/contextutil"
)

// recentWindow bounds the "recent events" listing.
const recentWindow = 7 * 24 * time.Hour

// FenceProvider resolves a geofence record into its geometric value.
// The geofence module satisfies this; the ledger only needs the shape.
type FenceProvider interface {
	FenceByID(ctx context.Context, companyID, geofenceID string) (geo.Fence, error)
}

//go:generate mockgen -source=schedule_service.go -destination=mock/schedule_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, companyID, employeeID string, req ClockInRequest) (ScheduleEventResponse, error)
	ClockOut(ctx context.Context, companyID, employeeID string, req ClockOutRequest) (ScheduleEventResponse, error)
	Exit(ctx context.Context, companyID, employeeID string, req ExitRequest) (ScheduleEventResponse, error)
	ListRecent(ctx context.Context, companyID, employeeID string) ([]ScheduleEventResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	fences FenceProvider
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, fences FenceProvider, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, fences, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	fences FenceProvider,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		db:     db,
		repo:   repo,
		fences: fences,
		outbox: outbox,
		now:    func() time.Time { return time.Now().UTC() },
		logger: l,
	}
}

func (s *service) ClockIn(ctx context.Context, companyID, employeeID string, req ClockInRequest) (ScheduleEventResponse, error) {
	ids, err := parseIdentity(companyID, employeeID)
	if err != nil {
		return ScheduleEventResponse{}, err
	}

	geofenceID, err := parseOptionalGeofenceID(req.GeofenceID)
	if err != nil {
		return ScheduleEventResponse{}, err
	}

	loc, err := optionalPoint(req.Latitude, req.Longitude)
	if err != nil {
		return ScheduleEventResponse{}, err
	}

	event := NextClockIn(ids.company, ids.employee, geofenceID, s.now(), loc)
	if err := s.append(ctx, &event); err != nil {
		return ScheduleEventResponse{}, err
	}
	return mapToResponse(event), nil
}

func (s *service) ClockOut(ctx context.Context, companyID, employeeID string, req ClockOutRequest) (ScheduleEventResponse, error) {
	ids, err := parseIdentity(companyID, employeeID)
	if err != nil {
		return ScheduleEventResponse{}, err
	}

	geofenceID, err := parseOptionalGeofenceID(req.GeofenceID)
	if err != nil {
		return ScheduleEventResponse{}, err
	}

	loc, err := optionalPoint(req.Latitude, req.Longitude)
	if err != nil {
		return ScheduleEventResponse{}, err
	}

	// Best-effort snapshot: a clock-in committed after this read is not
	// seen, and the duration reflects the history at read time.
	history, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return ScheduleEventResponse{}, err
	}

	event := NextClockOut(ids.company, ids.employee, geofenceID, s.now(), loc, history)
	if err := s.append(ctx, &event); err != nil {
		return ScheduleEventResponse{}, err
	}
	return mapToResponse(event), nil
}

func (s *service) Exit(ctx context.Context, companyID, employeeID string, req ExitRequest) (ScheduleEventResponse, error) {
	ids, err := parseIdentity(companyID, employeeID)
	if err != nil {
		return ScheduleEventResponse{}, err
	}

	fenceID, err := uuid.Parse(req.GeofenceID)
	if err != nil {
		return ScheduleEventResponse{}, scheduleerrors.ErrInvalidGeofenceID
	}

	if req.Latitude == nil || req.Longitude == nil {
		return ScheduleEventResponse{}, scheduleerrors.ErrMissingLocation
	}
	loc, err := geo.NewPoint(*req.Latitude, *req.Longitude)
	if err != nil {
		return ScheduleEventResponse{}, err
	}

	fence, err := s.fences.FenceByID(ctx, companyID, req.GeofenceID)
	if err != nil {
		return ScheduleEventResponse{}, err
	}

	event, err := NextExit(ids.company, ids.employee, &fenceID, s.now(), loc, fence, req.DistanceFromGeofenceMeters)
	if err != nil {
		return ScheduleEventResponse{}, err
	}
	if err := s.append(ctx, &event); err != nil {
		return ScheduleEventResponse{}, err
	}
	return mapToResponse(event), nil
}

func (s *service) ListRecent(ctx context.Context, companyID, employeeID string) ([]ScheduleEventResponse, error) {
	if _, err := parseIdentity(companyID, employeeID); err != nil {
		return nil, err
	}

	history, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}

	recent := RecentSince(history, s.now().Add(-recentWindow))

	res := make([]ScheduleEventResponse, len(recent))
	for i, e := range recent {
		res[i] = mapToResponse(e)
	}
	return res, nil
}

// append persists the event and, when an outbox is configured, records
// the publication in the same transaction.
func (s *service) append(ctx context.Context, event *ScheduleEvent) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, event); err != nil {
		return err
	}

	if s.outbox != nil {
		if err := s.enqueueRecorded(ctx, tx, *event); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	contextutil.GetLogger(ctx, s.logger).Debug("schedule event appended",
		zap.String("event_id", event.ID.String()),
		zap.String("event_kind", string(event.EventKind)),
	)
	return nil
}

func (s *service) enqueueRecorded(ctx context.Context, tx *sql.Tx, event ScheduleEvent) error {
	payload := events.ScheduleEventRecorded{
		EventType:       "schedule_event.recorded",
		EventID:         event.ID.String(),
		CompanyID:       event.CompanyID.String(),
		EmployeeID:      event.EmployeeID.String(),
		EventKind:       string(event.EventKind),
		EventTime:       event.EventTime,
		DurationMinutes: event.DurationMinutes,
		OccurredAt:      s.now(),
	}
	if event.GeofenceID != nil {
		id := event.GeofenceID.String()
		payload.GeofenceID = &id
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "schedule_event",
		AggregateID:   event.EmployeeID.String(),
		EventType:     payload.EventType,
		Topic:         events.ScheduleEventTopic,
		Payload:       body,
		Status:        kafka.OutboxStatusPending,
	})
}

type identity struct {
	company  uuid.UUID
	employee uuid.UUID
}

func parseIdentity(companyID, employeeID string) (identity, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return identity{}, scheduleerrors.ErrInvalidCompanyID
	}
	eid, err := uuid.Parse(employeeID)
	if err != nil {
		return identity{}, scheduleerrors.ErrInvalidEmployeeID
	}
	return identity{company: cid, employee: eid}, nil
}

func parseOptionalGeofenceID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, scheduleerrors.ErrInvalidGeofenceID
	}
	return &id, nil
}

// optionalPoint validates a nullable coordinate pair. Both fields must
// be present or both absent.
func optionalPoint(lat, lon *float64) (*geo.Point, error) {
	if lat == nil && lon == nil {
		return nil, nil
	}
	if lat == nil || lon == nil {
		return nil, scheduleerrors.ErrIncompleteLocation
	}
	p, err := geo.NewPoint(*lat, *lon)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func mapToResponse(e ScheduleEvent) ScheduleEventResponse {
	resp := ScheduleEventResponse{
		ID:                         e.ID.String(),
		CompanyID:                  e.CompanyID.String(),
		EmployeeID:                 e.EmployeeID.String(),
		EventKind:                  string(e.EventKind),
		EventTime:                  e.EventTime.Format(time.RFC3339),
		Latitude:                   e.Latitude,
		Longitude:                  e.Longitude,
		DurationMinutes:            e.DurationMinutes,
		DistanceFromGeofenceMeters: e.DistanceFromGeofenceM,
	}
	if e.GeofenceID != nil {
		id := e.GeofenceID.String()
		resp.GeofenceID = &id
	}
	return resp
}
