package schedule

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"timeclock/internal/geo"
	scheduleerrors "timeclock/internal/schedule/errors"
)

// The ledger functions are pure: each builds the next event from its
// explicit inputs and a snapshot of prior history. They hold no state
// and never touch storage, so concurrent callers cannot interfere.
// Snapshot reads are best-effort; two writers racing on the same
// employee may interleave non-deterministically at the storage layer.

// NextClockIn builds a CLOCK_IN event. There is no precondition on
// prior state: consecutive clock-ins are permitted and each produces
// a distinct event.
func NextClockIn(companyID, employeeID uuid.UUID, geofenceID *uuid.UUID, at time.Time, loc *geo.Point) ScheduleEvent {
	e := ScheduleEvent{
		ID:         uuid.New(),
		CompanyID:  companyID,
		EmployeeID: employeeID,
		GeofenceID: geofenceID,
		EventKind:  EventClockIn,
		EventTime:  at.UTC(),
	}
	setLocation(&e, loc)
	return e
}

// NextClockOut builds a CLOCK_OUT event. DurationMinutes is derived
// from the most recent CLOCK_IN in history; when none exists the field
// stays nil and the event still succeeds. Elapsed time is floored to
// whole minutes, and a clock-out that precedes its clock-in clamps to
// zero rather than going negative.
func NextClockOut(companyID, employeeID uuid.UUID, geofenceID *uuid.UUID, at time.Time, loc *geo.Point, history []ScheduleEvent) ScheduleEvent {
	e := ScheduleEvent{
		ID:         uuid.New(),
		CompanyID:  companyID,
		EmployeeID: employeeID,
		GeofenceID: geofenceID,
		EventKind:  EventClockOut,
		EventTime:  at.UTC(),
	}
	setLocation(&e, loc)

	if in, ok := lastClockIn(history); ok {
		elapsed := at.Sub(in.EventTime)
		if elapsed < 0 {
			elapsed = 0
		}
		minutes := int(elapsed.Minutes())
		e.DurationMinutes = &minutes
	}

	return e
}

// NextExit builds an EXIT event. Location is mandatory. A supplied
// negative distance is rejected, never clamped; when no distance is
// supplied it is computed against the fence center.
func NextExit(companyID, employeeID uuid.UUID, geofenceID *uuid.UUID, at time.Time, loc geo.Point, fence geo.Fence, suppliedDistance *float64) (ScheduleEvent, error) {
	var distance float64
	if suppliedDistance != nil {
		if *suppliedDistance < 0 {
			return ScheduleEvent{}, scheduleerrors.ErrInvalidDistance
		}
		distance = *suppliedDistance
	} else {
		distance = geo.Distance(loc, fence.Center)
	}

	e := ScheduleEvent{
		ID:                    uuid.New(),
		CompanyID:             companyID,
		EmployeeID:            employeeID,
		GeofenceID:            geofenceID,
		EventKind:             EventExit,
		EventTime:             at.UTC(),
		Latitude:              &loc.Latitude,
		Longitude:             &loc.Longitude,
		DistanceFromGeofenceM: &distance,
	}
	return e, nil
}

// RecentSince filters history to events at or after since and returns
// them newest first. The result is a fresh slice; the input is not
// reordered.
func RecentSince(history []ScheduleEvent, since time.Time) []ScheduleEvent {
	recent := make([]ScheduleEvent, 0, len(history))
	for _, e := range history {
		if !e.EventTime.Before(since) {
			recent = append(recent, e)
		}
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].EventTime.After(recent[j].EventTime)
	})

	return recent
}

// lastClockIn returns the CLOCK_IN with the latest event time. History
// is expected in insertion order; on identical timestamps the later
// insertion wins.
func lastClockIn(history []ScheduleEvent) (ScheduleEvent, bool) {
	var (
		found bool
		last  ScheduleEvent
	)
	for _, e := range history {
		if e.EventKind != EventClockIn {
			continue
		}
		if !found || !e.EventTime.Before(last.EventTime) {
			last = e
			found = true
		}
	}
	return last, found
}

func setLocation(e *ScheduleEvent, loc *geo.Point) {
	if loc == nil {
		return
	}
	lat, lon := loc.Latitude, loc.Longitude
	e.Latitude = &lat
	e.Longitude = &lon
}
