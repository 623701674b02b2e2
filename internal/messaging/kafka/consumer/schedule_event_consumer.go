package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"timeclock/internal/events"
	"timeclock/internal/timesheet"
)

// ConsumeScheduleEvents folds recorded schedule events into the daily
// timesheet rollup. Malformed messages are committed and skipped;
// transient apply failures leave the message uncommitted for redelivery.
func ConsumeScheduleEvents(
	ctx context.Context,
	reader *kafkago.Reader,
	timesheetService timesheet.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.schedule_events")
	log.Info("schedule event consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("schedule event consumer stopped")
				return
			}
			log.Error("fetch schedule event message failed", zap.Error(err))
			continue
		}

		var event events.ScheduleEventRecorded
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode schedule event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := timesheetService.Apply(ctx, event); err != nil {
			log.Error("apply schedule event to timesheet failed",
				zap.String("event_id", event.EventID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit schedule event message failed", zap.Error(err))
			continue
		}

		if event.EventKind == "CLOCK_OUT" && event.DurationMinutes != nil {
			log.Info("timesheet updated from clock-out",
				zap.String("employee_id", event.EmployeeID),
				zap.Int("duration_minutes", *event.DurationMinutes),
			)
		}
	}
}
