package calendar

import (
	"context"
	"errors"

	"family-calendar-backend/cmd/family-calendar/model"
)

// ErrMissingTime aborts a reschedule whose source timestamps have no
// time-of-day part; a malformed timestamp must never be written back.
var ErrMissingTime = errors.New("event timestamps have no time component")

// DateMover is the slice of the event store the reschedule protocol needs.
type DateMover interface {
	Get(id string) (model.Event, bool)
	UpdateDates(ctx context.Context, id, startAt, endAt string) error
}

// Reschedule moves the event with the given id to the target date
// (YYYY-MM-DD), keeping the original time-of-day of both endpoints so the
// event's duration is unchanged. A stale id is a silent no-op. Nothing but
// start_at/end_at changes; a pending event stays pending after the move.
func Reschedule(ctx context.Context, store DateMover, id, targetDate string) error {
	event, ok := store.Get(id)
	if !ok {
		return nil
	}

	startTime := model.TimePart(event.StartAt)
	endTime := model.TimePart(event.EndAt)
	if startTime == "" || endTime == "" {
		return ErrMissingTime
	}

	return store.UpdateDates(ctx, id,
		targetDate+"T"+startTime,
		targetDate+"T"+endTime,
	)
}
