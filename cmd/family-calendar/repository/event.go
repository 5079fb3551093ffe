package repository

import (
	"context"
	"family-calendar-backend/cmd/family-calendar/model"

	"gorm.io/gorm"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) *EventRepo {
	return &EventRepo{
		db: db,
	}
}

func (r *EventRepo) ListEvents(ctx context.Context) ([]model.Event, error) {

	var events []model.Event

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Order("start_at asc").
		Find(&events)

	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (r *EventRepo) CreateEvent(ctx context.Context, event model.Event) error {

	result := r.db.
		WithContext(ctx).
		Create(&event)

	if result.Error != nil {
		return result.Error
	}

	return nil
}

// UpdateEvent patches a subset of columns on one row. The patch keys are
// column names; zero values in the patch are written as-is.
func (r *EventRepo) UpdateEvent(ctx context.Context, id string, patch map[string]any) error {

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Where("id = ?", id).
		Updates(patch)

	if result.Error != nil {
		return result.Error
	}

	return nil
}

func (r *EventRepo) DeleteEvent(ctx context.Context, id string) error {

	result := r.db.
		WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Event{})

	if result.Error != nil {
		return result.Error
	}

	return nil
}
