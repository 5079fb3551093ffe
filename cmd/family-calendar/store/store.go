package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"family-calendar-backend/cmd/family-calendar/model"
)

// ErrNotFound reports a mutation against an id that is no longer in the
// collection, e.g. a stale drag reference.
var ErrNotFound = errors.New("event not found")

type EventRepo interface {
	ListEvents(ctx context.Context) ([]model.Event, error)
	CreateEvent(ctx context.Context, event model.Event) error
	UpdateEvent(ctx context.Context, id string, patch map[string]any) error
	DeleteEvent(ctx context.Context, id string) error
}

// Store owns the in-memory event collection and keeps it in sync with the
// backing repository. Every mutation writes to the repository first and
// touches memory only after the write succeeds; a failed write leaves the
// collection exactly as it was.
//
// The collection is kept ordered by start_at with insertion order breaking
// ties. Callers are expected to issue at most one in-flight write per event
// id; the mutex protects the slice, not that contract.
type Store struct {
	mu     sync.Mutex
	repo   EventRepo
	events []model.Event
}

func New(repo EventRepo) *Store {
	return &Store{
		repo: repo,
	}
}

// Load replaces the collection with the full backend result. On failure the
// previous collection is kept and the error is returned; no partial result
// is ever installed.
func (s *Store) Load(ctx context.Context) error {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return err
	}

	sortByStart(events)

	s.mu.Lock()
	s.events = events
	s.mu.Unlock()
	return nil
}

// Events returns a snapshot copy of the collection in start_at order.
func (s *Store) Events() []model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *Store) Get(id string) (model.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.events[i], true
	}
	return model.Event{}, false
}

func (s *Store) Create(ctx context.Context, event model.Event) error {
	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return err
	}

	s.mu.Lock()
	s.events = append(s.events, event)
	sortByStart(s.events)
	s.mu.Unlock()
	return nil
}

// Update replaces every stored field of the event identified by event.ID
// with the given values, exactly the shape that was sent to the backend.
func (s *Store) Update(ctx context.Context, event model.Event) error {
	s.mu.Lock()
	i := s.indexOf(event.ID)
	s.mu.Unlock()
	if i < 0 {
		return ErrNotFound
	}

	patch := map[string]any{
		"title":               event.Title,
		"who":                 event.Who,
		"notes":               event.Notes,
		"start_at":            event.StartAt,
		"end_at":              event.EndAt,
		"is_all_day":          event.IsAllDay,
		"status":              event.Status,
		"requested_by":        event.RequestedBy,
		"needs_approval_from": event.NeedsApprovalFrom,
	}
	if err := s.repo.UpdateEvent(ctx, event.ID, patch); err != nil {
		return err
	}

	s.mu.Lock()
	if i := s.indexOf(event.ID); i >= 0 {
		s.events[i] = event
		sortByStart(s.events)
	}
	s.mu.Unlock()
	return nil
}

// UpdateDates moves only the start_at/end_at pair of one event, leaving all
// other fields, approval state included, untouched.
func (s *Store) UpdateDates(ctx context.Context, id, startAt, endAt string) error {
	s.mu.Lock()
	i := s.indexOf(id)
	s.mu.Unlock()
	if i < 0 {
		return ErrNotFound
	}

	patch := map[string]any{
		"start_at": startAt,
		"end_at":   endAt,
	}
	if err := s.repo.UpdateEvent(ctx, id, patch); err != nil {
		return err
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.events[i].StartAt = startAt
		s.events[i].EndAt = endAt
		sortByStart(s.events)
	}
	s.mu.Unlock()
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexOf(id)
	s.mu.Unlock()
	if i < 0 {
		return ErrNotFound
	}

	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.events = append(s.events[:i], s.events[i+1:]...)
	}
	s.mu.Unlock()
	return nil
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(id string) int {
	for i := range s.events {
		if s.events[i].ID == id {
			return i
		}
	}
	return -1
}

// sortByStart orders events by start_at ascending. The stored timestamps
// sort lexically in chronological order, and the stable sort keeps
// insertion order for equal timestamps.
func sortByStart(events []model.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartAt < events[j].StartAt
	})
}
