package model

import (
	"errors"
	"strings"
	"time"
)

// Timestamp layouts. Events carry start_at/end_at as local wall-clock
// strings so that lexical order matches chronological order and date
// matching never crosses a UTC day boundary.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DateTimeLayout = "2006-01-02T15:04:05"
)

var (
	ErrEmptyTitle         = errors.New("title must not be empty")
	ErrMissingDate        = errors.New("start date missing or malformed")
	ErrMissingTime        = errors.New("start or end time missing or malformed")
	ErrEndNotAfterStart   = errors.New("end time must be after start time")
	ErrUnknownParticipant = errors.New("unknown participant")
	ErrNoApprover         = errors.New("pending event has no resolvable approver")
)

type Participant string

const (
	Child   Participant = "child"
	ParentA Participant = "parentA"
	ParentB Participant = "parentB"
)

func (p Participant) Valid() bool {
	switch p {
	case Child, ParentA, ParentB:
		return true
	}
	return false
}

// OtherParent maps each parent to the other one. The mapping is total and
// symmetric over the two-parent set; anything else (including Child) is not
// a parent and reports false.
func OtherParent(p Participant) (Participant, bool) {
	switch p {
	case ParentA:
		return ParentB, true
	case ParentB:
		return ParentA, true
	}
	return "", false
}

type EventStatus string

const (
	StatusPending   EventStatus = "pending"
	StatusConfirmed EventStatus = "confirmed"
	StatusDeclined  EventStatus = "declined"
)

type Event struct {
	ID                string       `gorm:"column:id;primaryKey" json:"id"`
	Title             string       `gorm:"column:title" json:"title"`
	Who               Participant  `gorm:"column:who" json:"who"`
	Notes             string       `gorm:"column:notes" json:"notes"`
	StartAt           string       `gorm:"column:start_at" json:"start_at"`
	EndAt             string       `gorm:"column:end_at" json:"end_at"`
	IsAllDay          bool         `gorm:"column:is_all_day" json:"is_all_day"`
	Status            EventStatus  `gorm:"column:status" json:"status,omitempty"`
	RequestedBy       *Participant `gorm:"column:requested_by" json:"requested_by,omitempty"`
	NeedsApprovalFrom *Participant `gorm:"column:needs_approval_from" json:"needs_approval_from,omitempty"`
}

func (m *Event) TableName() string {
	return "events"
}

// EffectiveStatus coalesces a missing status to confirmed at read time.
// Legacy rows predate the approval workflow and carry no status value; they
// must keep behaving as confirmed without being rewritten.
func (m *Event) EffectiveStatus() EventStatus {
	if m.Status == "" {
		return StatusConfirmed
	}
	return m.Status
}

// StartDate returns the calendar-date part of start_at.
func (m *Event) StartDate() string {
	return DatePart(m.StartAt)
}

// DatePart returns the YYYY-MM-DD prefix of a stored timestamp.
func DatePart(ts string) string {
	if i := strings.IndexByte(ts, 'T'); i >= 0 {
		return ts[:i]
	}
	return ts
}

// TimePart returns the wall-clock part of a stored timestamp, or "" when
// the timestamp has no time component.
func TimePart(ts string) string {
	if i := strings.IndexByte(ts, 'T'); i >= 0 {
		return strings.TrimSpace(ts[i+1:])
	}
	return ""
}

// Duplicate returns a copy of the event under a new id with the duplicate
// title suffix. Every other field is copied verbatim, approval state
// included: a duplicated pending event still awaits the same approver.
func (m Event) Duplicate(id string) Event {
	dup := m
	dup.ID = id
	dup.Title = m.Title + " (Copia)"
	return dup
}

// BuildEvent validates a save request and assembles the event it describes.
// The id is not set here; callers mint one for creates and reuse the
// existing one for edits.
func BuildEvent(req EventSaveRequest) (Event, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return Event{}, ErrEmptyTitle
	}
	if !req.Who.Valid() {
		return Event{}, ErrUnknownParticipant
	}
	if _, err := time.Parse(DateLayout, req.StartDate); err != nil {
		return Event{}, ErrMissingDate
	}

	var startAt, endAt string
	if req.IsAllDay {
		// All-day events are pinned to the day boundary; any submitted
		// time fields are ignored.
		startAt = req.StartDate + "T00:00:00"
		endAt = req.StartDate + "T23:59:59"
	} else {
		if _, err := time.Parse(TimeLayout, req.StartTime); err != nil {
			return Event{}, ErrMissingTime
		}
		if _, err := time.Parse(TimeLayout, req.EndTime); err != nil {
			return Event{}, ErrMissingTime
		}
		if req.EndTime <= req.StartTime {
			return Event{}, ErrEndNotAfterStart
		}
		startAt = req.StartDate + "T" + req.StartTime + ":00"
		endAt = req.StartDate + "T" + req.EndTime + ":00"
	}

	event := Event{
		Title:    title,
		Who:      req.Who,
		Notes:    req.Notes,
		StartAt:  startAt,
		EndAt:    endAt,
		IsAllDay: req.IsAllDay,
		Status:   req.Status,
	}
	if err := event.RouteApproval(req.RequestedBy); err != nil {
		return Event{}, err
	}
	return event, nil
}

// RouteApproval normalizes the approval fields for the event's status.
// A pending event needs a requesting parent and its approver is always the
// other parent. Leaving pending clears the approver. A pending event whose
// approver cannot be resolved fails the save rather than guessing one.
func (m *Event) RouteApproval(requestedBy *Participant) error {
	if requestedBy != nil {
		if _, ok := OtherParent(*requestedBy); !ok {
			return ErrNoApprover
		}
		m.RequestedBy = requestedBy
	}

	if m.EffectiveStatus() != StatusPending {
		m.NeedsApprovalFrom = nil
		return nil
	}

	if m.RequestedBy == nil {
		return ErrNoApprover
	}
	other, ok := OtherParent(*m.RequestedBy)
	if !ok {
		return ErrNoApprover
	}
	m.NeedsApprovalFrom = &other
	return nil
}
