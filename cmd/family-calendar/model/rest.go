package model

import "time"

type BaseResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

// EventSaveRequest mirrors the edit form: a single date plus separate
// wall-clock times. Time fields are ignored when is_all_day is set.
type EventSaveRequest struct {
	Title       string       `json:"title"`
	Who         Participant  `json:"who"`
	Notes       string       `json:"notes"`
	StartDate   string       `json:"start_date"`
	StartTime   string       `json:"start_time"`
	EndTime     string       `json:"end_time"`
	IsAllDay    bool         `json:"is_all_day"`
	Status      EventStatus  `json:"status"`
	RequestedBy *Participant `json:"requested_by,omitempty"`
}

type RescheduleRequest struct {
	Date string `json:"date"`
}

type SessionRequest struct {
	Pin string `json:"pin"`
}

type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GridCell is one of the 42 cells of a month view. Placeholder cells have
// Day == 0 and never carry events.
type GridCell struct {
	Day          int     `json:"day"`
	Date         string  `json:"date,omitempty"`
	Events       []Event `json:"events,omitempty"`
	PendingCount int     `json:"pending_count"`
}

type GridResponse struct {
	Year  int        `json:"year"`
	Month int        `json:"month"`
	Cells []GridCell `json:"cells"`
}
