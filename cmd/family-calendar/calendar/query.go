package calendar

import (
	"sort"

	"family-calendar-backend/cmd/family-calendar/model"
)

// View selects which derived event list a caller wants. It is explicit
// request state, never ambient.
type View string

const (
	ViewMonth   View = "month"
	ViewAgenda  View = "agenda"
	ViewPending View = "pending"
)

func (v View) Valid() bool {
	switch v {
	case ViewMonth, ViewAgenda, ViewPending:
		return true
	}
	return false
}

// visible is the base filter shared by every view: declined events never
// surface in a list, though they stay retrievable by id.
func visible(e *model.Event) bool {
	return e.EffectiveStatus() != model.StatusDeclined
}

// onDate matches by calendar-date equality on start_at, comparing against
// the same local-date stringification used at save time.
func onDate(e *model.Event, date string) bool {
	return date != "" && e.StartDate() == date
}

// EventsOn returns the confirmed events of one grid cell, in collection
// order.
func EventsOn(events []model.Event, date string) []model.Event {
	var out []model.Event
	for i := range events {
		e := &events[i]
		if onDate(e, date) && visible(e) && e.EffectiveStatus() == model.StatusConfirmed {
			out = append(out, *e)
		}
	}
	return out
}

// DrawerEvents returns the day-drawer list for one date: pending events
// first, then by start_at ascending, ties kept in collection order.
func DrawerEvents(events []model.Event, date string) []model.Event {
	var out []model.Event
	for i := range events {
		e := &events[i]
		if onDate(e, date) && visible(e) {
			out = append(out, *e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].EffectiveStatus() == model.StatusPending, out[j].EffectiveStatus() == model.StatusPending
		if pi != pj {
			return pi
		}
		return out[i].StartAt < out[j].StartAt
	})
	return out
}

// List returns the agenda-style list for a view: non-declined events sorted
// by start_at, restricted to confirmed for the agenda view and to pending
// for the pending view, then optionally narrowed to one participant.
// who == "" means no participant filter.
func List(events []model.Event, view View, who model.Participant) []model.Event {
	var out []model.Event
	for i := range events {
		e := &events[i]
		if !visible(e) {
			continue
		}
		switch view {
		case ViewAgenda:
			if e.EffectiveStatus() != model.StatusConfirmed {
				continue
			}
		case ViewPending:
			if e.EffectiveStatus() != model.StatusPending {
				continue
			}
		}
		if who != "" && e.Who != who {
			continue
		}
		out = append(out, *e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartAt < out[j].StartAt
	})
	return out
}

// PendingCount counts the pending events on one date. It always recomputes
// from the slice it is handed so the indicator tracks the latest mutation.
func PendingCount(events []model.Event, date string) int {
	n := 0
	for i := range events {
		e := &events[i]
		if onDate(e, date) && e.EffectiveStatus() == model.StatusPending {
			n++
		}
	}
	return n
}
