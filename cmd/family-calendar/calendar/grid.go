// Package calendar holds the date math and the view derivation rules: the
// fixed month grid, the filtered/sorted event lists behind each view, and
// the drag-and-drop reschedule contract.
package calendar

import (
	"time"

	"family-calendar-backend/cmd/family-calendar/model"
)

// GridSize is the fixed cell count of a month view: 6 rows of 7 days.
const GridSize = 42

// Cell is one grid slot. A zero value is a placeholder outside the month.
type Cell struct {
	Day  int    // 1..31, 0 for placeholders
	Date string // YYYY-MM-DD, "" for placeholders
}

// MonthGrid lays out a month as exactly GridSize cells, Monday first:
// leading placeholders up to the weekday of day 1, one cell per calendar
// day, then trailing placeholders. The fixed height holds for any month
// length and for leap years.
func MonthGrid(year int, month time.Month) []Cell {
	// Day 0 of the next month is the last day of this one.
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()

	// Weekday of day 1 remapped to Monday=1..Sunday=7.
	offset := int(time.Date(year, month, 1, 0, 0, 0, 0, time.Local).Weekday())
	if offset == 0 {
		offset = 7
	}

	grid := make([]Cell, 0, GridSize)
	for i := 1; i < offset; i++ {
		grid = append(grid, Cell{})
	}
	for d := 1; d <= daysInMonth; d++ {
		grid = append(grid, Cell{
			Day:  d,
			Date: time.Date(year, month, d, 0, 0, 0, 0, time.Local).Format(model.DateLayout),
		})
	}
	for len(grid) < GridSize {
		grid = append(grid, Cell{})
	}
	return grid
}
