package apis

import (
	"net/http"
	"time"

	"family-calendar-backend/cmd/family-calendar/calendar"
	"family-calendar-backend/cmd/family-calendar/model"

	ical "github.com/arran4/golang-ical"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
)

// ExportAPI serves the agenda as CSV and the confirmed calendar as an ICS
// feed for subscription from external calendar clients.
type ExportAPI struct {
	events IEventStore
}

func NewExportAPI(events IEventStore) *ExportAPI {

	return &ExportAPI{
		events: events,
	}
}

func (a *ExportAPI) Setup(g *echo.Group) {
	g.GET("/agenda/export.csv", a.exportCSV)
	g.GET("/calendar.ics", a.exportICS)
}

func (a *ExportAPI) exportCSV(c echo.Context) error {

	view := calendar.View(c.QueryParam("view"))
	if view == "" {
		view = calendar.ViewAgenda
	}
	if !view.Valid() {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: "unknown view",
			},
		)
	}

	events := calendar.List(a.events.Events(), view, "")
	rows := make([]model.EventCSV, 0, len(events))
	for _, e := range events {
		rows = append(rows, e.ToCSVRow())
	}

	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="agenda.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(out))
}

func (a *ExportAPI) exportICS(c echo.Context) error {

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//family-calendar//IT")

	for _, e := range calendar.List(a.events.Events(), calendar.ViewAgenda, "") {
		start, err := time.ParseInLocation(model.DateTimeLayout, e.StartAt, time.Local)
		if err != nil {
			continue
		}
		end, err := time.ParseInLocation(model.DateTimeLayout, e.EndAt, time.Local)
		if err != nil {
			continue
		}

		ve := cal.AddEvent(e.ID)
		ve.SetSummary(e.Title)
		if e.Notes != "" {
			ve.SetDescription(e.Notes)
		}
		if e.IsAllDay {
			ve.SetAllDayStartAt(start)
			ve.SetAllDayEndAt(start.AddDate(0, 0, 1))
		} else {
			ve.SetStartAt(start)
			ve.SetEndAt(end)
		}
	}

	return c.Blob(http.StatusOK, "text/calendar", []byte(cal.Serialize()))
}
