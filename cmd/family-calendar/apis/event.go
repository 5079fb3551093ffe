package apis

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"family-calendar-backend/cmd/family-calendar/calendar"
	"family-calendar-backend/cmd/family-calendar/model"
	"family-calendar-backend/cmd/family-calendar/store"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type IEventStore interface {
	Load(ctx context.Context) error
	Events() []model.Event
	Get(id string) (model.Event, bool)
	Create(ctx context.Context, event model.Event) error
	Update(ctx context.Context, event model.Event) error
	UpdateDates(ctx context.Context, id, startAt, endAt string) error
	Delete(ctx context.Context, id string) error
}

type EventAPI struct {
	events IEventStore
}

func NewEventAPI(events IEventStore) *EventAPI {

	return &EventAPI{
		events: events,
	}
}

func (a *EventAPI) Setup(g *echo.Group) {
	g.GET("/events", a.listEvents)
	g.POST("/events", a.createEvent)
	g.PATCH("/events/:id", a.updateEvent)
	g.DELETE("/events/:id", a.deleteEvent)
	g.POST("/events/:id/duplicate", a.duplicateEvent)
	g.POST("/events/:id/reschedule", a.rescheduleEvent)
	g.GET("/grid", a.monthGrid)
	g.GET("/days/:date/events", a.dayEvents)
	g.GET("/agenda", a.agenda)
}

func (a *EventAPI) listEvents(c echo.Context) error {

	ctx := c.Request().Context()

	err := a.events.Load(ctx)
	if err != nil {
		c.Logger().Errorf("load events: %v", err)
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    a.events.Events(),
		},
	)
}

func (a *EventAPI) createEvent(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.EventSaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	event, err := model.BuildEvent(req)
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}
	event.ID = id.String()

	if err := a.events.Create(ctx, event); err != nil {
		c.Logger().Errorf("create event: %v", err)
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    event,
		},
	)
}

func (a *EventAPI) updateEvent(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.EventSaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	event, err := model.BuildEvent(req)
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}
	event.ID = c.Param("id")

	err = a.events.Update(ctx, event)
	if errors.Is(err, store.ErrNotFound) {
		// Stale reference; nothing to mutate and nothing to surface.
		return c.JSON(
			http.StatusOK,
			model.BaseResponse{
				Message: "success",
			},
		)
	}
	if err != nil {
		c.Logger().Errorf("update event %s: %v", event.ID, err)
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    event,
		},
	)
}

func (a *EventAPI) deleteEvent(c echo.Context) error {

	ctx := c.Request().Context()
	id := c.Param("id")

	err := a.events.Delete(ctx, id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		c.Logger().Errorf("delete event %s: %v", id, err)
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
		},
	)
}

func (a *EventAPI) duplicateEvent(c echo.Context) error {

	ctx := c.Request().Context()

	original, ok := a.events.Get(c.Param("id"))
	if !ok {
		return c.JSON(
			http.StatusOK,
			model.BaseResponse{
				Message: "success",
			},
		)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	dup := original.Duplicate(id.String())
	if err := a.events.Create(ctx, dup); err != nil {
		c.Logger().Errorf("duplicate event %s: %v", original.ID, err)
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    dup,
		},
	)
}

func (a *EventAPI) rescheduleEvent(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.RescheduleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	if _, err := time.Parse(model.DateLayout, req.Date); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: model.ErrMissingDate.Error(),
			},
		)
	}

	err := calendar.Reschedule(ctx, a.events, c.Param("id"), req.Date)
	if errors.Is(err, store.ErrNotFound) {
		err = nil
	}
	if errors.Is(err, calendar.ErrMissingTime) {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}
	if err != nil {
		c.Logger().Errorf("reschedule event %s: %v", c.Param("id"), err)
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
		},
	)
}

func (a *EventAPI) monthGrid(c echo.Context) error {

	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: "year must be a number",
			},
		)
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil || month < 1 || month > 12 {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: "month must be 1..12",
			},
		)
	}

	events := a.events.Events()
	grid := calendar.MonthGrid(year, time.Month(month))

	cells := make([]model.GridCell, 0, len(grid))
	for _, day := range grid {
		cell := model.GridCell{
			Day:  day.Day,
			Date: day.Date,
		}
		if day.Day != 0 {
			cell.Events = calendar.EventsOn(events, day.Date)
			cell.PendingCount = calendar.PendingCount(events, day.Date)
		}
		cells = append(cells, cell)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data: model.GridResponse{
				Year:  year,
				Month: month,
				Cells: cells,
			},
		},
	)
}

func (a *EventAPI) dayEvents(c echo.Context) error {

	date := c.Param("date")
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: model.ErrMissingDate.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    calendar.DrawerEvents(a.events.Events(), date),
		},
	)
}

func (a *EventAPI) agenda(c echo.Context) error {

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

	who := model.Participant(c.QueryParam("who"))
	if who != "" && !who.Valid() {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: model.ErrUnknownParticipant.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    calendar.List(a.events.Events(), view, who),
		},
	)
}
