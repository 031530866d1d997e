package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yakoovad/eventhub/internal/model"
	"github.com/yakoovad/eventhub/internal/service"
	"github.com/yakoovad/eventhub/pkg/logger"
	"go.uber.org/zap"
)

type createEventRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate" validate:"required"`
	MaxTeamSize int    `json:"maxTeamSize" validate:"min=1,max=2147483647"`

	event *model.Event
}

type registerRequest struct {
	TeamID *int64 `json:"teamId"`
}

func (h *Handler) ListEvents(e echo.Context) error {
	events, err := h.event.ListEvents(e.Request().Context())
	if err != nil {
		return h.transportError(e, err)
	}
	return e.JSON(http.StatusOK, events)
}

func (h *Handler) GetEvent(e echo.Context) error {
	id, ok := pathID(e, "eventId")
	if !ok {
		return h.transportError(e, service.ErrEventNotFound())
	}

	event, err := h.event.GetEvent(e.Request().Context(), id)
	if err != nil {
		return h.transportError(e, err)
	}
	return e.JSON(http.StatusOK, event)
}

func (h *Handler) CreateEvent(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	req := &createEventRequest{}
	if err := ProcessRequest(e, req, bindStep[createEventRequest], validateStep[createEventRequest], parseEventDates); err != nil {
		l.Info("invalid request", zap.Any("error", err))
		return h.transportError(e, asServiceError(err))
	}

	event, err := h.event.CreateEvent(e.Request().Context(), currentUser(e), req.event)
	if err != nil {
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, event)
}

func parseEventDates(_ echo.Context, req *createEventRequest) error {
	fields := map[string]string{}

	start, err := model.ParseDate(req.StartDate)
	if err != nil {
		fields["startDate"] = "startDate must be a valid date"
	}
	end, err := model.ParseDate(req.EndDate)
	if err != nil {
		fields["endDate"] = "endDate must be a valid date"
	}
	if len(fields) > 0 {
		return service.NewValidationError(fields)
	}

	req.event = &model.Event{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		MaxTeamSize: req.MaxTeamSize,
	}
	return nil
}

func (h *Handler) RegisterForEvent(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	eventID, ok := pathID(e, "eventId")
	if !ok {
		return h.transportError(e, service.ErrEventNotFound())
	}

	req := &registerRequest{}
	if err := h.decodeRequest(e, req); err != nil {
		l.Info("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	reg, err := h.registration.Register(e.Request().Context(), currentUser(e), eventID, req.TeamID)
	if err != nil {
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, reg)
}

func (h *Handler) ListRegistrations(e echo.Context) error {
	regs, err := h.registration.ListRegistrations(e.Request().Context())
	if err != nil {
		return h.transportError(e, err)
	}
	return e.JSON(http.StatusOK, regs)
}

func (h *Handler) Analytics(e echo.Context) error {
	summary, err := h.analytics.Summary(e.Request().Context(), currentUser(e))
	if err != nil {
		return h.transportError(e, err)
	}
	return e.JSON(http.StatusOK, summary)
}
