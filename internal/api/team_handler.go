package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yakoovad/eventhub/internal/service"
	"github.com/yakoovad/eventhub/pkg/logger"
	"go.uber.org/zap"
)

func (h *Handler) CreateTeam(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	eventID, ok := pathID(e, "eventId")
	if !ok {
		return h.transportError(e, service.ErrEventNotFound())
	}

	var req struct {
		Name string `json:"name" validate:"required"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Info("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	team, err := h.team.CreateTeam(e.Request().Context(), currentUser(e), eventID, req.Name)
	if err != nil {
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, team)
}

func (h *Handler) ListTeams(e echo.Context) error {
	eventID, ok := pathID(e, "eventId")
	if !ok {
		return e.JSON(http.StatusOK, []any{})
	}

	teams, err := h.team.ListTeams(e.Request().Context(), eventID)
	if err != nil {
		return h.transportError(e, err)
	}
	return e.JSON(http.StatusOK, teams)
}

func (h *Handler) JoinTeam(e echo.Context) error {
	eventID, ok := pathID(e, "eventId")
	if !ok {
		return h.transportError(e, service.ErrEventNotFound())
	}
	teamID, ok := pathID(e, "teamId")
	if !ok {
		return h.transportError(e, service.ErrTeamNotFound())
	}

	member, err := h.team.JoinTeam(e.Request().Context(), currentUser(e), eventID, teamID)
	if err != nil {
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, member)
}

func (h *Handler) ListTeamMembers(e echo.Context) error {
	eventID, ok := pathID(e, "eventId")
	if !ok {
		return h.transportError(e, service.ErrTeamNotFound())
	}
	teamID, ok := pathID(e, "teamId")
	if !ok {
		return h.transportError(e, service.ErrTeamNotFound())
	}

	members, err := h.team.ListMembers(e.Request().Context(), eventID, teamID)
	if err != nil {
		return h.transportError(e, err)
	}
	return e.JSON(http.StatusOK, members)
}
