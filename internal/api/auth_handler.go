package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/yakoovad/eventhub/internal/model"
	"github.com/yakoovad/eventhub/internal/service"
	"github.com/yakoovad/eventhub/pkg/logger"
	"go.uber.org/zap"
)

const sessionCookieName = "eventhub_session"

func (h *Handler) Register(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	req := &model.NewUser{}
	if err := h.decodeRequest(e, req); err != nil {
		l.Info("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	user, err := h.user.Register(e.Request().Context(), req)
	if err != nil {
		return h.transportError(e, err)
	}

	if err := h.startSession(e, user); err != nil {
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusCreated, user)
}

func (h *Handler) Login(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Info("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	user, err := h.user.Login(e.Request().Context(), req.Username, req.Password)
	if err != nil {
		return h.transportError(e, err)
	}

	if err := h.startSession(e, user); err != nil {
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, user)
}

func (h *Handler) Logout(e echo.Context) error {
	e.SetCookie(h.sessionCookie("", -1))
	return e.NoContent(http.StatusOK)
}

func (h *Handler) CurrentUser(e echo.Context) error {
	return e.JSON(http.StatusOK, currentUser(e))
}

func (h *Handler) startSession(e echo.Context, user *model.User) *service.Error {
	token, err := h.sessions.Generate(user)
	if err != nil {
		logger.FromContext(e.Request().Context()).Error("failed to sign session", zap.Int64("user_id", user.ID), zap.Error(err))
		return service.NewError(service.ErrorCodeUnspecified, "failed to start session")
	}

	e.SetCookie(h.sessionCookie(token, int(h.sessions.TTL()/time.Second)))
	return nil
}

func (h *Handler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
