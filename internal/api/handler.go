package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/yakoovad/eventhub/internal/auth"
	"github.com/yakoovad/eventhub/internal/i18n"
	"github.com/yakoovad/eventhub/internal/service"
	"github.com/yakoovad/eventhub/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Handler struct {
	user          *service.UserService
	event         *service.EventService
	team          *service.TeamService
	registration  *service.RegistrationService
	analytics     *service.AnalyticsService
	healthChecker HealthChecker

	sessions     *auth.SessionIssuer
	secureCookie bool
	translator   *i18n.Translator

	corsOrigins  []string
	rateRequests int
	rateWindow   time.Duration

	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{
		logger: logger,
	}
}

func (h *Handler) WithHealthChecker(c HealthChecker) *Handler {
	h.healthChecker = c
	return h
}

func (h *Handler) WithUserService(user *service.UserService) *Handler {
	h.user = user
	return h
}

func (h *Handler) WithEventService(event *service.EventService) *Handler {
	h.event = event
	return h
}

func (h *Handler) WithTeamService(team *service.TeamService) *Handler {
	h.team = team
	return h
}

func (h *Handler) WithRegistrationService(registration *service.RegistrationService) *Handler {
	h.registration = registration
	return h
}

func (h *Handler) WithAnalyticsService(analytics *service.AnalyticsService) *Handler {
	h.analytics = analytics
	return h
}

// WithSessions sets the issuer of session cookies. secure marks them HTTPS-only.
func (h *Handler) WithSessions(sessions *auth.SessionIssuer, secure bool) *Handler {
	h.sessions = sessions
	h.secureCookie = secure
	return h
}

func (h *Handler) WithTranslator(t *i18n.Translator) *Handler {
	h.translator = t
	return h
}

func (h *Handler) WithCORSOrigins(origins ...string) *Handler {
	h.corsOrigins = origins
	return h
}

// WithRateLimit allows requests per window and client IP. Zero disables the limiter.
func (h *Handler) WithRateLimit(requests int, window time.Duration) *Handler {
	h.rateRequests = requests
	h.rateWindow = window
	return h
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewValidator()
	e.HTTPErrorHandler = h.HTTPErrorHandler
	// client address comes from the socket, X-Forwarded-For and X-Real-IP are ignored
	e.IPExtractor = echo.ExtractIPDirect()
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(ZapLoggerMiddleware(h.logger))
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	if len(h.corsOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     h.corsOrigins,
			AllowCredentials: true,
		}))
	}

	g := e.Group("/api")
	if h.rateRequests > 0 && h.rateWindow > 0 {
		g.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(float64(h.rateRequests) / h.rateWindow.Seconds()),
				Burst:     h.rateRequests,
				ExpiresIn: h.rateWindow,
			}),
		}))
	}

	if h.healthChecker != nil {
		g.GET("/health", h.healthChecker.HealthCheck())
	}

	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)

	g.GET("/events", h.ListEvents)
	g.GET("/events/:eventId", h.GetEvent)
	g.GET("/events/:eventId/teams", h.ListTeams)
	g.GET("/events/:eventId/teams/:teamId/members", h.ListTeamMembers)

	authed := h.AuthMiddleware()

	g.GET("/user", h.CurrentUser, authed)
	g.GET("/registrations", h.ListRegistrations, authed)
	g.GET("/analytics", h.Analytics, authed)

	g.POST("/events", h.CreateEvent, authed,
		h.RoleGuard(organizersOnly, "forbidden_create_event", "Only organizers can create events"))
	g.POST("/events/:eventId/register", h.RegisterForEvent, authed,
		h.RoleGuard(participantsOnly, "forbidden_register", "Organizers cannot register for events"))
	g.POST("/events/:eventId/teams", h.CreateTeam, authed,
		h.RoleGuard(participantsOnly, "forbidden_create_team", "Organizers cannot create teams"))
	g.POST("/events/:eventId/teams/:teamId/join", h.JoinTeam, authed,
		h.RoleGuard(participantsOnly, "forbidden_join_team", "Organizers cannot join teams"))
}

// HTTPErrorHandler answers errors no handler turned into a response. Client
// errors raised by echo keep their status; everything else is a logged 500.
func (h *Handler) HTTPErrorHandler(err error, e echo.Context) {
	if e.Response().Committed {
		return
	}

	var (
		code    = http.StatusInternalServerError
		message = http.StatusText(http.StatusInternalServerError)
	)

	if he, ok := err.(*echo.HTTPError); ok && he.Code < http.StatusInternalServerError {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(he.Code)
		}
	} else {
		logger.FromContext(e.Request().Context()).Error("unhandled error", zap.Error(err))
	}

	var werr error
	if e.Request().Method == http.MethodHead {
		werr = e.NoContent(code)
	} else {
		werr = e.JSON(code, map[string]string{"message": message})
	}
	if werr != nil {
		h.logger.Error("failed to write error response", zap.Error(werr))
	}
}

func (h *Handler) decodeRequest(e echo.Context, req any) *service.Error {
	if err := e.Bind(req); err != nil {
		return service.NewError(service.ErrorCodeInvalidBody, "invalid request body").WithKey("invalid_body")
	}

	if err := e.Validate(req); err != nil {
		return service.NewValidationError(validationFields(err))
	}
	return nil
}

func (h *Handler) transportError(e echo.Context, err *service.Error) error {
	localized := *err
	localized.Message = h.translator.Translate(e.Request().Header.Get("Accept-Language"), err.Key, err.Message)

	response := struct {
		Error *service.Error `json:"error"`
	}{Error: &localized}

	switch err.Code {
	case service.ErrorCodeInvalidBody, service.ErrorCodeUserExists:
		return e.JSON(http.StatusBadRequest, response)
	case service.ErrorCodeUnauthorized, service.ErrorCodeInvalidCredentials:
		return e.JSON(http.StatusUnauthorized, response)
	case service.ErrorCodeForbidden:
		return e.JSON(http.StatusForbidden, response)
	case service.ErrorCodeNotFound:
		return e.JSON(http.StatusNotFound, response)
	case service.ErrorCodeTeamFull, service.ErrorCodeAlreadyMember:
		return e.JSON(http.StatusConflict, response)
	default:
		return e.JSON(http.StatusInternalServerError, response)
	}
}

// pathID parses a numeric path parameter. Anything else cannot match a stored
// record, so callers answer with their not-found error.
func pathID(e echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(e.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
