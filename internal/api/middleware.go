package api

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/yakoovad/eventhub/internal/model"
	"github.com/yakoovad/eventhub/internal/service"
	"github.com/yakoovad/eventhub/pkg/logger"
	"go.uber.org/zap"
)

const (
	loggerKey = "logger"
	userKey   = "user"
)

func ZapLoggerMiddleware(l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			req := c.Request()
			res := c.Response()

			requestID := res.Header().Get(echo.HeaderXRequestID)

			reqLogger := l.With(
				zap.String("request_id", requestID),
			)

			c.Set(loggerKey, reqLogger)

			ctx := logger.WithLogger(req.Context(), reqLogger)
			c.SetRequest(req.WithContext(ctx))

			err := next(c)
			if err != nil {
				// let the error handler write the response so the status below is final
				c.Error(err)
			}

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.String("remote_ip", c.RealIP()),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.Int64("bytes_in", req.ContentLength),
				zap.Int64("bytes_out", res.Size),
			}

			if err != nil {
				fields = append(fields, zap.Error(err))
				reqLogger.Error("request failed", fields...)
			} else {
				reqLogger.Info("request completed", fields...)
			}

			return nil
		}
	}
}

func GetLoggerFromContext(c echo.Context) *zap.Logger {
	if l, ok := c.Get(loggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// AuthMiddleware resolves the session cookie to a stored user. Requests
// without a valid session get 401.
func (h *Handler) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := GetLoggerFromContext(c)

			cookie, err := c.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				return h.transportError(c, errUnauthorized())
			}

			claims, err := h.sessions.Verify(cookie.Value)
			if err != nil {
				l.Info("rejected session token", zap.Error(err))
				return h.transportError(c, errUnauthorized())
			}

			user, serr := h.user.GetUser(c.Request().Context(), claims.UserID)
			if serr != nil {
				if serr.Code == service.ErrorCodeNotFound {
					l.Info("session for unknown user", zap.Int64("user_id", claims.UserID))
					return h.transportError(c, errUnauthorized())
				}
				return h.transportError(c, serr)
			}

			c.Set(userKey, user)

			reqLogger := l.With(zap.Int64("user_id", user.ID))
			c.Set(loggerKey, reqLogger)
			c.SetRequest(c.Request().WithContext(logger.WithLogger(c.Request().Context(), reqLogger)))

			return next(c)
		}
	}
}

func organizersOnly(r model.Role) bool { return r.IsOrganizer() }

func participantsOnly(r model.Role) bool { return !r.IsOrganizer() }

// RoleGuard answers 403 with message unless allow accepts the session user's
// role. It must run after AuthMiddleware.
func (h *Handler) RoleGuard(allow func(model.Role) bool, key, message string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := currentUser(c)
			if user == nil {
				return h.transportError(c, errUnauthorized())
			}
			if !allow(user.Role) {
				GetLoggerFromContext(c).Info("role not allowed", zap.String("role", string(user.Role)), zap.String("path", c.Path()))
				return h.transportError(c, service.NewError(service.ErrorCodeForbidden, message).WithKey(key))
			}
			return next(c)
		}
	}
}

func currentUser(c echo.Context) *model.User {
	user, _ := c.Get(userKey).(*model.User)
	return user
}

func errUnauthorized() *service.Error {
	return service.NewError(service.ErrorCodeUnauthorized, "Not authenticated").WithKey("unauthorized")
}
