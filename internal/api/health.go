package api

import (
	"net/http"

	"github.com/hellofresh/health-go/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type HealthChecker interface {
	HealthCheck() echo.HandlerFunc
}

type healthChecker struct {
	health *health.Health
}

type healthResponse struct {
	Status   string            `json:"status"`
	Failures map[string]string `json:"failures,omitempty"`
}

func NewHealthChecker(version string, checks ...health.Config) (HealthChecker, error) {
	h, err := health.New(health.WithComponent(health.Component{Name: "eventhub", Version: version}))
	if err != nil {
		return nil, errors.Wrap(err, "create health checker")
	}

	for _, check := range checks {
		if err := h.Register(check); err != nil {
			return nil, errors.Wrapf(err, "register health check %s", check.Name)
		}
	}

	return &healthChecker{
		health: h,
	}, nil
}

func MustNewHealthChecker(version string, checks ...health.Config) HealthChecker {
	h, err := NewHealthChecker(version, checks...)
	if err != nil {
		panic(err)
	}
	return h
}

// HealthCheck answers 200 with status "ok" whatever the checks report.
// Failing checks are listed under failures.
func (h *healthChecker) HealthCheck() echo.HandlerFunc {
	return func(e echo.Context) error {
		check := h.health.Measure(e.Request().Context())

		res := healthResponse{Status: "ok"}
		if check.Status != health.StatusOK {
			res.Failures = check.Failures
		}
		return e.JSON(http.StatusOK, res)
	}
}
