package api

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/yakoovad/eventhub/internal/service"
)

// ProcessRequest runs steps over req in order and stops at the first failure.
func ProcessRequest[T any](e echo.Context, req *T, steps ...func(echo.Context, *T) error) error {
	for _, step := range steps {
		if err := step(e, req); err != nil {
			return err
		}
	}
	return nil
}

func bindStep[T any](e echo.Context, req *T) error {
	if err := e.Bind(req); err != nil {
		return service.NewError(service.ErrorCodeInvalidBody, "invalid request body").WithKey("invalid_body")
	}
	return nil
}

func validateStep[T any](e echo.Context, req *T) error {
	if err := e.Validate(req); err != nil {
		return service.NewValidationError(validationFields(err))
	}
	return nil
}

func asServiceError(err error) *service.Error {
	var serr *service.Error
	if errors.As(err, &serr) {
		return serr
	}
	return service.NewError(service.ErrorCodeUnspecified, "failed to process request")
}
