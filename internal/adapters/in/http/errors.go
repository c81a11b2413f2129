package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps the error taxonomy of internal/pkg/errs onto HTTP status codes.
func statusFor(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrTransient):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx echo.Context, err error) error {
	status := statusFor(err)

	message := err.Error()
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	}
	if status == http.StatusInternalServerError {
		ctx.Logger().Error(err)
		message = http.StatusText(http.StatusInternalServerError)
	}

	return ctx.JSON(status, servers.Error{Code: status, Message: message})
}

// ErrorHandler renders errors that escape the handlers, parameter binding
// failures and unknown routes included, in the API error format.
func ErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}
	if writeErr := writeError(ctx, err); writeErr != nil {
		ctx.Logger().Error(writeErr)
	}
}
