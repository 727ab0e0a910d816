package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"montarota/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	msgRouteNotFound  = "route not found"
	msgInternalServer = "internal server error"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorHandler maps errs sentinels to status codes. Unexpected failures are
// logged and reported as a bare 500.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := classify(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, ErrorResponse{Error: message})
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", "error", writeErr)
		}
	}
}

func classify(err error) (int, string) {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		switch {
		case he.Code == http.StatusNotFound:
			return http.StatusNotFound, msgRouteNotFound
		case he.Code >= http.StatusInternalServerError:
			return he.Code, msgInternalServer
		default:
			return he.Code, fmt.Sprint(he.Message)
		}
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrIdempotentRequestActive),
		errors.Is(err, errs.ErrConcurrentModification):
		return http.StatusConflict, err.Error()
	case errors.Is(err, errs.ErrConflict):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, msgInternalServer
	}
}
