package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arslanca/portfolio/internal/service"
)

// toHTTPError maps the service failure taxonomy onto status codes.
// Unrecognized errors become an opaque 500: driver and store text must
// not reach the caller.
func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, please try again later")
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, service.ErrInvalidRefreshToken):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or revoked token")
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrBusinessRule):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

// ErrorHandler renders every error in one stable machine-readable
// shape: {error, message, timestamp}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	he, ok := err.(*echo.HTTPError)
	if !ok {
		he = echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	message := http.StatusText(he.Code)
	if s, ok := he.Message.(string); ok {
		message = s
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(he.Code)
		return
	}
	_ = c.JSON(he.Code, echo.Map{
		"error":     http.StatusText(he.Code),
		"message":   message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
