package server

import (
	"errors"
	"net/http"

	"github.com/hashicorp/go-hclog"
	"github.com/labstack/echo/v4"

	apperrors "timebox/internal/platform/errors"
)

// Status maps an error kind to its HTTP status. Duplicate days answer 400
// with code "conflict", which is what clients key on.
func Status(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrUnsupported):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func errorHandler(logger hclog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, env := envelope(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
		}
		if status == http.StatusUnauthorized && c.Response().Header().Get(echo.HeaderWWWAuthenticate) == "" {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, `basic realm="timebox"`)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, env)
		}
		if writeErr != nil {
			logger.Error("write error response", "error", writeErr)
		}
	}
}

func envelope(err error) (int, apperrors.Envelope) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok && s != "" {
			msg = s
		}
		return he.Code, apperrors.Envelope{Error: msg, Code: codeForStatus(he.Code)}
	}

	status := Status(err)
	if status == http.StatusInternalServerError {
		return status, apperrors.Envelope{Error: "internal error", Code: apperrors.CodeInternal}
	}
	return status, apperrors.Envelope{Error: err.Error(), Code: apperrors.Code(err)}
}

func codeForStatus(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return apperrors.CodeUnauthorized
	case status == http.StatusNotFound:
		return apperrors.CodeNotFound
	case status >= http.StatusInternalServerError:
		return apperrors.CodeInternal
	default:
		return apperrors.CodeValidation
	}
}
