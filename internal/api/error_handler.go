package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/propdesk/crm-console/internal/api/handler"
	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/infrastructure/upstream"
)

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// NewHTTPErrorHandler translates domain and upstream errors into the JSON
// error envelope. CRM API messages pass through verbatim; each operation's
// fallback string covers responses with no usable message.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, payload := resolveError(err, log)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		if jsonErr := c.JSON(code, payload); jsonErr != nil {
			log.Error().Err(jsonErr).Msg("failed to write error response")
		}
	}
}

func resolveError(err error, log zerolog.Logger) (int, interface{}) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		return he.Code, errorResponse{Error: msg}
	}

	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, validationResponse{Error: "validation failed", Fields: ve.Fields}
	}

	fallback := ""
	var oe *handler.OpError
	if errors.As(err, &oe) {
		fallback = oe.Fallback
	}

	var ue *upstream.Error
	if errors.As(err, &ue) {
		msg := ue.Message
		if msg == "" {
			msg = fallback
		}
		if msg == "" {
			msg = http.StatusText(ue.StatusCode)
		}
		return ue.StatusCode, errorResponse{Error: msg}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, errorResponse{Error: orFallback(fallback, err.Error())}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: orFallback(fallback, "not found")}
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, errorResponse{Error: "not authenticated"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	}

	log.Error().Err(err).Msg("unhandled error")
	return http.StatusInternalServerError, errorResponse{Error: orFallback(fallback, "internal server error")}
}

func orFallback(fallback, def string) string {
	if fallback != "" {
		return fallback
	}
	return def
}
