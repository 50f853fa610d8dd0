package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
	"github.com/SofiaGenchi/carwash-frontend/internal/infrastructure/gateway"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to their HTTP status codes.
//   - Passes booking API messages through so the view can show them verbatim.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var de *domain.Error
	if errors.As(err, &de) {
		switch de.Kind {
		case domain.KindValidation:
			return http.StatusUnprocessableEntity, de.Message
		case domain.KindAuthRequired:
			return http.StatusUnauthorized, de.Message
		case domain.KindRequestFailed:
			if de.Status >= 400 && de.Status < 500 {
				return de.Status, de.Message
			}
			log.Warn().Err(err).Int("upstream_status", de.Status).Str("path", c.Path()).Msg("booking API failure")
			return http.StatusBadGateway, de.Message
		case domain.KindNetwork:
			return http.StatusBadGateway, gateway.MsgNetwork
		}
	}

	switch {
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Acceso denegado"
	case errors.Is(err, domain.ErrFlowNotFound):
		return http.StatusNotFound, "Reserva no encontrada"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "Paso de reserva no válido"
	case errors.Is(err, domain.ErrSubmissionInProgress):
		return http.StatusConflict, "La reserva ya se está procesando"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
