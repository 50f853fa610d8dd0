package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SofiaGenchi/carwash-frontend/internal/api/middleware"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
)

// ctxSession returns the session id and identity injected by the Session
// middleware. An empty sid means the middleware did not run, which is a
// wiring bug rather than a client error, but the request is still refused.
func ctxSession(c echo.Context) (string, domain.Session, error) {
	sid := middleware.SessionID(c)
	if sid == "" {
		return "", domain.Anonymous, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sid, middleware.CurrentSession(c), nil
}

// bindValid binds the request and runs struct validation. Binding failures
// are a 400; validation failures become domain validation errors.
func bindValid(c echo.Context, op string, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return domain.NewValidationError(op, err.Error())
	}
	return nil
}
