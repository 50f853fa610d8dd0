package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

// RequireAccess guards a route before its handler fetches anything. Views get
// a 303 redirect (storing the login intent when one applies); /api routes get
// a JSON 401 or 403.
func RequireAccess(gate ports.AccessGate, access ports.Access) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := CurrentSession(c)
			path := c.Request().URL.Path

			d := gate.Authorize(sess, access, path)
			if d.Allowed {
				return next(c)
			}

			if strings.HasPrefix(path, "/api/") {
				if sess.Authenticated() {
					return domain.ErrForbidden
				}
				return domain.NewAuthRequiredError("authorize")
			}

			if err := gate.Enforce(c.Request().Context(), SessionID(c), d); err != nil {
				return err
			}
			return c.Redirect(http.StatusSeeOther, d.Redirect)
		}
	}
}
