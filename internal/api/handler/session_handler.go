package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

// SessionHandler exposes session identity, the header menu and logout.
type SessionHandler struct {
	sessions ports.SessionService
	gate     ports.AccessGate
}

func NewSessionHandler(sessions ports.SessionService, gate ports.AccessGate) *SessionHandler {
	return &SessionHandler{sessions: sessions, gate: gate}
}

// Current reports who is signed in.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	sess := h.sessions.GetSession(c.Request().Context(), sid)
	return c.JSON(http.StatusOK, toSessionResponse(sess, h.gate.Menu(sess)))
}

// Nav returns the header menu for the caller.
//
// @Summary      Navigation menu
// @Tags         session
// @Produce      json
// @Success      200  {object}  ports.Menu
// @Router       /api/nav [get]
func (h *SessionHandler) Nav(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	sess := h.sessions.GetSession(c.Request().Context(), sid)
	return c.JSON(http.StatusOK, h.gate.Menu(sess))
}

// BookNow sends signed-in users to their appointments and everyone else to
// login, remembering where to resume.
//
// @Summary      Book now
// @Tags         session
// @Success      303
// @Router       /book-now [get]
func (h *SessionHandler) BookNow(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	target, err := h.gate.BookNow(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// Logout clears the session. The view shows Message for DelayMS and then
// navigates to Redirect.
//
// @Summary      Logout
// @Tags         session
// @Produce      json
// @Success      200  {object}  ports.LogoutOutcome
// @Failure      500  {object}  errorResponse
// @Router       /api/session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	out, err := h.gate.Logout(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
