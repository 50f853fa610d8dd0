package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

// LogoutMessage is shown while the logout indicator is visible.
const LogoutMessage = "Sesión cerrada correctamente"

const defaultLogoutDelay = 1200 * time.Millisecond

var (
	publicNav = []ports.NavItem{
		{Label: "Inicio", Path: ports.RouteLanding, Anchor: "hero"},
		{Label: "Servicios", Path: ports.RouteLanding, Anchor: "servicios"},
		{Label: "Turnos", Path: ports.RouteUserAppointments},
		{Label: "Contacto", Path: ports.RouteLanding, Anchor: "contacto"},
	}
	guestNav = []ports.NavItem{
		{Label: "Login", Path: ports.RouteLogin},
		{Label: "Registrarse", Path: ports.RouteRegister},
		{Label: "Reservar turno", Path: ports.RouteBookNow},
	}
	authNav = []ports.NavItem{
		{Label: "Cerrar Sesión", Path: ports.RouteLogout},
	}
	adminNav = ports.NavItem{Label: "Panel Admin", Path: ports.RouteAdmin}
)

var _ ports.AccessGate = (*AccessGate)(nil)

// AccessGate decides reachability of views and composes the menu.
type AccessGate struct {
	sessions    *SessionStore
	logoutDelay time.Duration
	log         zerolog.Logger
}

func NewAccessGate(sessions *SessionStore, logoutDelay time.Duration, log zerolog.Logger) *AccessGate {
	if logoutDelay <= 0 {
		logoutDelay = defaultLogoutDelay
	}
	return &AccessGate{
		sessions:    sessions,
		logoutDelay: logoutDelay,
		log:         log.With().Str("component", "access_gate").Logger(),
	}
}

// Menu composes the navigation for sess.
func (g *AccessGate) Menu(sess domain.Session) ports.Menu {
	items := make([]ports.NavItem, 0, len(publicNav)+len(guestNav)+1)
	items = append(items, publicNav...)

	m := ports.Menu{Authenticated: sess.Authenticated(), Admin: sess.IsAdmin()}
	if !m.Authenticated {
		m.Items = append(items, guestNav...)
		return m
	}
	if m.Admin {
		items = append(items, adminNav)
	}
	m.Items = append(items, authNav...)
	if sess.User != nil {
		m.DisplayName = sess.User.DisplayName()
	}
	return m
}

// Authorize evaluates access for the view at path.
func (g *AccessGate) Authorize(sess domain.Session, access ports.Access, path string) ports.Decision {
	switch access {
	case ports.AccessUser:
		if sess.Authenticated() {
			return ports.Decision{Allowed: true}
		}
		return ports.Decision{Redirect: ports.RouteLogin, Intent: path}
	case ports.AccessAdmin:
		if sess.IsAdmin() {
			return ports.Decision{Allowed: true}
		}
		return ports.Decision{Redirect: ports.RouteLanding}
	default:
		return ports.Decision{Allowed: true}
	}
}

// Enforce applies a negative decision's side effects (storing the intent).
func (g *AccessGate) Enforce(ctx context.Context, sid string, d ports.Decision) error {
	if d.Allowed || d.Intent == "" {
		return nil
	}
	return g.sessions.RememberIntent(ctx, sid, d.Intent)
}

// BookNow resolves the "book now" action: straight to the booking view when
// signed in, otherwise to login with the booking view remembered.
func (g *AccessGate) BookNow(ctx context.Context, sid string) (string, error) {
	sess := g.sessions.GetSession(ctx, sid)
	d := g.Authorize(sess, ports.AccessUser, ports.RouteUserAppointments)
	if d.Allowed {
		return ports.RouteUserAppointments, nil
	}
	if err := g.Enforce(ctx, sid, d); err != nil {
		return "", err
	}
	return d.Redirect, nil
}

// ResumeAfterLogin consumes the stored intent once. It falls back to the
// landing route when nothing was stored or the store is unavailable.
func (g *AccessGate) ResumeAfterLogin(ctx context.Context, sid string) string {
	target, err := g.sessions.ConsumeIntent(ctx, sid)
	if err != nil {
		g.log.Warn().Err(err).Str("sid", sid).Msg("redirect intent unavailable")
		return ports.RouteLanding
	}
	if target == "" {
		return ports.RouteLanding
	}
	return target
}

// Logout clears the session and describes the transient indicator.
func (g *AccessGate) Logout(ctx context.Context, sid string) (*ports.LogoutOutcome, error) {
	if err := g.sessions.ClearSession(ctx, sid); err != nil {
		return nil, err
	}
	g.log.Info().Str("sid", sid).Msg("session closed")
	return &ports.LogoutOutcome{
		Message:  LogoutMessage,
		Delay:    g.logoutDelay,
		DelayMS:  g.logoutDelay.Milliseconds(),
		Redirect: ports.RouteLanding,
	}, nil
}
