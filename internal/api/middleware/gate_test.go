package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

type stubGate struct {
	decision ports.Decision
	enforced []ports.Decision
}

func (g *stubGate) Menu(domain.Session) ports.Menu { return ports.Menu{} }

func (g *stubGate) Authorize(domain.Session, ports.Access, string) ports.Decision {
	return g.decision
}

func (g *stubGate) Enforce(_ context.Context, _ string, d ports.Decision) error {
	g.enforced = append(g.enforced, d)
	return nil
}

func (g *stubGate) BookNow(context.Context, string) (string, error) { return "", nil }

func (g *stubGate) Logout(context.Context, string) (*ports.LogoutOutcome, error) { return nil, nil }

func gateContext(path string, sess domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextKeySID, "sid-1")
	c.Set(ContextKeySession, sess)
	return c, rec
}

func TestRequireAccess_Allowed(t *testing.T) {
	gate := &stubGate{decision: ports.Decision{Allowed: true}}
	c, rec := gateContext("/user-appointments", domain.Session{Token: "t"})

	called := false
	handler := RequireAccess(gate, ports.AccessUser)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected next to run, code %d", rec.Code)
	}
}

func TestRequireAccess_ViewRedirectsAndStoresIntent(t *testing.T) {
	gate := &stubGate{decision: ports.Decision{Redirect: ports.RouteLogin, Intent: ports.RouteUserAppointments}}
	c, rec := gateContext("/user-appointments", domain.Anonymous)

	handler := RequireAccess(gate, ports.AccessUser)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != ports.RouteLogin {
		t.Fatalf("expected 303 to /login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	if len(gate.enforced) != 1 || gate.enforced[0].Intent != ports.RouteUserAppointments {
		t.Fatalf("intent not stored: %+v", gate.enforced)
	}
}

func TestRequireAccess_APIAnonymousIsAuthRequired(t *testing.T) {
	gate := &stubGate{decision: ports.Decision{Redirect: ports.RouteLogin, Intent: "/api/booking/flows"}}
	c, _ := gateContext("/api/booking/flows", domain.Anonymous)

	err := RequireAccess(gate, ports.AccessUser)(func(echo.Context) error { return nil })(c)
	if !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("expected auth required, got %v", err)
	}
	if len(gate.enforced) != 0 {
		t.Fatalf("API routes must not store an intent")
	}
}

func TestRequireAccess_APIUserOnAdminIsForbidden(t *testing.T) {
	gate := &stubGate{decision: ports.Decision{Redirect: ports.RouteLanding}}
	c, _ := gateContext("/api/admin/users", domain.Session{Token: "t", User: &domain.User{Role: domain.RoleUser}})

	err := RequireAccess(gate, ports.AccessAdmin)(func(echo.Context) error { return nil })(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
