package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, sid, email, password string) (*ports.LoginOutcome, error) {
			if sid != testSID || email != "ana@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s %s", sid, email, password)
			}
			return &ports.LoginOutcome{User: domain.User{FirstName: "Ana"}, Redirect: ports.RouteUserAppointments}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/api/session/login", `{"email":"ana@example.com","password":"secret"}`, domain.Anonymous)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["redirect"] != ports.RouteUserAppointments {
		t.Fatalf("unexpected redirect: %v", resp["redirect"])
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string, string) (*ports.LoginOutcome, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/api/session/login", `{"email":"not-an-email"}`, domain.Anonymous)
	err := handler.Login(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthHandler_Login_BackendRejects(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string, string) (*ports.LoginOutcome, error) {
			return nil, &domain.Error{Kind: domain.KindRequestFailed, Status: 401, Message: "Credenciales inválidas"}
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/api/session/login", `{"email":"ana@example.com","password":"bad"}`, domain.Anonymous)
	err := handler.Login(c)
	if domain.UserMessage(err, "") != "Credenciales inválidas" {
		t.Fatalf("backend message must pass through, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Register / password recovery
// ---------------------------------------------------------------------------

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, reg ports.Registration) (*domain.User, error) {
			if reg.FirstName != "Ana" || reg.LastName != "Pérez" || reg.Phone != "1122334455" {
				t.Fatalf("unexpected registration: %+v", reg)
			}
			return &domain.User{ID: "u1", FirstName: reg.FirstName, Email: reg.Email, Role: domain.RoleUser}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := `{"nombre":"Ana","apellido":"Pérez","email":"ana@example.com","telefono":"1122334455","password":"secret1"}`
	c, rec := newContext(http.MethodPost, "/api/users/register", body, domain.Anonymous)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	body := `{"nombre":"Ana","apellido":"Pérez","email":"ana@example.com","telefono":"1","password":"123"}`
	c, _ := newContext(http.MethodPost, "/api/users/register", body, domain.Anonymous)
	err := handler.Register(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if msg := domain.UserMessage(err, ""); msg != "password debe tener al menos 6 caracteres" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	var gotEmail string
	stub := &stubAuthService{
		forgotFn: func(_ context.Context, email string) error {
			gotEmail = email
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/api/users/forgot-password", `{"email":"ana@example.com"}`, domain.Anonymous)
	if err := handler.ForgotPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotEmail != "ana@example.com" {
		t.Fatalf("unexpected email %q", gotEmail)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := body["token"]; ok || len(body) != 1 || body["message"] == "" {
		t.Fatalf("response must only confirm, got %v", body)
	}
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	var gotToken, gotPassword string
	stub := &stubAuthService{
		resetFn: func(_ context.Context, token, newPassword string) error {
			gotToken, gotPassword = token, newPassword
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/api/users/reset-password", `{"token":"reset-1","newPassword":"secret2"}`, domain.Anonymous)
	if err := handler.ResetPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || gotToken != "reset-1" || gotPassword != "secret2" {
		t.Fatalf("unexpected result %d %q %q", rec.Code, gotToken, gotPassword)
	}
}
