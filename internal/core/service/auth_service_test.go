package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

func newAuthFixture(gw *stubGateway) (*AuthService, *SessionStore) {
	store, gate, _ := newGateFixture()
	return NewAuthService(gw, store, gate, &recordingMailer{}, zerolog.Nop()), store
}

func TestAuthService_Login_Success(t *testing.T) {
	gw := &stubGateway{
		login: func(_ context.Context, email, _ string) (*ports.LoginResult, error) {
			return &ports.LoginResult{AccessToken: "tok", User: domain.User{ID: "u1", Email: email, Role: domain.RoleAdmin}}, nil
		},
	}
	svc, store := newAuthFixture(gw)

	out, err := svc.Login(context.Background(), testSID, "admin@example.com", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if out.Redirect != ports.RouteLanding {
		t.Fatalf("expected default redirect, got %s", out.Redirect)
	}
	sess := store.GetSession(context.Background(), testSID)
	if !sess.IsAdmin() || sess.Token != "tok" {
		t.Fatalf("session not stored: %+v", sess)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	gw := &stubGateway{}
	svc, _ := newAuthFixture(gw)

	if _, err := svc.Login(context.Background(), testSID, " ", "pw"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if gw.count("Login") != 0 {
		t.Fatalf("gateway must not be called")
	}
}

func TestAuthService_Login_BackendMessagePreserved(t *testing.T) {
	gw := &stubGateway{
		login: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, &domain.Error{Kind: domain.KindRequestFailed, Status: 401, Message: "Credenciales inválidas"}
		},
	}
	svc, store := newAuthFixture(gw)

	_, err := svc.Login(context.Background(), testSID, "a@b.c", "bad")
	if got := domain.UserMessage(err, ""); got != "Credenciales inválidas" {
		t.Fatalf("expected backend message, got %q", got)
	}
	if store.GetSession(context.Background(), testSID).Authenticated() {
		t.Fatalf("failed login must not store a session")
	}
}

func TestAuthService_Login_EmptyToken(t *testing.T) {
	svc, store := newAuthFixture(&stubGateway{})

	if _, err := svc.Login(context.Background(), testSID, "a@b.c", "pw"); !errors.Is(err, domain.ErrRequestFailed) {
		t.Fatalf("expected request failed, got %v", err)
	}
	if store.GetSession(context.Background(), testSID).Authenticated() {
		t.Fatalf("no session expected")
	}
}

func TestAuthService_ForgotPassword_MailsTicket(t *testing.T) {
	gw := &stubGateway{
		forgotPassword: func(_ context.Context, email string) (*ports.RecoveryTicket, error) {
			return &ports.RecoveryTicket{Token: "rt", Name: "Ana", Email: email}, nil
		},
	}
	store, gate, _ := newGateFixture()
	mailer := &recordingMailer{}
	svc := NewAuthService(gw, store, gate, mailer, zerolog.Nop())

	if err := svc.ForgotPassword(context.Background(), "ana@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	sent := mailer.all()
	if len(sent) != 1 || sent[0].Token != "rt" || sent[0].Email != "ana@example.com" {
		t.Fatalf("expected the ticket to be mailed, got %+v", sent)
	}
}

func TestAuthService_ForgotPassword_IncompleteTicket(t *testing.T) {
	gw := &stubGateway{
		forgotPassword: func(context.Context, string) (*ports.RecoveryTicket, error) {
			return &ports.RecoveryTicket{Token: "rt"}, nil
		},
	}
	store, gate, _ := newGateFixture()
	mailer := &recordingMailer{}
	svc := NewAuthService(gw, store, gate, mailer, zerolog.Nop())

	err := svc.ForgotPassword(context.Background(), "ana@example.com")
	if got := domain.UserMessage(err, ""); got != "No se pudo obtener los datos para el email." {
		t.Fatalf("unexpected message %q", got)
	}
	if len(mailer.all()) != 0 {
		t.Fatalf("nothing must be mailed for an incomplete ticket")
	}
}

func TestAuthService_ForgotPassword_MailerFailure(t *testing.T) {
	gw := &stubGateway{
		forgotPassword: func(_ context.Context, email string) (*ports.RecoveryTicket, error) {
			return &ports.RecoveryTicket{Token: "rt", Name: "Ana", Email: email}, nil
		},
	}
	store, gate, _ := newGateFixture()
	svc := NewAuthService(gw, store, gate, &recordingMailer{err: errors.New("smtp down")}, zerolog.Nop())

	err := svc.ForgotPassword(context.Background(), "ana@example.com")
	if !errors.Is(err, domain.ErrRequestFailed) {
		t.Fatalf("expected request failed, got %v", err)
	}
	if got := domain.UserMessage(err, ""); got != "No se pudo enviar el email de recuperación." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestAuthService_ResetPassword_EmptyToken(t *testing.T) {
	gw := &stubGateway{}
	svc, _ := newAuthFixture(gw)

	if err := svc.ResetPassword(context.Background(), "", "newpass"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if gw.count("ResetPassword") != 0 {
		t.Fatalf("gateway must not be called")
	}
}
