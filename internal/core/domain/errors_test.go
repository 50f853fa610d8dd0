package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_IsMatchesKind(t *testing.T) {
	err := fmt.Errorf("wrap: %w", &Error{Kind: KindNetwork, Op: "list services", Message: "Error de red o servidor"})

	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected network sentinel to match")
	}
	if errors.Is(err, ErrRequestFailed) {
		t.Fatalf("request failed must not match a network error")
	}
}

func TestUserMessage(t *testing.T) {
	err := fmt.Errorf("ctx: %w", &Error{Kind: KindRequestFailed, Message: "Turno no encontrado"})
	if got := UserMessage(err, "fallback"); got != "Turno no encontrado" {
		t.Fatalf("got %q", got)
	}
	if got := UserMessage(errors.New("boom"), "fallback"); got != "fallback" {
		t.Fatalf("got %q", got)
	}
}

func TestBookingFailureMessage(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"Cannot book in the past", MsgInvalidDateOrTime},
		{"No puedes reservar en fechas pasadas", MsgInvalidDateOrTime},
		{"Error: no puedes reservar en horarios pasados.", MsgInvalidDateOrTime},
		{"Servicio inactivo", MsgBookingFailed},
		{"", MsgBookingFailed},
	}
	for _, tt := range tests {
		got := BookingFailureMessage(&Error{Kind: KindRequestFailed, Message: tt.msg})
		if got != tt.want {
			t.Fatalf("%q: got %q, want %q", tt.msg, got, tt.want)
		}
	}
}

func TestStep_CanTransitionTo(t *testing.T) {
	if !StepSelectService.CanTransitionTo(StepSelectSlot) {
		t.Fatalf("select_service -> select_slot must be allowed")
	}
	if StepSelectService.CanTransitionTo(StepConfirm) {
		t.Fatalf("skipping the slot step must be refused")
	}
	if StepConfirmed.CanTransitionTo(StepSelectService) {
		t.Fatalf("confirmed is terminal")
	}
}

func TestSession_Roles(t *testing.T) {
	if Anonymous.Authenticated() || Anonymous.IsAdmin() {
		t.Fatalf("anonymous must have no privileges")
	}
	// A user record without a token is not a session.
	s := Session{User: &User{Role: RoleAdmin}}
	if s.IsAdmin() {
		t.Fatalf("admin role without token must not count")
	}
}

func TestService_PriceLabel(t *testing.T) {
	if got := (Service{Price: 1500000}).PriceLabel(); got != "ARS 1500000" {
		t.Fatalf("got %q", got)
	}
}
