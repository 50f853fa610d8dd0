package ports

import (
	"context"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
)

// SessionService exposes session identity to the transport layer.
type SessionService interface {
	GetSession(ctx context.Context, sid string) domain.Session
	Refresh(ctx context.Context, sid string) domain.Session
	Evict(sid string)
}

// AccessGate decides which views a session may reach.
type AccessGate interface {
	Menu(sess domain.Session) Menu
	Authorize(sess domain.Session, access Access, path string) Decision
	Enforce(ctx context.Context, sid string, d Decision) error
	BookNow(ctx context.Context, sid string) (string, error)
	Logout(ctx context.Context, sid string) (*LogoutOutcome, error)
}

type AuthService interface {
	Login(ctx context.Context, sid, email, password string) (*LoginOutcome, error)
	Register(ctx context.Context, reg Registration) (*domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// BookingService drives the booking wizard. Every call is scoped to the
// session that owns the flow.
type BookingService interface {
	Start(ctx context.Context, sid string) (*FlowView, error)
	Get(ctx context.Context, sid, id string) (*FlowView, error)
	Filter(ctx context.Context, sid, id, query string) (*FlowView, error)
	SelectService(ctx context.Context, sid, id, serviceID string) (*FlowView, error)
	SetDate(ctx context.Context, sid, id, date string) (*FlowView, error)
	SetTime(ctx context.Context, sid, id, slot string) (*FlowView, error)
	Next(ctx context.Context, sid, id string) (*FlowView, error)
	Previous(ctx context.Context, sid, id string) (*FlowView, error)
	Submit(ctx context.Context, sid string, sess domain.Session, id string, onCreated func(domain.Appointment)) (*FlowView, error)
	Restart(ctx context.Context, sid, id string) (*FlowView, error)
}

type AppointmentService interface {
	Catalog(ctx context.Context) ([]domain.Service, error)
	ListMine(ctx context.Context, token string) ([]domain.AppointmentView, error)
	Cancel(ctx context.Context, token, id string) ([]domain.AppointmentView, error)
}

type AdminService interface {
	ListUsers(ctx context.Context, token string) ([]domain.User, error)
	ListServices(ctx context.Context) ([]domain.Service, error)
	ListAppointments(ctx context.Context, token string) ([]domain.AppointmentView, error)
	UpdateUser(ctx context.Context, token, id string, in UserUpdate) (*domain.User, error)
	UpdateAppointment(ctx context.Context, token, id string, in AppointmentEdit) (*domain.Appointment, error)
	UpdateService(ctx context.Context, token, id string, in ServiceUpdate) (*domain.Service, error)
	BookingHistory(ctx context.Context, userID string) ([]domain.BookingAttempt, error)
}

// HealthChecker is a dependency checked by the readiness endpoint.
type HealthChecker interface {
	Name() string
	Ping(ctx context.Context) error
}
