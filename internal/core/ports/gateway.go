package ports

import (
	"context"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
)

// LoginResult is the gateway's answer to a successful login.
type LoginResult struct {
	AccessToken string
	User        domain.User
}

// Registration carries the sign-up form.
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

// RecoveryTicket is issued by forgot-password and consumed by the external mailer.
type RecoveryTicket struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserUpdate carries an admin edit of a user. Password is only sent when set.
type UserUpdate struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Role      domain.Role
	Password  string
}

// ServiceUpdate carries an admin edit of a service.
type ServiceUpdate struct {
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
	IsActive        bool
}

// Gateway is the typed client for the external booking API. Every backend
// request of the portal goes through it. Token is the stored access token;
// operations that need one fail with domain.ErrAuthRequired when it is empty.
type Gateway interface {
	ListServices(ctx context.Context) ([]domain.Service, error)

	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, reg Registration) (*domain.User, error)
	ForgotPassword(ctx context.Context, email string) (*RecoveryTicket, error)
	ResetPassword(ctx context.Context, token, newPassword string) error

	ListMyAppointments(ctx context.Context, token string) ([]domain.Appointment, error)
	CreateAppointment(ctx context.Context, token string, in domain.NewAppointment) (*domain.Appointment, error)
	CancelAppointment(ctx context.Context, token, id string) error

	ListAllAppointments(ctx context.Context, token string) ([]domain.Appointment, error)
	ListUsers(ctx context.Context, token string) ([]domain.User, error)
	UpdateUser(ctx context.Context, token, id string, in UserUpdate) (*domain.User, error)
	UpdateAppointment(ctx context.Context, token, id string, in domain.AppointmentUpdate) (*domain.Appointment, error)
	UpdateService(ctx context.Context, token, id string, in ServiceUpdate) (*domain.Service, error)
}
