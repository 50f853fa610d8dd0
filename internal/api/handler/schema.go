package handler

import (
	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Session / account ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	FirstName string `json:"nombre"   validate:"required"`
	LastName  string `json:"apellido" validate:"required"`
	Email     string `json:"email"    validate:"required,email"`
	Phone     string `json:"telefono" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"       validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
	Menu          ports.Menu   `json:"menu"`
}

// --- Booking flow ---

type filterRequest struct {
	Query string `json:"query"`
}

type selectServiceRequest struct {
	ServiceID string `json:"service_id" validate:"required"`
}

type dateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type timeRequest struct {
	Time string `json:"time" validate:"required"`
}

// --- Appointments ---

type appointmentsResponse struct {
	Appointments []domain.AppointmentView `json:"appointments"`
}

type servicesResponse struct {
	Services []domain.Service `json:"services"`
}

// --- Admin ---

type usersResponse struct {
	Users []domain.User `json:"users"`
}

type updateUserRequest struct {
	FirstName string `json:"nombre"             validate:"required"`
	LastName  string `json:"apellido"           validate:"required"`
	Email     string `json:"email"              validate:"required,email"`
	Phone     string `json:"telefono"`
	Role      string `json:"role"               validate:"required,oneof=user admin"`
	Password  string `json:"password,omitempty" validate:"omitempty,min=6"`
}

type updateAppointmentRequest struct {
	Date      string `json:"date"       validate:"required,datetime=2006-01-02"`
	Time      string `json:"time"       validate:"required,datetime=15:04"`
	Status    string `json:"status"     validate:"required,oneof=pending confirmed cancelled completed"`
	Notes     string `json:"notes"`
	UserID    string `json:"user_id"`
	ServiceID string `json:"service_id"`
}

type updateServiceRequest struct {
	Name            string  `json:"name"             validate:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"            validate:"gte=0"`
	DurationMinutes int     `json:"duration_minutes" validate:"gte=0"`
	IsActive        bool    `json:"is_active"`
}

type bookingHistoryResponse struct {
	Attempts []domain.BookingAttempt `json:"attempts"`
}

// --- Health ---

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}
