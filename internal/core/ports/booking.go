package ports

import "github.com/SofiaGenchi/carwash-frontend/internal/core/domain"

// FlowView is the render model of a booking flow. Slots, PastDate and
// CanAdvance are recomputed against the clock on every read.
type FlowView struct {
	ID             string              `json:"id"`
	Step           domain.Step         `json:"step"`
	Services       []domain.Service    `json:"services"`
	Query          string              `json:"query,omitempty"`
	Selected       *domain.Service     `json:"selected,omitempty"`
	Date           string              `json:"date,omitempty"`
	Time           domain.Slot         `json:"time,omitempty"`
	Slots          []domain.Slot       `json:"slots"`
	PastDate       bool                `json:"past_date"`
	CanAdvance     bool                `json:"can_advance"`
	Error          string              `json:"error,omitempty"`
	Submitting     bool                `json:"submitting"`
	Appointment    *domain.Appointment `json:"appointment,omitempty"`
	PaymentMethods []string            `json:"payment_methods,omitempty"`
	Contact        *domain.ContactInfo `json:"contact,omitempty"`
}

// LoginOutcome is what a successful login hands back to the view.
type LoginOutcome struct {
	User     domain.User `json:"user"`
	Redirect string      `json:"redirect"`
}

// AppointmentEdit is the admin form for an appointment. Clock is the "HH:MM"
// value of a time input.
type AppointmentEdit struct {
	Date       string
	Clock      string
	Status     domain.AppointmentStatus
	Notes      string
	UserRef    string
	ServiceRef string
}
