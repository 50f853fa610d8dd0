package domain

import (
	"strings"
	"time"
)

// Step is the state of a booking flow.
type Step string

const (
	StepSelectService Step = "select_service"
	StepSelectSlot    Step = "select_slot"
	StepConfirm       Step = "confirm"
	StepConfirmed     Step = "confirmed"
)

// stepTransitions defines the allowed moves. Confirmed is terminal; a new
// booking starts a new flow.
var stepTransitions = map[Step][]Step{
	StepSelectService: {StepSelectSlot},
	StepSelectSlot:    {StepConfirm, StepSelectService},
	StepConfirm:       {StepConfirmed, StepSelectSlot},
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s Step) CanTransitionTo(next Step) bool {
	for _, allowed := range stepTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Messages shown by the confirmation step.
const (
	MsgInvalidDateOrTime = "Fecha u hora no válidos"
	MsgBookingFailed     = "Error al reservar turno"
	MsgCatalogFailed     = "Error al cargar servicios"
)

// Backend messages that mean the chosen date/time is no longer bookable.
var pastBookingMarkers = []string{
	"cannot book in the past",
	"no puedes reservar en fechas pasadas",
	"no puedes reservar en horarios pasados",
}

// BookingFailureMessage maps a submission error to what the confirm step shows.
func BookingFailureMessage(err error) string {
	msg := strings.ToLower(UserMessage(err, ""))
	for _, marker := range pastBookingMarkers {
		if strings.Contains(msg, marker) {
			return MsgInvalidDateOrTime
		}
	}
	return MsgBookingFailed
}

// BookingFlow is the persisted state of one booking wizard instance.
// Each instance is owned by exactly one browser session.
type BookingFlow struct {
	ID          string       `json:"id"`
	SessionID   string       `json:"session_id"`
	Step        Step         `json:"step"`
	Catalog     []Service    `json:"catalog"`
	Query       string       `json:"query,omitempty"`
	Selected    *Service     `json:"selected,omitempty"`
	Date        string       `json:"date,omitempty"`
	Time        Slot         `json:"time,omitempty"`
	Error       string       `json:"error,omitempty"`
	Submitting  bool         `json:"submitting"`
	Appointment *Appointment `json:"appointment,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Visible returns the catalog filtered by the current query (case-insensitive
// substring on the name).
func (f *BookingFlow) Visible() []Service {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return f.Catalog
	}
	out := make([]Service, 0, len(f.Catalog))
	for _, s := range f.Catalog {
		if s.Name != "" && strings.Contains(strings.ToLower(s.Name), q) {
			out = append(out, s)
		}
	}
	return out
}

// FindService looks up a catalog entry by id.
func (f *BookingFlow) FindService(id string) (Service, bool) {
	for _, s := range f.Catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// PaymentMethods and ContactInfo are shown once a booking is confirmed.
var PaymentMethods = []string{"mp", "tarjeta", "efectivo"}

type ContactInfo struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

var Contact = ContactInfo{Phone: "11-1234-5678", Email: "carwash@email.com"}
