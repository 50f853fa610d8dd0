package domain

import (
	"fmt"
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Cancellable reports whether a user is offered the cancel action.
// No time-window rule is applied client-side; the gateway stays authoritative.
func (s AppointmentStatus) Cancellable() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Appointment is a booking as stored by the gateway. Service and user are
// references that must be resolved against separately fetched collections.
type Appointment struct {
	ID         string            `json:"id"`
	UserRef    string            `json:"user_id"`
	ServiceRef string            `json:"service_id"`
	Date       string            `json:"date"`
	Time       Slot              `json:"time"`
	Status     AppointmentStatus `json:"status"`
	Notes      string            `json:"notes,omitempty"`
}

// AppointmentView is an appointment joined with its service and user.
// Unresolved references hold placeholder entities and the matching flag is false.
type AppointmentView struct {
	Appointment
	Service         Service `json:"service"`
	User            User    `json:"user"`
	ServiceResolved bool    `json:"service_resolved"`
	UserResolved    bool    `json:"user_resolved"`
	Cancellable     bool    `json:"cancellable"`
}

// ActiveOnly drops cancelled appointments, as the "my appointments" list shows.
func ActiveOnly(views []AppointmentView) []AppointmentView {
	out := make([]AppointmentView, 0, len(views))
	for _, v := range views {
		if v.Status != StatusCancelled {
			out = append(out, v)
		}
	}
	return out
}

// NewAppointment is what the booking flow submits.
type NewAppointment struct {
	ServiceID string
	Date      string
	Time      Slot
}

// AppointmentUpdate carries an admin edit. UserRef and ServiceRef are the
// original references and are sent back untouched.
type AppointmentUpdate struct {
	Date       string
	Time       Slot
	Status     AppointmentStatus
	Notes      string
	UserRef    string
	ServiceRef string
}

// PlaceholderService stands in for a service reference that matches nothing.
func PlaceholderService(ref string) Service {
	return Service{Name: fmt.Sprintf("Service not found (ID: %s...)", shortRef(ref))}
}

// PlaceholderUser stands in for a user reference that matches nothing.
func PlaceholderUser(ref string) User {
	return User{FirstName: fmt.Sprintf("User not found (ID: %s...)", shortRef(ref)), Email: "N/A"}
}

func shortRef(ref string) string {
	if len(ref) > 8 {
		return ref[:8]
	}
	return ref
}

// BookingOutcome classifies a submission for the audit trail.
type BookingOutcome string

const (
	OutcomeConfirmed BookingOutcome = "confirmed"
	OutcomeRejected  BookingOutcome = "rejected"
	OutcomeFailed    BookingOutcome = "failed"
)

// BookingAttempt is one submission recorded in the audit trail.
type BookingAttempt struct {
	FlowID    string         `json:"flow_id"`
	SessionID string         `json:"-"`
	UserID    string         `json:"user_id,omitempty"`
	ServiceID string         `json:"service_id"`
	Date      string         `json:"date"`
	Time      Slot           `json:"time"`
	Outcome   BookingOutcome `json:"outcome"`
	Message   string         `json:"message,omitempty"`
	At        time.Time      `json:"at"`
}
