package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
)

// ListMyAppointments returns the appointments of the token's owner.
func (c *Client) ListMyAppointments(ctx context.Context, token string) ([]domain.Appointment, error) {
	return c.listAppointments(ctx, call{
		op:       "list appointments",
		method:   http.MethodGet,
		path:     "/appointments",
		token:    token,
		auth:     true,
		fallback: "Error fetching appointments",
	})
}

// ListAllAppointments returns every appointment. Admin only.
func (c *Client) ListAllAppointments(ctx context.Context, token string) ([]domain.Appointment, error) {
	return c.listAppointments(ctx, call{
		op:       "list all appointments",
		method:   http.MethodGet,
		path:     "/appointments/all",
		token:    token,
		auth:     true,
		fallback: "Error fetching appointments",
	})
}

func (c *Client) listAppointments(ctx context.Context, req call) ([]domain.Appointment, error) {
	raw, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	wire, err := decodeList[wireAppointment](raw, "appointments", "data")
	if err != nil {
		return nil, fmt.Errorf("%s: decode: %w", req.op, err)
	}
	out := make([]domain.Appointment, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDomain())
	}
	return out, nil
}

// CreateAppointment books a slot. Missing fields fail before any request.
func (c *Client) CreateAppointment(ctx context.Context, token string, in domain.NewAppointment) (*domain.Appointment, error) {
	if token == "" {
		return nil, domain.NewAuthRequiredError("create appointment")
	}
	if in.ServiceID == "" || in.Date == "" || in.Time == "" {
		return nil, domain.NewValidationError("create appointment", "Datos incompletos: se requieren serviceId, date y time.")
	}

	raw, err := c.do(ctx, call{
		op:     "create appointment",
		method: http.MethodPost,
		path:   "/appointments",
		token:  token,
		auth:   true,
		body: appointmentPayload{
			Service: in.ServiceID,
			Date:    in.Date,
			Time:    in.Time.Wire(),
		},
		fallback: "Error al reservar turno",
	})
	if err != nil {
		return nil, err
	}

	w, err := decodeOne[wireAppointment](raw, "appointment")
	if err != nil {
		return nil, fmt.Errorf("create appointment: decode: %w", err)
	}
	appt := w.toDomain()
	if appt.ServiceRef == "" {
		appt.ServiceRef = in.ServiceID
	}
	if appt.Date == "" {
		appt.Date = in.Date
	}
	if appt.Time == "" {
		appt.Time = in.Time
	}
	return &appt, nil
}

// CancelAppointment cancels one of the caller's appointments.
func (c *Client) CancelAppointment(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, call{
		op:       "cancel appointment",
		method:   http.MethodDelete,
		path:     "/appointments/" + url.PathEscape(id),
		token:    token,
		auth:     true,
		fallback: "Error al cancelar el turno",
	})
	return err
}

// UpdateAppointment edits an appointment, sending the original references back.
func (c *Client) UpdateAppointment(ctx context.Context, token, id string, in domain.AppointmentUpdate) (*domain.Appointment, error) {
	notes := in.Notes
	raw, err := c.do(ctx, call{
		op:     "update appointment",
		method: http.MethodPut,
		path:   "/appointments/" + url.PathEscape(id),
		token:  token,
		auth:   true,
		body: appointmentPayload{
			Service: in.ServiceRef,
			User:    in.UserRef,
			Date:    in.Date,
			Time:    in.Time.Wire(),
			Status:  string(in.Status),
			Notes:   &notes,
		},
		fallback: "Error updating appointment",
	})
	if err != nil {
		return nil, err
	}

	w, err := decodeOne[wireAppointment](raw, "appointment")
	if err != nil {
		return nil, fmt.Errorf("update appointment: decode: %w", err)
	}
	appt := w.toDomain()
	if appt.ID == "" {
		appt.ID = id
	}
	return &appt, nil
}
