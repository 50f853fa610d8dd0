package gateway

import (
	"bytes"
	"encoding/json"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
)

// ref is an entity reference that the API sends either as an id string or
// as a populated object.
type ref string

func (r *ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = ref(s)
		return nil
	}
	var obj struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*r = ref(firstNonEmpty(obj.MongoID, obj.ID))
	return nil
}

type wireService struct {
	MongoID     string  `json:"_id"`
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Nombre      string  `json:"nombre"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
	Image       string  `json:"image"`
	IsActive    *bool   `json:"isActive"`
}

func (w wireService) toDomain() domain.Service {
	active := true
	if w.IsActive != nil {
		active = *w.IsActive
	}
	return domain.Service{
		ID:              firstNonEmpty(w.MongoID, w.ID),
		Name:            firstNonEmpty(w.Name, w.Nombre),
		Description:     w.Description,
		Price:           w.Price,
		DurationMinutes: w.Duration,
		ImageURL:        w.Image,
		IsActive:        active,
	}
}

type wireUser struct {
	MongoID  string `json:"_id,omitempty"`
	ID       string `json:"id,omitempty"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Email    string `json:"email"`
	Telefono string `json:"telefono,omitempty"`
	Role     string `json:"role,omitempty"`
	Password string `json:"password,omitempty"`
}

func (w wireUser) toDomain() domain.User {
	role := domain.Role(w.Role)
	if role == "" {
		role = domain.RoleUser
	}
	return domain.User{
		ID:        firstNonEmpty(w.MongoID, w.ID),
		FirstName: w.Nombre,
		LastName:  w.Apellido,
		Email:     w.Email,
		Phone:     w.Telefono,
		Role:      role,
	}
}

type wireAppointment struct {
	MongoID string `json:"_id"`
	ID      string `json:"id"`
	User    ref    `json:"user"`
	Service ref    `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
}

func (w wireAppointment) toDomain() domain.Appointment {
	status := domain.AppointmentStatus(w.Status)
	if status == "" {
		status = domain.StatusPending
	}
	return domain.Appointment{
		ID:         firstNonEmpty(w.MongoID, w.ID),
		UserRef:    string(w.User),
		ServiceRef: string(w.Service),
		Date:       calendarDate(w.Date),
		Time:       domain.SlotFromWire(w.Time),
		Status:     status,
		Notes:      w.Notes,
	}
}

// calendarDate keeps the YYYY-MM-DD prefix of an ISO timestamp.
func calendarDate(v string) string {
	if len(v) > len(domain.DateLayout) {
		return v[:len(domain.DateLayout)]
	}
	return v
}

// appointmentPayload is what create and update send.
type appointmentPayload struct {
	Service string  `json:"service,omitempty"`
	User    string  `json:"user,omitempty"`
	Date    string  `json:"date"`
	Time    string  `json:"time"`
	Status  string  `json:"status,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

type servicePayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
	IsActive    bool    `json:"isActive"`
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
