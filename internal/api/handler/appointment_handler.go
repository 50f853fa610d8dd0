package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

// AppointmentHandler serves the public catalog and the caller's appointments.
type AppointmentHandler struct {
	appointments ports.AppointmentService
}

func NewAppointmentHandler(appointments ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

// Services lists the active catalog.
//
// @Summary      List services
// @Tags         services
// @Produce      json
// @Success      200  {object}  servicesResponse
// @Failure      502  {object}  errorResponse
// @Router       /api/services [get]
func (h *AppointmentHandler) Services(c echo.Context) error {
	services, err := h.appointments.Catalog(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, servicesResponse{Services: services})
}

// Mine lists the caller's active appointments, cancelled ones excluded.
//
// @Summary      My appointments
// @Tags         appointments
// @Produce      json
// @Success      200  {object}  appointmentsResponse
// @Failure      401  {object}  errorResponse
// @Router       /user-appointments [get]
func (h *AppointmentHandler) Mine(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	views, err := h.appointments.ListMine(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appointmentsResponse{Appointments: domain.ActiveOnly(views)})
}

// Cancel cancels one of the caller's appointments and returns the refreshed
// list. A refusal from the booking API is returned with its message as is.
//
// @Summary      Cancel an appointment
// @Tags         appointments
// @Produce      json
// @Param        id   path      string  true  "Appointment ID"
// @Success      200  {object}  appointmentsResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/appointments/{id} [delete]
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	views, err := h.appointments.Cancel(c.Request().Context(), sess.Token, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appointmentsResponse{Appointments: domain.ActiveOnly(views)})
}
