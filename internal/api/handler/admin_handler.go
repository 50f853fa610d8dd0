package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

// AdminHandler backs the admin panel. Every route sits behind the admin gate.
type AdminHandler struct {
	admin ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Dashboard is the panel's landing view: every appointment, enriched.
//
// @Summary      Admin panel
// @Tags         admin
// @Produce      json
// @Success      200  {object}  appointmentsResponse
// @Success      303
// @Router       /admin [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	return h.ListAppointments(c)
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Success      200  {object}  usersResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	users, err := h.admin.ListUsers(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersResponse{Users: users})
}

// ListAppointments handles GET /api/admin/appointments.
//
// @Summary      List all appointments
// @Tags         admin
// @Produce      json
// @Success      200  {object}  appointmentsResponse
// @Failure      403  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /api/admin/appointments [get]
func (h *AdminHandler) ListAppointments(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	views, err := h.admin.ListAppointments(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appointmentsResponse{Appointments: views})
}

// ListServices handles GET /api/admin/services. Inactive services are included.
//
// @Summary      List all services
// @Tags         admin
// @Produce      json
// @Success      200  {object}  servicesResponse
// @Router       /api/admin/services [get]
func (h *AdminHandler) ListServices(c echo.Context) error {
	services, err := h.admin.ListServices(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, servicesResponse{Services: services})
}

// UpdateUser handles PUT /api/admin/users/:id.
//
// @Summary      Update a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "User fields; password only when changing it"
// @Success      200   {object}  domain.User
// @Failure      422   {object}  errorResponse
// @Router       /api/admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req updateUserRequest
	if err := bindValid(c, "update user", &req); err != nil {
		return err
	}
	user, err := h.admin.UpdateUser(c.Request().Context(), sess.Token, c.Param("id"), toUserUpdate(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateAppointment handles PUT /api/admin/appointments/:id. Time is the
// HH:MM value of the edit form.
//
// @Summary      Update an appointment
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "Appointment ID"
// @Param        body  body      updateAppointmentRequest  true  "Appointment fields"
// @Success      200   {object}  domain.Appointment
// @Failure      422   {object}  errorResponse
// @Router       /api/admin/appointments/{id} [put]
func (h *AdminHandler) UpdateAppointment(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req updateAppointmentRequest
	if err := bindValid(c, "update appointment", &req); err != nil {
		return err
	}
	appt, err := h.admin.UpdateAppointment(c.Request().Context(), sess.Token, c.Param("id"), toAppointmentEdit(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appt)
}

// UpdateService handles PUT /api/admin/services/:id.
//
// @Summary      Update a service
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Service ID"
// @Param        body  body      updateServiceRequest  true  "Service fields"
// @Success      200   {object}  domain.Service
// @Failure      422   {object}  errorResponse
// @Router       /api/admin/services/{id} [put]
func (h *AdminHandler) UpdateService(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req updateServiceRequest
	if err := bindValid(c, "update service", &req); err != nil {
		return err
	}
	svc, err := h.admin.UpdateService(c.Request().Context(), sess.Token, c.Param("id"), toServiceUpdate(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, svc)
}

// BookingHistory handles GET /api/admin/users/:id/bookings, the recorded
// booking attempts of one user, newest first.
//
// @Summary      Booking attempts of a user
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  bookingHistoryResponse
// @Router       /api/admin/users/{id}/bookings [get]
func (h *AdminHandler) BookingHistory(c echo.Context) error {
	attempts, err := h.admin.BookingHistory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookingHistoryResponse{Attempts: attempts})
}
