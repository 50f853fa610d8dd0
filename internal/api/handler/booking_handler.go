package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

// HeaderAppointmentID is set on a successful submit so the view can refresh
// the appointment list.
const HeaderAppointmentID = "X-Appointment-ID"

// BookingHandler drives the booking wizard. Every route is scoped to the
// caller's session; a flow id from another session is not found.
type BookingHandler struct {
	booking ports.BookingService
}

func NewBookingHandler(booking ports.BookingService) *BookingHandler {
	return &BookingHandler{booking: booking}
}

// Start opens a new flow at the service step.
//
// @Summary      Start a booking flow
// @Tags         booking
// @Produce      json
// @Success      201  {object}  ports.FlowView
// @Failure      401  {object}  errorResponse
// @Router       /api/booking/flows [post]
func (h *BookingHandler) Start(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	view, err := h.booking.Start(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, view)
}

// Get returns the flow with slots recomputed against the current time.
//
// @Summary      Get a booking flow
// @Tags         booking
// @Produce      json
// @Param        id   path      string  true  "Flow ID"
// @Success      200  {object}  ports.FlowView
// @Failure      404  {object}  errorResponse
// @Router       /api/booking/flows/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	return h.respond(c)(h.booking.Get(c.Request().Context(), sid, c.Param("id")))
}

// Filter narrows the visible catalog by name.
//
// @Summary      Filter services
// @Tags         booking
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Flow ID"
// @Param        body  body      filterRequest  true  "Search text"
// @Success      200   {object}  ports.FlowView
// @Failure      409   {object}  errorResponse
// @Router       /api/booking/flows/{id}/filter [post]
func (h *BookingHandler) Filter(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req filterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return h.respond(c)(h.booking.Filter(c.Request().Context(), sid, c.Param("id"), req.Query))
}

// SelectService chooses the service to book.
//
// @Summary      Select a service
// @Tags         booking
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Flow ID"
// @Param        body  body      selectServiceRequest  true  "Service"
// @Success      200   {object}  ports.FlowView
// @Failure      422   {object}  errorResponse
// @Router       /api/booking/flows/{id}/service [post]
func (h *BookingHandler) SelectService(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req selectServiceRequest
	if err := bindValid(c, "select service", &req); err != nil {
		return err
	}
	return h.respond(c)(h.booking.SelectService(c.Request().Context(), sid, c.Param("id"), req.ServiceID))
}

// SetDate picks the day and recomputes its slots.
//
// @Summary      Choose a date
// @Tags         booking
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Flow ID"
// @Param        body  body      dateRequest  true  "Date (YYYY-MM-DD)"
// @Success      200   {object}  ports.FlowView
// @Failure      422   {object}  errorResponse
// @Router       /api/booking/flows/{id}/date [post]
func (h *BookingHandler) SetDate(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req dateRequest
	if err := bindValid(c, "set date", &req); err != nil {
		return err
	}
	return h.respond(c)(h.booking.SetDate(c.Request().Context(), sid, c.Param("id"), req.Date))
}

// SetTime picks one of the offered slots.
//
// @Summary      Choose a time slot
// @Tags         booking
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Flow ID"
// @Param        body  body      timeRequest  true  "Slot label, e.g. 9:30hs"
// @Success      200   {object}  ports.FlowView
// @Failure      422   {object}  errorResponse
// @Router       /api/booking/flows/{id}/time [post]
func (h *BookingHandler) SetTime(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req timeRequest
	if err := bindValid(c, "set time", &req); err != nil {
		return err
	}
	return h.respond(c)(h.booking.SetTime(c.Request().Context(), sid, c.Param("id"), req.Time))
}

// Next advances one step when the current step is complete.
//
// @Summary      Next step
// @Tags         booking
// @Produce      json
// @Param        id   path      string  true  "Flow ID"
// @Success      200  {object}  ports.FlowView
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/booking/flows/{id}/next [post]
func (h *BookingHandler) Next(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	return h.respond(c)(h.booking.Next(c.Request().Context(), sid, c.Param("id")))
}

// Previous goes back one step, keeping the inputs.
//
// @Summary      Previous step
// @Tags         booking
// @Produce      json
// @Param        id   path      string  true  "Flow ID"
// @Success      200  {object}  ports.FlowView
// @Failure      409  {object}  errorResponse
// @Router       /api/booking/flows/{id}/previous [post]
func (h *BookingHandler) Previous(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	return h.respond(c)(h.booking.Previous(c.Request().Context(), sid, c.Param("id")))
}

// Submit books the appointment. A rejected booking is still a 200: the flow
// stays on the confirm step with Error set so the user can retry.
//
// @Summary      Submit the booking
// @Tags         booking
// @Produce      json
// @Param        id   path      string  true  "Flow ID"
// @Success      200  {object}  ports.FlowView
// @Failure      401  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/booking/flows/{id}/submit [post]
func (h *BookingHandler) Submit(c echo.Context) error {
	sid, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	onCreated := func(a domain.Appointment) {
		c.Response().Header().Set(HeaderAppointmentID, a.ID)
	}
	return h.respond(c)(h.booking.Submit(c.Request().Context(), sid, sess, c.Param("id"), onCreated))
}

// Restart discards a flow and opens a new one.
//
// @Summary      Start over
// @Tags         booking
// @Produce      json
// @Param        id   path      string  true  "Flow ID"
// @Success      201  {object}  ports.FlowView
// @Router       /api/booking/flows/{id}/restart [post]
func (h *BookingHandler) Restart(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	view, err := h.booking.Restart(c.Request().Context(), sid, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, view)
}

func (h *BookingHandler) respond(c echo.Context) func(*ports.FlowView, error) error {
	return func(view *ports.FlowView, err error) error {
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, view)
	}
}
