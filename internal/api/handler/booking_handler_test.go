package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

func withFlowID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func TestBookingHandler_Start(t *testing.T) {
	stub := &stubBooking{view: &ports.FlowView{ID: "f1", Step: domain.StepSelectService}}
	handler := NewBookingHandler(stub)

	c, rec := newContext(http.MethodPost, "/api/booking/flows", "", userSession)
	if err := handler.Start(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(stub.calls) != 1 || stub.calls[0] != "start:"+testSID {
		t.Fatalf("unexpected calls %v", stub.calls)
	}
}

func TestBookingHandler_StepsForwardArguments(t *testing.T) {
	tests := []struct {
		name string
		body string
		call func(h *BookingHandler, c echo.Context) error
		want string
	}{
		{"get", "", (*BookingHandler).Get, "get:" + testSID + ":f1"},
		{"filter", `{"query":"lav"}`, (*BookingHandler).Filter, "filter:" + testSID + ":f1:lav"},
		{"service", `{"service_id":"svc-basic"}`, (*BookingHandler).SelectService, "service:" + testSID + ":f1:svc-basic"},
		{"date", `{"date":"2025-03-11"}`, (*BookingHandler).SetDate, "date:" + testSID + ":f1:2025-03-11"},
		{"time", `{"time":"9:30hs"}`, (*BookingHandler).SetTime, "time:" + testSID + ":f1:9:30hs"},
		{"next", "", (*BookingHandler).Next, "next:" + testSID + ":f1"},
		{"previous", "", (*BookingHandler).Previous, "previous:" + testSID + ":f1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubBooking{view: &ports.FlowView{ID: "f1"}}
			handler := NewBookingHandler(stub)

			c, rec := newContext(http.MethodPost, "/api/booking/flows/f1/"+tt.name, tt.body, userSession)
			if err := tt.call(handler, withFlowID(c, "f1")); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if len(stub.calls) != 1 || stub.calls[0] != tt.want {
				t.Fatalf("expected call %q, got %v", tt.want, stub.calls)
			}
		})
	}
}

func TestBookingHandler_SetDate_RejectsBadLayout(t *testing.T) {
	stub := &stubBooking{view: &ports.FlowView{ID: "f1"}}
	handler := NewBookingHandler(stub)

	c, _ := newContext(http.MethodPost, "/api/booking/flows/f1/date", `{"date":"11/03/2025"}`, userSession)
	err := handler.SetDate(withFlowID(c, "f1"))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(stub.calls) != 0 {
		t.Fatalf("service must not be called")
	}
}

func TestBookingHandler_ServiceErrorsPropagate(t *testing.T) {
	stub := &stubBooking{err: domain.ErrFlowNotFound}
	handler := NewBookingHandler(stub)

	c, _ := newContext(http.MethodGet, "/api/booking/flows/other", "", userSession)
	if err := handler.Get(withFlowID(c, "other")); !errors.Is(err, domain.ErrFlowNotFound) {
		t.Fatalf("expected flow not found, got %v", err)
	}
}

func TestBookingHandler_Submit_SetsAppointmentHeader(t *testing.T) {
	stub := &stubBooking{
		view:    &ports.FlowView{ID: "f1", Step: domain.StepConfirmed},
		created: &domain.Appointment{ID: "appt-9"},
	}
	handler := NewBookingHandler(stub)

	c, rec := newContext(http.MethodPost, "/api/booking/flows/f1/submit", "", userSession)
	if err := handler.Submit(withFlowID(c, "f1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Header().Get(HeaderAppointmentID) != "appt-9" {
		t.Fatalf("expected appointment header, got %q", rec.Header().Get(HeaderAppointmentID))
	}
	if stub.lastSess.Token != userSession.Token {
		t.Fatalf("session must be forwarded to submit")
	}
}

func TestBookingHandler_Submit_InProgress(t *testing.T) {
	stub := &stubBooking{err: domain.ErrSubmissionInProgress}
	handler := NewBookingHandler(stub)

	c, rec := newContext(http.MethodPost, "/api/booking/flows/f1/submit", "", userSession)
	if err := handler.Submit(withFlowID(c, "f1")); !errors.Is(err, domain.ErrSubmissionInProgress) {
		t.Fatalf("expected in-progress error, got %v", err)
	}
	if rec.Header().Get(HeaderAppointmentID) != "" {
		t.Fatalf("no appointment header on failure")
	}
}

func TestBookingHandler_Restart(t *testing.T) {
	stub := &stubBooking{view: &ports.FlowView{ID: "f2", Step: domain.StepSelectService}}
	handler := NewBookingHandler(stub)

	c, rec := newContext(http.MethodPost, "/api/booking/flows/f1/restart", "", userSession)
	if err := handler.Restart(withFlowID(c, "f1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated || stub.calls[0] != "restart:"+testSID+":f1" {
		t.Fatalf("unexpected result %d %v", rec.Code, stub.calls)
	}
}
