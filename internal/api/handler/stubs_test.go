package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/SofiaGenchi/carwash-frontend/internal/api/middleware"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

const testSID = "sid-test"

var (
	userSession  = domain.Session{Token: "tok-user", User: &domain.User{ID: "u1", FirstName: "Ana", Role: domain.RoleUser}}
	adminSession = domain.Session{Token: "tok-admin", User: &domain.User{ID: "a1", FirstName: "Root", Role: domain.RoleAdmin}}
)

// newContext builds an echo context as the Session middleware would leave it.
func newContext(method, target, body string, sess domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeySID, testSID)
	c.Set(middleware.ContextKeySession, sess)
	return c, rec
}

// --- Auth ---

type stubAuthService struct {
	loginFn    func(ctx context.Context, sid, email, password string) (*ports.LoginOutcome, error)
	registerFn func(ctx context.Context, reg ports.Registration) (*domain.User, error)
	forgotFn   func(ctx context.Context, email string) error
	resetFn    func(ctx context.Context, token, newPassword string) error
}

func (s *stubAuthService) Login(ctx context.Context, sid, email, password string) (*ports.LoginOutcome, error) {
	return s.loginFn(ctx, sid, email, password)
}

func (s *stubAuthService) Register(ctx context.Context, reg ports.Registration) (*domain.User, error) {
	return s.registerFn(ctx, reg)
}

func (s *stubAuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.forgotFn(ctx, email)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return s.resetFn(ctx, token, newPassword)
}

// --- Session / gate ---

type stubSessions struct {
	sessions map[string]domain.Session
}

func (s *stubSessions) GetSession(_ context.Context, sid string) domain.Session { return s.sessions[sid] }
func (s *stubSessions) Refresh(_ context.Context, sid string) domain.Session    { return s.sessions[sid] }
func (s *stubSessions) Evict(string)                                           {}

type stubGate struct {
	bookNowFn func(ctx context.Context, sid string) (string, error)
	logoutFn  func(ctx context.Context, sid string) (*ports.LogoutOutcome, error)
}

func (g *stubGate) Menu(sess domain.Session) ports.Menu {
	return ports.Menu{Authenticated: sess.Authenticated(), Admin: sess.IsAdmin()}
}

func (g *stubGate) Authorize(domain.Session, ports.Access, string) ports.Decision {
	return ports.Decision{Allowed: true}
}

func (g *stubGate) Enforce(context.Context, string, ports.Decision) error { return nil }

func (g *stubGate) BookNow(ctx context.Context, sid string) (string, error) {
	return g.bookNowFn(ctx, sid)
}

func (g *stubGate) Logout(ctx context.Context, sid string) (*ports.LogoutOutcome, error) {
	return g.logoutFn(ctx, sid)
}

// --- Booking ---

// stubBooking answers every step with view unless err is set; calls records
// "<method>:<sid>:<id>:<arg>" for assertions.
type stubBooking struct {
	view     *ports.FlowView
	err      error
	created  *domain.Appointment
	calls    []string
	lastSess domain.Session
}

func (s *stubBooking) answer(call string) (*ports.FlowView, error) {
	s.calls = append(s.calls, call)
	if s.err != nil {
		return nil, s.err
	}
	return s.view, nil
}

func (s *stubBooking) Start(_ context.Context, sid string) (*ports.FlowView, error) {
	return s.answer("start:" + sid)
}

func (s *stubBooking) Get(_ context.Context, sid, id string) (*ports.FlowView, error) {
	return s.answer("get:" + sid + ":" + id)
}

func (s *stubBooking) Filter(_ context.Context, sid, id, query string) (*ports.FlowView, error) {
	return s.answer("filter:" + sid + ":" + id + ":" + query)
}

func (s *stubBooking) SelectService(_ context.Context, sid, id, serviceID string) (*ports.FlowView, error) {
	return s.answer("service:" + sid + ":" + id + ":" + serviceID)
}

func (s *stubBooking) SetDate(_ context.Context, sid, id, date string) (*ports.FlowView, error) {
	return s.answer("date:" + sid + ":" + id + ":" + date)
}

func (s *stubBooking) SetTime(_ context.Context, sid, id, slot string) (*ports.FlowView, error) {
	return s.answer("time:" + sid + ":" + id + ":" + slot)
}

func (s *stubBooking) Next(_ context.Context, sid, id string) (*ports.FlowView, error) {
	return s.answer("next:" + sid + ":" + id)
}

func (s *stubBooking) Previous(_ context.Context, sid, id string) (*ports.FlowView, error) {
	return s.answer("previous:" + sid + ":" + id)
}

func (s *stubBooking) Submit(_ context.Context, sid string, sess domain.Session, id string, onCreated func(domain.Appointment)) (*ports.FlowView, error) {
	s.lastSess = sess
	if s.created != nil && s.err == nil {
		onCreated(*s.created)
	}
	return s.answer("submit:" + sid + ":" + id)
}

func (s *stubBooking) Restart(_ context.Context, sid, id string) (*ports.FlowView, error) {
	return s.answer("restart:" + sid + ":" + id)
}

// --- Appointments / admin ---

type stubAppointments struct {
	catalogFn  func(ctx context.Context) ([]domain.Service, error)
	listMineFn func(ctx context.Context, token string) ([]domain.AppointmentView, error)
	cancelFn   func(ctx context.Context, token, id string) ([]domain.AppointmentView, error)
}

func (s *stubAppointments) Catalog(ctx context.Context) ([]domain.Service, error) {
	return s.catalogFn(ctx)
}

func (s *stubAppointments) ListMine(ctx context.Context, token string) ([]domain.AppointmentView, error) {
	return s.listMineFn(ctx, token)
}

func (s *stubAppointments) Cancel(ctx context.Context, token, id string) ([]domain.AppointmentView, error) {
	return s.cancelFn(ctx, token, id)
}

type stubAdmin struct {
	listUsersFn         func(ctx context.Context, token string) ([]domain.User, error)
	listServicesFn      func(ctx context.Context) ([]domain.Service, error)
	listAppointmentsFn  func(ctx context.Context, token string) ([]domain.AppointmentView, error)
	updateUserFn        func(ctx context.Context, token, id string, in ports.UserUpdate) (*domain.User, error)
	updateAppointmentFn func(ctx context.Context, token, id string, in ports.AppointmentEdit) (*domain.Appointment, error)
	updateServiceFn     func(ctx context.Context, token, id string, in ports.ServiceUpdate) (*domain.Service, error)
	historyFn           func(ctx context.Context, userID string) ([]domain.BookingAttempt, error)
}

func (s *stubAdmin) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	return s.listUsersFn(ctx, token)
}

func (s *stubAdmin) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.listServicesFn(ctx)
}

func (s *stubAdmin) ListAppointments(ctx context.Context, token string) ([]domain.AppointmentView, error) {
	return s.listAppointmentsFn(ctx, token)
}

func (s *stubAdmin) UpdateUser(ctx context.Context, token, id string, in ports.UserUpdate) (*domain.User, error) {
	return s.updateUserFn(ctx, token, id, in)
}

func (s *stubAdmin) UpdateAppointment(ctx context.Context, token, id string, in ports.AppointmentEdit) (*domain.Appointment, error) {
	return s.updateAppointmentFn(ctx, token, id, in)
}

func (s *stubAdmin) UpdateService(ctx context.Context, token, id string, in ports.ServiceUpdate) (*domain.Service, error) {
	return s.updateServiceFn(ctx, token, id, in)
}

func (s *stubAdmin) BookingHistory(ctx context.Context, userID string) ([]domain.BookingAttempt, error) {
	return s.historyFn(ctx, userID)
}
