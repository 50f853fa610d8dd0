package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Gateway stub: every operation is a func field; unset ones return zero values.
// ---------------------------------------------------------------------------

type stubGateway struct {
	mu    sync.Mutex
	calls map[string]int

	listServices        func(ctx context.Context) ([]domain.Service, error)
	login               func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	register            func(ctx context.Context, reg ports.Registration) (*domain.User, error)
	forgotPassword      func(ctx context.Context, email string) (*ports.RecoveryTicket, error)
	resetPassword       func(ctx context.Context, token, newPassword string) error
	listMyAppointments  func(ctx context.Context, token string) ([]domain.Appointment, error)
	createAppointment   func(ctx context.Context, token string, in domain.NewAppointment) (*domain.Appointment, error)
	cancelAppointment   func(ctx context.Context, token, id string) error
	listAllAppointments func(ctx context.Context, token string) ([]domain.Appointment, error)
	listUsers           func(ctx context.Context, token string) ([]domain.User, error)
	updateUser          func(ctx context.Context, token, id string, in ports.UserUpdate) (*domain.User, error)
	updateAppointment   func(ctx context.Context, token, id string, in domain.AppointmentUpdate) (*domain.Appointment, error)
	updateService       func(ctx context.Context, token, id string, in ports.ServiceUpdate) (*domain.Service, error)
}

func (g *stubGateway) hit(op string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.calls == nil {
		g.calls = make(map[string]int)
	}
	g.calls[op]++
}

func (g *stubGateway) count(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[op]
}

func (g *stubGateway) ListServices(ctx context.Context) ([]domain.Service, error) {
	g.hit("ListServices")
	if g.listServices == nil {
		return nil, nil
	}
	return g.listServices(ctx)
}

func (g *stubGateway) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	g.hit("Login")
	if g.login == nil {
		return &ports.LoginResult{}, nil
	}
	return g.login(ctx, email, password)
}

func (g *stubGateway) Register(ctx context.Context, reg ports.Registration) (*domain.User, error) {
	g.hit("Register")
	if g.register == nil {
		return &domain.User{Email: reg.Email}, nil
	}
	return g.register(ctx, reg)
}

func (g *stubGateway) ForgotPassword(ctx context.Context, email string) (*ports.RecoveryTicket, error) {
	g.hit("ForgotPassword")
	if g.forgotPassword == nil {
		return nil, nil
	}
	return g.forgotPassword(ctx, email)
}

func (g *stubGateway) ResetPassword(ctx context.Context, token, newPassword string) error {
	g.hit("ResetPassword")
	if g.resetPassword == nil {
		return nil
	}
	return g.resetPassword(ctx, token, newPassword)
}

func (g *stubGateway) ListMyAppointments(ctx context.Context, token string) ([]domain.Appointment, error) {
	g.hit("ListMyAppointments")
	if g.listMyAppointments == nil {
		return nil, nil
	}
	return g.listMyAppointments(ctx, token)
}

func (g *stubGateway) CreateAppointment(ctx context.Context, token string, in domain.NewAppointment) (*domain.Appointment, error) {
	g.hit("CreateAppointment")
	if g.createAppointment == nil {
		return &domain.Appointment{ID: "appt-1", ServiceRef: in.ServiceID, Date: in.Date, Time: in.Time, Status: domain.StatusPending}, nil
	}
	return g.createAppointment(ctx, token, in)
}

func (g *stubGateway) CancelAppointment(ctx context.Context, token, id string) error {
	g.hit("CancelAppointment")
	if g.cancelAppointment == nil {
		return nil
	}
	return g.cancelAppointment(ctx, token, id)
}

func (g *stubGateway) ListAllAppointments(ctx context.Context, token string) ([]domain.Appointment, error) {
	g.hit("ListAllAppointments")
	if g.listAllAppointments == nil {
		return nil, nil
	}
	return g.listAllAppointments(ctx, token)
}

func (g *stubGateway) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	g.hit("ListUsers")
	if g.listUsers == nil {
		return nil, nil
	}
	return g.listUsers(ctx, token)
}

func (g *stubGateway) UpdateUser(ctx context.Context, token, id string, in ports.UserUpdate) (*domain.User, error) {
	g.hit("UpdateUser")
	if g.updateUser == nil {
		return &domain.User{ID: id, FirstName: in.FirstName, Role: in.Role}, nil
	}
	return g.updateUser(ctx, token, id, in)
}

func (g *stubGateway) UpdateAppointment(ctx context.Context, token, id string, in domain.AppointmentUpdate) (*domain.Appointment, error) {
	g.hit("UpdateAppointment")
	if g.updateAppointment == nil {
		return &domain.Appointment{ID: id, Date: in.Date, Time: in.Time, Status: in.Status}, nil
	}
	return g.updateAppointment(ctx, token, id, in)
}

func (g *stubGateway) UpdateService(ctx context.Context, token, id string, in ports.ServiceUpdate) (*domain.Service, error) {
	g.hit("UpdateService")
	if g.updateService == nil {
		return &domain.Service{ID: id, Name: in.Name}, nil
	}
	return g.updateService(ctx, token, id, in)
}

// ---------------------------------------------------------------------------
// In-memory session repository
// ---------------------------------------------------------------------------

type memSessionRepo struct {
	mu        sync.Mutex
	tokens    map[string]string
	users     map[string][]byte
	redirects map[string]string
	loadErr   error
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{
		tokens:    make(map[string]string),
		users:     make(map[string][]byte),
		redirects: make(map[string]string),
	}
}

func (r *memSessionRepo) Load(_ context.Context, sid string) (string, []byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return "", nil, r.loadErr
	}
	return r.tokens[sid], r.users[sid], nil
}

func (r *memSessionRepo) Save(_ context.Context, sid, token string, user []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[sid] = token
	r.users[sid] = user
	return nil
}

func (r *memSessionRepo) Delete(_ context.Context, sid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, sid)
	delete(r.users, sid)
	return nil
}

func (r *memSessionRepo) SetRedirect(_ context.Context, sid, target string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.redirects[sid] = target
	return nil
}

func (r *memSessionRepo) PopRedirect(_ context.Context, sid string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	target := r.redirects[sid]
	delete(r.redirects, sid)
	return target, nil
}

// ---------------------------------------------------------------------------
// In-memory flow repository and submit guard
// ---------------------------------------------------------------------------

type memFlowRepo struct {
	mu    sync.Mutex
	flows map[string][]byte
}

func newMemFlowRepo() *memFlowRepo {
	return &memFlowRepo{flows: make(map[string][]byte)}
}

// Save stores a JSON copy so tests observe the same round trip Redis performs.
func (r *memFlowRepo) Save(_ context.Context, f *domain.BookingFlow) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flows[f.ID] = raw
	return nil
}

func (r *memFlowRepo) Get(_ context.Context, id string) (*domain.BookingFlow, error) {
	r.mu.Lock()
	raw, ok := r.flows[id]
	r.mu.Unlock()
	if !ok {
		return nil, domain.ErrFlowNotFound
	}
	var f domain.BookingFlow
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *memFlowRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.flows, id)
	return nil
}

type memGuard struct {
	mu   sync.Mutex
	held map[string]bool
}

func newMemGuard() *memGuard { return &memGuard{held: make(map[string]bool)} }

func (g *memGuard) Acquire(_ context.Context, id string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held[id] {
		return false, nil
	}
	g.held[id] = true
	return true, nil
}

func (g *memGuard) Release(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, id)
	return nil
}

type recordingSink struct {
	mu       sync.Mutex
	attempts []domain.BookingAttempt
}

func (s *recordingSink) Record(a domain.BookingAttempt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, a)
}

func (s *recordingSink) all() []domain.BookingAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.BookingAttempt, len(s.attempts))
	copy(out, s.attempts)
	return out
}

type recordingMailer struct {
	mu      sync.Mutex
	tickets []ports.RecoveryTicket
	err     error
}

func (m *recordingMailer) SendRecovery(_ context.Context, ticket ports.RecoveryTicket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.tickets = append(m.tickets, ticket)
	return nil
}

func (m *recordingMailer) all() []ports.RecoveryTicket {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.RecoveryTicket, len(m.tickets))
	copy(out, m.tickets)
	return out
}
