package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

var _ ports.AdminService = (*AdminService)(nil)

// AdminService backs the admin panel.
type AdminService struct {
	gateway ports.Gateway
	audit   ports.AuditRepository
	log     zerolog.Logger
}

// NewAdminService wires the panel. audit may be nil when no audit store is configured.
func NewAdminService(gateway ports.Gateway, audit ports.AuditRepository, log zerolog.Logger) *AdminService {
	return &AdminService{
		gateway: gateway,
		audit:   audit,
		log:     log.With().Str("component", "admin_service").Logger(),
	}
}

func (s *AdminService) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	return s.gateway.ListUsers(ctx, token)
}

// ListServices returns the full catalog, inactive services included.
func (s *AdminService) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.gateway.ListServices(ctx)
}

// ListAppointments fetches appointments, users and services concurrently and
// joins them. Any failed fetch fails the listing.
func (s *AdminService) ListAppointments(ctx context.Context, token string) ([]domain.AppointmentView, error) {
	var (
		appts    []domain.Appointment
		users    []domain.User
		services []domain.Service
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		appts, err = s.gateway.ListAllAppointments(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.gateway.ListUsers(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		services, err = s.gateway.ListServices(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if users == nil {
		users = []domain.User{}
	}
	return NewDirectory(services, users, s.log).Enrich(appts), nil
}

// UpdateUser edits a user. An empty password is never sent.
func (s *AdminService) UpdateUser(ctx context.Context, token, id string, in ports.UserUpdate) (*domain.User, error) {
	if in.Role != domain.RoleUser && in.Role != domain.RoleAdmin {
		return nil, domain.NewValidationError("update user", "rol inválido")
	}
	u, err := s.gateway.UpdateUser(ctx, token, id, in)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id).Msg("user updated")
	return u, nil
}

// UpdateAppointment converts the time input to a slot and sends the edit with
// the original references.
func (s *AdminService) UpdateAppointment(ctx context.Context, token, id string, in ports.AppointmentEdit) (*domain.Appointment, error) {
	slot, err := domain.ParseSlot(in.Clock)
	if err != nil {
		return nil, domain.NewValidationError("update appointment", fmt.Sprintf("hora inválida: %q", in.Clock))
	}
	if !in.Status.Valid() {
		return nil, domain.NewValidationError("update appointment", fmt.Sprintf("estado inválido: %q", in.Status))
	}

	a, err := s.gateway.UpdateAppointment(ctx, token, id, domain.AppointmentUpdate{
		Date:       in.Date,
		Time:       slot,
		Status:     in.Status,
		Notes:      in.Notes,
		UserRef:    in.UserRef,
		ServiceRef: in.ServiceRef,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("appointment_id", id).Str("status", string(in.Status)).Msg("appointment updated")
	return a, nil
}

func (s *AdminService) UpdateService(ctx context.Context, token, id string, in ports.ServiceUpdate) (*domain.Service, error) {
	svc, err := s.gateway.UpdateService(ctx, token, id, in)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("service_id", id).Msg("service updated")
	return svc, nil
}

const bookingHistoryLimit = 50

// BookingHistory returns the recorded booking attempts of a user.
func (s *AdminService) BookingHistory(ctx context.Context, userID string) ([]domain.BookingAttempt, error) {
	if s.audit == nil {
		return []domain.BookingAttempt{}, nil
	}
	attempts, err := s.audit.ListByUser(ctx, userID, bookingHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("booking history: %w", err)
	}
	return attempts, nil
}
