package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

var _ ports.AppointmentService = (*AppointmentService)(nil)

// AppointmentService serves the "my appointments" view.
type AppointmentService struct {
	gateway ports.Gateway
	log     zerolog.Logger
}

func NewAppointmentService(gateway ports.Gateway, log zerolog.Logger) *AppointmentService {
	return &AppointmentService{
		gateway: gateway,
		log:     log.With().Str("component", "appointment_service").Logger(),
	}
}

// ListMine returns the caller's appointments joined with their services.
// When the catalog cannot be fetched the list still renders with placeholders.
func (s *AppointmentService) ListMine(ctx context.Context, token string) ([]domain.AppointmentView, error) {
	appts, err := s.gateway.ListMyAppointments(ctx, token)
	if err != nil {
		return nil, err
	}

	services, err := s.gateway.ListServices(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("services unavailable for enrichment")
		services = nil
	}

	return NewDirectory(services, nil, s.log).Enrich(appts), nil
}

// Cancel cancels one appointment and returns the refreshed list. On failure
// nothing is refetched and the gateway's message is preserved.
func (s *AppointmentService) Cancel(ctx context.Context, token, id string) ([]domain.AppointmentView, error) {
	if id == "" {
		return nil, domain.NewValidationError("cancel appointment", "id de turno requerido")
	}
	if err := s.gateway.CancelAppointment(ctx, token, id); err != nil {
		s.log.Warn().Err(err).Str("appointment_id", id).Msg("cancel failed")
		return nil, err
	}
	s.log.Info().Str("appointment_id", id).Msg("appointment cancelled")

	views, err := s.ListMine(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("refresh after cancel: %w", err)
	}
	return views, nil
}

// Catalog lists the services offered on the landing page. Inactive services
// are hidden.
func (s *AppointmentService) Catalog(ctx context.Context) ([]domain.Service, error) {
	all, err := s.gateway.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]domain.Service, 0, len(all))
	for _, svc := range all {
		if svc.IsActive {
			active = append(active, svc)
		}
	}
	return active, nil
}
