package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/SofiaGenchi/carwash-frontend/internal/api/metrics"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

// BookingOption customizes a BookingService.
type BookingOption func(*BookingService)

// WithClock overrides the time source.
func WithClock(now func() time.Time) BookingOption {
	return func(s *BookingService) { s.now = now }
}

// WithLocation sets the business time zone used to decide "today".
func WithLocation(loc *time.Location) BookingOption {
	return func(s *BookingService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithRoster replaces the daily slot roster.
func WithRoster(roster []domain.Slot) BookingOption {
	return func(s *BookingService) {
		if len(roster) > 0 {
			s.roster = roster
		}
	}
}

var _ ports.BookingService = (*BookingService)(nil)

// BookingService drives the booking wizard. Flow state lives in the
// FlowRepository so any replica can serve the next step.
type BookingService struct {
	gateway ports.Gateway
	flows   ports.FlowRepository
	guard   ports.SubmitGuard
	audit   ports.AuditSink

	roster []domain.Slot
	loc    *time.Location
	now    func() time.Time
	log    zerolog.Logger
}

func NewBookingService(gateway ports.Gateway, flows ports.FlowRepository, guard ports.SubmitGuard, audit ports.AuditSink, log zerolog.Logger, opts ...BookingOption) *BookingService {
	s := &BookingService{
		gateway: gateway,
		flows:   flows,
		guard:   guard,
		audit:   audit,
		roster:  domain.DefaultRoster,
		loc:     time.UTC,
		now:     time.Now,
		log:     log.With().Str("component", "booking_service").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens a new flow for sid with the active catalog loaded. A catalog
// failure still opens the flow, empty and carrying the error message.
func (s *BookingService) Start(ctx context.Context, sid string) (*ports.FlowView, error) {
	now := s.clock()
	flow := &domain.BookingFlow{
		ID:        uuid.NewString(),
		SessionID: sid,
		Step:      domain.StepSelectService,
		Catalog:   []domain.Service{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	services, err := s.gateway.ListServices(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("catalog unavailable")
		flow.Error = domain.MsgCatalogFailed
	} else {
		for _, svc := range services {
			if svc.IsActive {
				flow.Catalog = append(flow.Catalog, svc)
			}
		}
	}

	if err := s.flows.Save(ctx, flow); err != nil {
		return nil, fmt.Errorf("start flow: %w", err)
	}
	s.log.Debug().Str("flow_id", flow.ID).Int("services", len(flow.Catalog)).Msg("flow started")
	return s.view(flow), nil
}

// Get returns the current render model of a flow owned by sid.
func (s *BookingService) Get(ctx context.Context, sid, id string) (*ports.FlowView, error) {
	flow, err := s.load(ctx, sid, id)
	if err != nil {
		return nil, err
	}
	return s.view(flow), nil
}

// Filter narrows the visible catalog by name.
func (s *BookingService) Filter(ctx context.Context, sid, id, query string) (*ports.FlowView, error) {
	return s.mutate(ctx, sid, id, func(f *domain.BookingFlow) error {
		if f.Step != domain.StepSelectService {
			return domain.ErrInvalidTransition
		}
		f.Query = query
		return nil
	})
}

// SelectService marks the single chosen service. Selecting another replaces it.
func (s *BookingService) SelectService(ctx context.Context, sid, id, serviceID string) (*ports.FlowView, error) {
	return s.mutate(ctx, sid, id, func(f *domain.BookingFlow) error {
		if f.Step != domain.StepSelectService {
			return domain.ErrInvalidTransition
		}
		svc, ok := f.FindService(serviceID)
		if !ok {
			return domain.NewValidationError("select service", "Servicio no disponible")
		}
		f.Selected = &svc
		f.Error = ""
		return nil
	})
}

// SetDate chooses the day. A previously chosen time is kept; if it is no
// longer offered the view simply cannot advance.
func (s *BookingService) SetDate(ctx context.Context, sid, id, date string) (*ports.FlowView, error) {
	return s.mutate(ctx, sid, id, func(f *domain.BookingFlow) error {
		if f.Step != domain.StepSelectSlot {
			return domain.ErrInvalidTransition
		}
		if _, err := time.Parse(domain.DateLayout, date); err != nil {
			return domain.NewValidationError("select date", "Fecha inválida")
		}
		f.Date = date
		return nil
	})
}

// SetTime chooses one of the slots currently offered for the chosen date.
func (s *BookingService) SetTime(ctx context.Context, sid, id, raw string) (*ports.FlowView, error) {
	return s.mutate(ctx, sid, id, func(f *domain.BookingFlow) error {
		if f.Step != domain.StepSelectSlot {
			return domain.ErrInvalidTransition
		}
		if f.Date == "" {
			return domain.NewValidationError("select time", "Seleccioná una fecha primero")
		}
		slot, err := domain.ParseSlot(raw)
		if err != nil {
			return domain.NewValidationError("select time", "Horario inválido")
		}
		avail, err := domain.AvailableSlots(s.roster, f.Date, s.clock())
		if err != nil {
			return err
		}
		if !avail.Contains(slot) {
			return domain.NewValidationError("select time", "Horario no disponible")
		}
		f.Time = slot
		return nil
	})
}

// Next advances one step when the current step is complete.
func (s *BookingService) Next(ctx context.Context, sid, id string) (*ports.FlowView, error) {
	return s.mutate(ctx, sid, id, func(f *domain.BookingFlow) error {
		switch f.Step {
		case domain.StepSelectService:
			if f.Selected == nil {
				return domain.NewValidationError("next", "Seleccioná un servicio")
			}
			return s.transition(f, domain.StepSelectSlot)
		case domain.StepSelectSlot:
			if !s.canAdvanceSlot(f) {
				return domain.NewValidationError("next", "Seleccioná una fecha y un horario válidos")
			}
			return s.transition(f, domain.StepConfirm)
		default:
			return domain.ErrInvalidTransition
		}
	})
}

// Previous steps back. Inputs are retained.
func (s *BookingService) Previous(ctx context.Context, sid, id string) (*ports.FlowView, error) {
	return s.mutate(ctx, sid, id, func(f *domain.BookingFlow) error {
		switch f.Step {
		case domain.StepSelectSlot:
			return s.transition(f, domain.StepSelectService)
		case domain.StepConfirm:
			return s.transition(f, domain.StepSelectSlot)
		default:
			return domain.ErrInvalidTransition
		}
	})
}

// Submit creates the appointment for a flow in the confirm step. Backend
// rejections stay on the flow as a display message and the flow keeps its
// inputs. onCreated runs once after a successful creation.
//
// The flow is re-read once the submit guard is held, so a click that loaded
// it while another submit was in flight sees the outcome of that submit.
// Saves from the moment the flow is marked as submitting ignore caller
// cancellation: a browser that goes away mid-request must not leave the flow
// stuck in the submitting state.
func (s *BookingService) Submit(ctx context.Context, sid string, sess domain.Session, id string, onCreated func(domain.Appointment)) (*ports.FlowView, error) {
	if _, err := s.load(ctx, sid, id); err != nil {
		return nil, err
	}

	acquired, err := s.guard.Acquire(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	if !acquired {
		return nil, domain.ErrSubmissionInProgress
	}
	defer func() {
		if err := s.guard.Release(context.WithoutCancel(ctx), id); err != nil {
			s.log.Warn().Err(err).Str("flow_id", id).Msg("submit guard release failed")
		}
	}()

	flow, err := s.load(ctx, sid, id)
	if err != nil {
		return nil, err
	}
	if flow.Step != domain.StepConfirm {
		return nil, domain.ErrInvalidTransition
	}
	if flow.Submitting {
		return nil, domain.ErrSubmissionInProgress
	}

	flow.Submitting = true
	flow.Error = ""
	if err := s.save(ctx, flow); err != nil {
		return nil, err
	}
	// From here on every outcome must be written back.
	saveCtx := context.WithoutCancel(ctx)

	attempt := domain.BookingAttempt{
		FlowID:    flow.ID,
		SessionID: sid,
		Date:      flow.Date,
		Time:      flow.Time,
	}
	if sess.User != nil {
		attempt.UserID = sess.User.ID
	}
	if flow.Selected != nil {
		attempt.ServiceID = flow.Selected.ID
	}

	if !s.canAdvanceSlot(flow) {
		flow.Submitting = false
		flow.Error = domain.MsgInvalidDateOrTime
		s.record(attempt, domain.OutcomeRejected, flow.Error)
		return s.persist(saveCtx, flow)
	}

	appt, err := s.gateway.CreateAppointment(ctx, sess.Token, domain.NewAppointment{
		ServiceID: attempt.ServiceID,
		Date:      flow.Date,
		Time:      flow.Time,
	})
	if err != nil {
		flow.Submitting = false
		if errors.Is(err, domain.ErrAuthRequired) {
			if _, perr := s.persist(saveCtx, flow); perr != nil {
				s.log.Warn().Err(perr).Str("flow_id", flow.ID).Msg("flow save failed")
			}
			return nil, err
		}
		flow.Error = domain.BookingFailureMessage(err)
		outcome := domain.OutcomeFailed
		if flow.Error == domain.MsgInvalidDateOrTime {
			outcome = domain.OutcomeRejected
		}
		s.log.Warn().Err(err).Str("flow_id", flow.ID).Msg("booking rejected")
		s.record(attempt, outcome, domain.UserMessage(err, err.Error()))
		return s.persist(saveCtx, flow)
	}

	flow.Submitting = false
	flow.Appointment = appt
	if err := s.transition(flow, domain.StepConfirmed); err != nil {
		return nil, err
	}
	view, err := s.persist(saveCtx, flow)
	if err != nil {
		return nil, err
	}

	s.record(attempt, domain.OutcomeConfirmed, "")
	s.log.Info().Str("flow_id", flow.ID).Str("appointment_id", appt.ID).Msg("appointment booked")
	if onCreated != nil {
		onCreated(*appt)
	}
	return view, nil
}

// Restart discards the flow and opens a fresh one for the same session.
func (s *BookingService) Restart(ctx context.Context, sid, id string) (*ports.FlowView, error) {
	if _, err := s.load(ctx, sid, id); err != nil {
		return nil, err
	}
	if err := s.flows.Delete(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("flow_id", id).Msg("old flow delete failed")
	}
	return s.Start(ctx, sid)
}

func (s *BookingService) mutate(ctx context.Context, sid, id string, fn func(*domain.BookingFlow) error) (*ports.FlowView, error) {
	flow, err := s.load(ctx, sid, id)
	if err != nil {
		return nil, err
	}
	if flow.Step == domain.StepConfirmed {
		return nil, domain.ErrInvalidTransition
	}
	if flow.Submitting {
		return nil, domain.ErrSubmissionInProgress
	}
	if err := fn(flow); err != nil {
		return nil, err
	}
	return s.persist(ctx, flow)
}

func (s *BookingService) transition(f *domain.BookingFlow, next domain.Step) error {
	if !f.Step.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, f.Step, next)
	}
	f.Step = next
	f.Error = ""
	return nil
}

// load returns the flow only to the session that owns it.
func (s *BookingService) load(ctx context.Context, sid, id string) (*domain.BookingFlow, error) {
	flow, err := s.flows.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if flow.SessionID != sid {
		return nil, domain.ErrFlowNotFound
	}
	return flow, nil
}

func (s *BookingService) save(ctx context.Context, f *domain.BookingFlow) error {
	f.UpdatedAt = s.clock()
	return s.flows.Save(ctx, f)
}

func (s *BookingService) persist(ctx context.Context, f *domain.BookingFlow) (*ports.FlowView, error) {
	if err := s.save(ctx, f); err != nil {
		return nil, err
	}
	return s.view(f), nil
}

func (s *BookingService) record(a domain.BookingAttempt, outcome domain.BookingOutcome, msg string) {
	metrics.BookingAttemptsTotal.WithLabelValues(string(outcome)).Inc()
	if s.audit == nil {
		return
	}
	a.Outcome = outcome
	a.Message = msg
	a.At = s.clock()
	s.audit.Record(a)
}

func (s *BookingService) clock() time.Time {
	return s.now().In(s.loc)
}

func (s *BookingService) availability(f *domain.BookingFlow) domain.SlotAvailability {
	if f.Date == "" {
		return domain.SlotAvailability{}
	}
	avail, err := domain.AvailableSlots(s.roster, f.Date, s.clock())
	if err != nil {
		return domain.SlotAvailability{}
	}
	return avail
}

func (s *BookingService) canAdvanceSlot(f *domain.BookingFlow) bool {
	if f.Date == "" || f.Time == "" {
		return false
	}
	avail := s.availability(f)
	return !avail.PastDate && len(avail.Slots) > 0 && avail.Contains(f.Time)
}

func (s *BookingService) view(f *domain.BookingFlow) *ports.FlowView {
	v := &ports.FlowView{
		ID:          f.ID,
		Step:        f.Step,
		Services:    f.Visible(),
		Query:       f.Query,
		Selected:    f.Selected,
		Date:        f.Date,
		Time:        f.Time,
		Slots:       []domain.Slot{},
		Error:       f.Error,
		Submitting:  f.Submitting,
		Appointment: f.Appointment,
	}
	if v.Services == nil {
		v.Services = []domain.Service{}
	}

	switch f.Step {
	case domain.StepSelectService:
		v.CanAdvance = f.Selected != nil
	case domain.StepSelectSlot:
		avail := s.availability(f)
		if avail.Slots != nil {
			v.Slots = avail.Slots
		}
		v.PastDate = avail.PastDate
		v.CanAdvance = s.canAdvanceSlot(f)
	case domain.StepConfirm:
		v.CanAdvance = !f.Submitting && s.canAdvanceSlot(f)
	case domain.StepConfirmed:
		v.PaymentMethods = domain.PaymentMethods
		contact := domain.Contact
		v.Contact = &contact
	}
	return v
}
