package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

var _ ports.AuthService = (*AuthService)(nil)

// AuthService implements login, registration and password recovery on top
// of the gateway, persisting identity in the SessionStore.
type AuthService struct {
	gateway  ports.Gateway
	sessions *SessionStore
	gate     *AccessGate
	mailer   ports.RecoveryMailer
	log      zerolog.Logger
}

func NewAuthService(gateway ports.Gateway, sessions *SessionStore, gate *AccessGate, mailer ports.RecoveryMailer, log zerolog.Logger) *AuthService {
	return &AuthService{
		gateway:  gateway,
		sessions: sessions,
		gate:     gate,
		mailer:   mailer,
		log:      log.With().Str("component", "auth_service").Logger(),
	}
}

// Login authenticates against the gateway, stores the session and resolves
// where navigation resumes.
func (s *AuthService) Login(ctx context.Context, sid, email, password string) (*ports.LoginOutcome, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, domain.NewValidationError("login", "email y contraseña son obligatorios")
	}

	res, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if res.AccessToken == "" {
		return nil, &domain.Error{Kind: domain.KindRequestFailed, Op: "login", Message: "Error de autenticación"}
	}

	if err := s.sessions.SetSession(ctx, sid, res.AccessToken, res.User); err != nil {
		return nil, err
	}

	redirect := s.gate.ResumeAfterLogin(ctx, sid)
	s.log.Info().Str("user_id", res.User.ID).Str("role", string(res.User.Role)).Str("redirect", redirect).Msg("login")

	return &ports.LoginOutcome{User: res.User, Redirect: redirect}, nil
}

// Register creates an account. The caller navigates to login afterwards.
func (s *AuthService) Register(ctx context.Context, reg ports.Registration) (*domain.User, error) {
	user, err := s.gateway.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("email", reg.Email).Msg("user registered")
	return user, nil
}

var errIncompleteTicket = errors.New("incomplete recovery ticket")

// ForgotPassword asks the gateway to issue a recovery token and hands the
// ticket to the mailer. An incomplete ticket is a failure.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	ticket, err := s.gateway.ForgotPassword(ctx, email)
	if err != nil {
		return err
	}
	if ticket == nil || ticket.Token == "" || ticket.Name == "" || ticket.Email == "" {
		return &domain.Error{
			Kind:    domain.KindRequestFailed,
			Op:      "forgot password",
			Message: "No se pudo obtener los datos para el email.",
			Err:     errIncompleteTicket,
		}
	}
	if err := s.mailer.SendRecovery(ctx, *ticket); err != nil {
		s.log.Error().Err(err).Str("email", ticket.Email).Msg("recovery email failed")
		return &domain.Error{
			Kind:    domain.KindRequestFailed,
			Op:      "forgot password",
			Message: "No se pudo enviar el email de recuperación.",
			Err:     err,
		}
	}
	return nil
}

// ResetPassword sets a new password using a recovery token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return domain.NewValidationError("reset password", "Token inválido.")
	}
	return s.gateway.ResetPassword(ctx, token, newPassword)
}
