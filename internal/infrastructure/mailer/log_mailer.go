// Package mailer holds the delivery side of password recovery. Email itself
// is sent by an external service; LogMailer records the hand-off.
package mailer

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

var _ ports.RecoveryMailer = (*LogMailer)(nil)

// LogMailer logs each recovery hand-off without the token.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log.With().Str("component", "recovery_mailer").Logger()}
}

func (m *LogMailer) SendRecovery(_ context.Context, ticket ports.RecoveryTicket) error {
	m.log.Info().Str("email", ticket.Email).Str("name", ticket.Name).Msg("recovery email handed off")
	return nil
}
