package ports

import "context"

// RecoveryMailer delivers a password recovery ticket to its owner. The
// token never travels back to whoever asked for the reset.
type RecoveryMailer interface {
	SendRecovery(ctx context.Context, ticket RecoveryTicket) error
}
