package ports

import (
	"context"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
)

// AuditRepository stores booking attempts.
type AuditRepository interface {
	InsertAttempt(ctx context.Context, attempt *domain.BookingAttempt) error
	// ListByUser returns up to limit attempts of a user, newest first.
	ListByUser(ctx context.Context, userID string, limit int64) ([]domain.BookingAttempt, error)
}

// AuditSink accepts attempts for asynchronous recording.
type AuditSink interface {
	Record(attempt domain.BookingAttempt)
}
