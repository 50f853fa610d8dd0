package ports

import (
	"context"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
)

// FlowRepository persists booking flow instances between requests.
type FlowRepository interface {
	Save(ctx context.Context, flow *domain.BookingFlow) error
	// Get returns domain.ErrFlowNotFound when the flow is unknown or expired.
	Get(ctx context.Context, id string) (*domain.BookingFlow, error)
	Delete(ctx context.Context, id string) error
}

// SubmitGuard prevents the same flow from being submitted twice concurrently.
type SubmitGuard interface {
	// Acquire reports false when another submission holds the guard.
	Acquire(ctx context.Context, flowID string) (bool, error)
	Release(ctx context.Context, flowID string) error
}
