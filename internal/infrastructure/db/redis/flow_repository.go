package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
)

const defaultFlowTTL = time.Hour

// FlowRepository stores booking flows as JSON under flow:<id>. Every save
// renews the TTL, so an idle flow expires an hour after its last step.
type FlowRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewFlowRepository(client *redis.Client, ttl time.Duration) *FlowRepository {
	if ttl <= 0 {
		ttl = defaultFlowTTL
	}
	return &FlowRepository{client: client, ttl: ttl}
}

func (r *FlowRepository) Save(ctx context.Context, flow *domain.BookingFlow) error {
	raw, err := json.Marshal(flow)
	if err != nil {
		return fmt.Errorf("encode flow: %w", err)
	}
	if err := r.client.Set(ctx, r.key(flow.ID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save flow: %w", err)
	}
	return nil
}

func (r *FlowRepository) Get(ctx context.Context, id string) (*domain.BookingFlow, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrFlowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get flow: %w", err)
	}

	var flow domain.BookingFlow
	if err := json.Unmarshal(raw, &flow); err != nil {
		return nil, fmt.Errorf("decode flow: %w", err)
	}
	return &flow, nil
}

func (r *FlowRepository) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.key(id)).Err()
}

func (r *FlowRepository) key(id string) string {
	return "flow:" + id
}
