package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// submitGuardTTL bounds how long a crashed submission can block its flow.
const submitGuardTTL = 30 * time.Second

// SubmitGuard is a per-flow SETNX lock around appointment creation.
// Key format: flow:<id>:submitting
type SubmitGuard struct {
	client *redis.Client
}

func NewSubmitGuard(client *redis.Client) *SubmitGuard {
	return &SubmitGuard{client: client}
}

// Acquire reports whether the caller now holds the guard for flowID.
func (g *SubmitGuard) Acquire(ctx context.Context, flowID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(flowID), "1", submitGuardTTL).Result()
	if err != nil {
		return false, fmt.Errorf("submit guard acquire: %w", err)
	}
	return ok, nil
}

func (g *SubmitGuard) Release(ctx context.Context, flowID string) error {
	if err := g.client.Del(ctx, g.key(flowID)).Err(); err != nil {
		return fmt.Errorf("submit guard release: %w", err)
	}
	return nil
}

func (g *SubmitGuard) key(flowID string) string {
	return fmt.Sprintf("flow:%s:submitting", flowID)
}
