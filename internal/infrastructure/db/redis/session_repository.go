package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	fieldToken = "accessToken"
	fieldUser  = "user"

	defaultSessionTTL = 24 * time.Hour
	redirectTTL       = 30 * time.Minute
)

// SessionRepository keeps per-session identity in a hash at session:<sid>
// and the post-login target at session:<sid>:loginRedirect.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionRepository{client: client, ttl: ttl}
}

func (r *SessionRepository) Load(ctx context.Context, sid string) (string, []byte, error) {
	vals, err := r.client.HMGet(ctx, r.key(sid), fieldToken, fieldUser).Result()
	if err != nil {
		return "", nil, fmt.Errorf("load session: %w", err)
	}
	token, _ := vals[0].(string)
	user, _ := vals[1].(string)
	return token, []byte(user), nil
}

// Save writes both fields and the expiry in one MULTI/EXEC.
func (r *SessionRepository) Save(ctx context.Context, sid, token string, user []byte) error {
	key := r.key(sid)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fieldToken, token, fieldUser, string(user))
		pipe.Expire(ctx, key, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, sid string) error {
	if err := r.client.Del(ctx, r.key(sid)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) SetRedirect(ctx context.Context, sid, target string) error {
	return r.client.Set(ctx, r.redirectKey(sid), target, redirectTTL).Err()
}

// PopRedirect reads and deletes the target atomically with GETDEL.
func (r *SessionRepository) PopRedirect(ctx context.Context, sid string) (string, error) {
	target, err := r.client.GetDel(ctx, r.redirectKey(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return target, nil
}

func (r *SessionRepository) key(sid string) string {
	return "session:" + sid
}

func (r *SessionRepository) redirectKey(sid string) string {
	return "session:" + sid + ":loginRedirect"
}
