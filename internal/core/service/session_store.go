package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

var _ ports.SessionService = (*SessionStore)(nil)

// SessionStore is the only writer of session identity. Reads go through an
// in-memory snapshot that Refresh reloads from the repository; the session
// middleware refreshes it at the start of every request and evicts it at the end.
type SessionStore struct {
	repo ports.SessionRepository
	log  zerolog.Logger

	mu    sync.RWMutex
	cache map[string]domain.Session
}

func NewSessionStore(repo ports.SessionRepository, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		repo:  repo,
		log:   log.With().Str("component", "session_store").Logger(),
		cache: make(map[string]domain.Session),
	}
}

// GetSession returns the session for sid. Missing or unparsable state yields
// domain.Anonymous; storage errors are logged, never returned.
func (s *SessionStore) GetSession(ctx context.Context, sid string) domain.Session {
	s.mu.RLock()
	sess, ok := s.cache[sid]
	s.mu.RUnlock()
	if ok {
		return copySession(sess)
	}
	return s.Refresh(ctx, sid)
}

// Refresh re-reads persisted state for sid into the cache.
func (s *SessionStore) Refresh(ctx context.Context, sid string) domain.Session {
	sess := s.load(ctx, sid)
	s.mu.Lock()
	s.cache[sid] = sess
	s.mu.Unlock()
	return copySession(sess)
}

// SetSession persists token and user together.
func (s *SessionStore) SetSession(ctx context.Context, sid, token string, user domain.User) error {
	if token == "" {
		return domain.NewValidationError("set session", "token vacío")
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("set session: encode user: %w", err)
	}
	if err := s.repo.Save(ctx, sid, token, raw); err != nil {
		return fmt.Errorf("set session: %w", err)
	}

	s.mu.Lock()
	s.cache[sid] = domain.Session{Token: token, User: &user}
	s.mu.Unlock()
	return nil
}

// ClearSession removes token and user. The redirect intent is left alone.
func (s *SessionStore) ClearSession(ctx context.Context, sid string) error {
	if err := s.repo.Delete(ctx, sid); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.mu.Lock()
	s.cache[sid] = domain.Anonymous
	s.mu.Unlock()
	return nil
}

// Evict drops the cached snapshot for sid.
func (s *SessionStore) Evict(sid string) {
	s.mu.Lock()
	delete(s.cache, sid)
	s.mu.Unlock()
}

// RememberIntent stores where to go after the next successful login.
func (s *SessionStore) RememberIntent(ctx context.Context, sid, target string) error {
	if err := s.repo.SetRedirect(ctx, sid, target); err != nil {
		return fmt.Errorf("remember intent: %w", err)
	}
	return nil
}

// ConsumeIntent returns the stored redirect target and removes it. It
// returns "" when there is none.
func (s *SessionStore) ConsumeIntent(ctx context.Context, sid string) (string, error) {
	target, err := s.repo.PopRedirect(ctx, sid)
	if err != nil {
		return "", fmt.Errorf("consume intent: %w", err)
	}
	return target, nil
}

func (s *SessionStore) load(ctx context.Context, sid string) domain.Session {
	token, raw, err := s.repo.Load(ctx, sid)
	if err != nil {
		s.log.Warn().Err(err).Str("sid", sid).Msg("session load failed, treating as anonymous")
		return domain.Anonymous
	}
	if token == "" || len(raw) == 0 {
		return domain.Anonymous
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		s.log.Warn().Err(err).Str("sid", sid).Msg("stored user unparsable, treating as anonymous")
		return domain.Anonymous
	}
	return domain.Session{Token: token, User: &user}
}

func copySession(s domain.Session) domain.Session {
	if s.User == nil {
		return s
	}
	u := *s.User
	return domain.Session{Token: s.Token, User: &u}
}
