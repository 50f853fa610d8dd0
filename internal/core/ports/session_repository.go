package ports

import "context"

// SessionRepository persists the per-browser-session keys: the access token,
// the serialized user profile and the one-shot post-login redirect target.
type SessionRepository interface {
	// Load returns the raw stored values. Missing keys come back empty, not as errors.
	Load(ctx context.Context, sid string) (token string, user []byte, err error)
	// Save writes token and user together; no partial state is ever observable.
	Save(ctx context.Context, sid, token string, user []byte) error
	Delete(ctx context.Context, sid string) error

	SetRedirect(ctx context.Context, sid, target string) error
	// PopRedirect returns and removes the stored target in one step.
	PopRedirect(ctx context.Context, sid string) (string, error)
}
