package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

// SessionCookie carries the signed session id.
const SessionCookie = "cw_session"

// Context keys set by Session.
const (
	ContextKeySID     = "sid"
	ContextKeySession = "session"
)

const defaultCookieTTL = 24 * time.Hour

// SessionConfig controls the session cookie.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
	Secure bool
}

type sessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// Session resolves the browser session from the cw_session cookie, issuing a
// fresh id when the cookie is missing, tampered or expired. Persisted state is
// reloaded before the handler runs and evicted from memory afterwards.
func Session(sessions ports.SessionService, cfg SessionConfig) echo.MiddlewareFunc {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultCookieTTL
	}
	secret := []byte(cfg.Secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, ok := readSID(c, secret)
			if !ok {
				sid = uuid.NewString()
				signed, err := signSID(sid, secret, cfg.TTL)
				if err != nil {
					return err
				}
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    signed,
					Path:     "/",
					Expires:  time.Now().Add(cfg.TTL),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			sess := sessions.Refresh(c.Request().Context(), sid)
			defer sessions.Evict(sid)

			c.Set(ContextKeySID, sid)
			c.Set(ContextKeySession, sess)
			return next(c)
		}
	}
}

func readSID(c echo.Context, secret []byte) (string, bool) {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid || claims.SID == "" {
		return "", false
	}
	return claims.SID, true
}

func signSID(sid string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(secret)
}

// SessionID returns the id set by Session, or "" outside it.
func SessionID(c echo.Context) string {
	sid, _ := c.Get(ContextKeySID).(string)
	return sid
}

// CurrentSession returns the snapshot loaded at the start of the request.
func CurrentSession(c echo.Context) domain.Session {
	sess, ok := c.Get(ContextKeySession).(domain.Session)
	if !ok {
		return domain.Anonymous
	}
	return sess
}
