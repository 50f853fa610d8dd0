package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

// Login exchanges credentials for an access token and the user profile.
func (c *Client) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	raw, err := c.do(ctx, call{
		op:       "login",
		method:   http.MethodPost,
		path:     "/users/login",
		body:     map[string]string{"email": email, "password": password},
		fallback: "Error de autenticación",
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		AccessToken string   `json:"accessToken"`
		User        wireUser `json:"user"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("login: decode: %w", err)
	}
	return &ports.LoginResult{AccessToken: resp.AccessToken, User: resp.User.toDomain()}, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, reg ports.Registration) (*domain.User, error) {
	raw, err := c.do(ctx, call{
		op:     "register",
		method: http.MethodPost,
		path:   "/users/register",
		body: wireUser{
			Nombre:   reg.FirstName,
			Apellido: reg.LastName,
			Email:    reg.Email,
			Telefono: reg.Phone,
			Password: reg.Password,
		},
		fallback: "Error al registrar usuario",
	})
	if err != nil {
		return nil, err
	}

	w, err := decodeOne[wireUser](raw, "user")
	if err != nil {
		return nil, fmt.Errorf("register: decode: %w", err)
	}
	u := w.toDomain()
	if u.Email == "" {
		u.Email = reg.Email
	}
	return &u, nil
}

// ForgotPassword asks the API to issue a recovery token for email.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*ports.RecoveryTicket, error) {
	raw, err := c.do(ctx, call{
		op:       "forgot password",
		method:   http.MethodPost,
		path:     "/users/forgot-password",
		body:     map[string]string{"email": email},
		fallback: "Error en forgot password",
	})
	if err != nil {
		return nil, err
	}

	var ticket ports.RecoveryTicket
	if err := json.Unmarshal(raw, &ticket); err != nil {
		return nil, fmt.Errorf("forgot password: decode: %w", err)
	}
	return &ticket, nil
}

// ResetPassword sets a new password with a recovery token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	_, err := c.do(ctx, call{
		op:       "reset password",
		method:   http.MethodPost,
		path:     "/users/reset-password",
		body:     map[string]string{"token": token, "newPassword": newPassword},
		fallback: "Error al restablecer la contraseña.",
	})
	return err
}

// ListUsers returns every user. Admin only.
func (c *Client) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	raw, err := c.do(ctx, call{
		op:       "list users",
		method:   http.MethodGet,
		path:     "/users",
		token:    token,
		auth:     true,
		fallback: "Error fetching users",
	})
	if err != nil {
		return nil, err
	}

	wire, err := decodeList[wireUser](raw, "users", "data")
	if err != nil {
		return nil, fmt.Errorf("list users: decode: %w", err)
	}
	out := make([]domain.User, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDomain())
	}
	return out, nil
}

// UpdateUser edits a user. The password field is omitted unless a new one is set.
func (c *Client) UpdateUser(ctx context.Context, token, id string, in ports.UserUpdate) (*domain.User, error) {
	raw, err := c.do(ctx, call{
		op:     "update user",
		method: http.MethodPut,
		path:   "/users/" + url.PathEscape(id),
		token:  token,
		auth:   true,
		body: wireUser{
			Nombre:   in.FirstName,
			Apellido: in.LastName,
			Email:    in.Email,
			Telefono: in.Phone,
			Role:     string(in.Role),
			Password: in.Password,
		},
		fallback: "Error updating user",
	})
	if err != nil {
		return nil, err
	}

	w, err := decodeOne[wireUser](raw, "user")
	if err != nil {
		return nil, fmt.Errorf("update user: decode: %w", err)
	}
	u := w.toDomain()
	if u.ID == "" {
		u.ID = id
	}
	return &u, nil
}
