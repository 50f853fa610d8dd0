package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

var _ ports.Gateway = (*Client)(nil)

// ListServices returns the whole catalog. It needs no token.
func (c *Client) ListServices(ctx context.Context) ([]domain.Service, error) {
	raw, err := c.do(ctx, call{
		op:       "list services",
		method:   http.MethodGet,
		path:     "/services",
		fallback: "Error fetching services",
	})
	if err != nil {
		return nil, err
	}

	wire, err := decodeList[wireService](raw, "services", "data")
	if err != nil {
		return nil, fmt.Errorf("list services: decode: %w", err)
	}
	out := make([]domain.Service, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDomain())
	}
	return out, nil
}

// UpdateService edits a catalog entry.
func (c *Client) UpdateService(ctx context.Context, token, id string, in ports.ServiceUpdate) (*domain.Service, error) {
	raw, err := c.do(ctx, call{
		op:     "update service",
		method: http.MethodPut,
		path:   "/services/" + url.PathEscape(id),
		token:  token,
		auth:   true,
		body: servicePayload{
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			Duration:    in.DurationMinutes,
			IsActive:    in.IsActive,
		},
		fallback: "Error updating service",
	})
	if err != nil {
		return nil, err
	}

	w, err := decodeOne[wireService](raw, "service")
	if err != nil {
		return nil, fmt.Errorf("update service: decode: %w", err)
	}
	svc := w.toDomain()
	if svc.ID == "" {
		svc.ID = id
	}
	return &svc, nil
}
