// Package gateway is the typed client for the external booking API. Every
// backend request of the portal goes through Client; it owns the bearer
// header, response shape normalisation, slot encoding and error taxonomy.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/SofiaGenchi/carwash-frontend/internal/api/metrics"
	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
)

const (
	defaultBaseURL = "http://localhost:3000/api"
	defaultTimeout = 15 * time.Second

	// MsgNetwork is shown when the gateway cannot be reached.
	MsgNetwork = "Error de red o servidor"

	maxErrorBody = 4 << 10
)

// Config holds the client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client; tests pass httptest clients.
	HTTPClient *http.Client
}

// Client talks to the booking API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	breaker    *gobreaker.CircuitBreaker
	log        zerolog.Logger
}

// New builds a Client. Empty settings fall back to defaults.
func New(cfg Config, log zerolog.Logger) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	c := &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		log:        log.With().Str("component", "gateway").Logger(),
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "booking-api",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		// Only transport failures and 5xx count against the breaker; a 4xx is
		// the backend working correctly, and a caller that gave up says
		// nothing about the backend.
		IsSuccessful: func(err error) bool {
			var abandoned callerAbandoned
			if errors.As(err, &abandoned) {
				return true
			}
			var de *domain.Error
			if errors.As(err, &de) && de.Kind == domain.KindRequestFailed {
				return de.Status < http.StatusInternalServerError
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.GatewayBreakerState.Set(float64(to))
			c.log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	})
	return c
}

// callerAbandoned marks a failure caused by the caller's own context being
// cancelled or timing out.
type callerAbandoned struct{ error }

func (e callerAbandoned) Unwrap() error { return e.error }

// call describes one request.
type call struct {
	op       string // metric and error label, e.g. "list services"
	method   string
	path     string
	token    string
	auth     bool // requires a bearer token
	body     any
	fallback string // shown when the error body carries no message
}

// do executes c and returns the raw 2xx body.
func (c *Client) do(ctx context.Context, req call) ([]byte, error) {
	if req.auth && req.token == "" {
		err := domain.NewAuthRequiredError(req.op)
		c.observe(req.op, err, 0)
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		err = &domain.Error{Kind: domain.KindNetwork, Op: req.op, Message: MsgNetwork, Err: err}
		c.observe(req.op, err, 0)
		return nil, err
	}

	start := time.Now()
	out, err := c.breaker.Execute(func() (any, error) {
		raw, err := c.roundTrip(ctx, req)
		if err != nil && ctx.Err() != nil {
			return nil, callerAbandoned{err}
		}
		return raw, err
	})
	var abandoned callerAbandoned
	if errors.As(err, &abandoned) {
		err = abandoned.error
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = &domain.Error{Kind: domain.KindNetwork, Op: req.op, Message: MsgNetwork, Err: err}
	}
	c.observe(req.op, err, time.Since(start))
	if err != nil {
		return nil, err
	}
	raw, _ := out.([]byte)
	return raw, nil
}

func (c *Client) roundTrip(ctx context.Context, req call) ([]byte, error) {
	var bodyReader io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal request: %w", req.op, err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", req.op, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.auth {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Warn().Err(err).Str("op", req.op).Msg("gateway unreachable")
		return nil, &domain.Error{Kind: domain.KindNetwork, Op: req.op, Message: MsgNetwork, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.Error{Kind: domain.KindNetwork, Op: req.op, Message: MsgNetwork, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(respBody, req.fallback)
		c.log.Debug().Int("status", resp.StatusCode).Str("op", req.op).Str("message", msg).Msg("gateway non-2xx response")
		return nil, &domain.Error{Kind: domain.KindRequestFailed, Op: req.op, Status: resp.StatusCode, Message: msg}
	}
	return respBody, nil
}

// errorMessage reads {"message": ...} or {"error": ...} from an error body.
func errorMessage(body []byte, fallback string) string {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if m := strings.TrimSpace(payload.Message); m != "" {
			return m
		}
		if m := strings.TrimSpace(payload.Error); m != "" {
			return m
		}
	}
	return fallback
}

func (c *Client) observe(op string, err error, elapsed time.Duration) {
	label := strings.ReplaceAll(op, " ", "_")
	outcome := "ok"
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			outcome = string(de.Kind)
		} else {
			outcome = "error"
		}
	}
	metrics.GatewayRequestsTotal.WithLabelValues(label, outcome).Inc()
	if elapsed > 0 {
		metrics.GatewayRequestDuration.WithLabelValues(label).Observe(elapsed.Seconds())
	}
}
