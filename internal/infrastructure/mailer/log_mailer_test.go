package mailer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/ports"
)

func TestLogMailer_NeverLogsToken(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(zerolog.New(&buf))

	err := m.SendRecovery(context.Background(), ports.RecoveryTicket{Token: "secret-reset-token", Name: "Ana", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("SendRecovery: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "secret-reset-token") {
		t.Fatalf("token leaked into the log: %s", out)
	}
	if !strings.Contains(out, "ana@example.com") {
		t.Fatalf("expected the recipient in the log, got %s", out)
	}
}
