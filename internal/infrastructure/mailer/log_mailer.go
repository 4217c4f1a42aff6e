package mailer

import (
	"context"

	"webflow-mirror-layer/internal/ports"

	"github.com/rs/zerolog"
)

// LogMailer writes outbound mail to the log instead of delivering it.
// Real delivery lives behind the Mailer port in a separate system.
type LogMailer struct {
	logger zerolog.Logger
}

// NewLogMailer creates a logging mailer
func NewLogMailer(logger zerolog.Logger) ports.Mailer {
	return &LogMailer{logger: logger}
}

// Send logs the message instead of delivering it
func (m *LogMailer) Send(ctx context.Context, to string, subject string, body string) error {
	m.logger.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("Outbound mail (log delivery)")
	return nil
}
