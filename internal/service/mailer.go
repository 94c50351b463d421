package service

import (
	"context"

	"github.com/rs/zerolog"
)

// Mailer delivers outbound email to users. Delivery is best-effort; callers
// log failures and never surface them.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer is a delivery stub that writes the message to the log instead of
// sending it.
type LogMailer struct {
	logger zerolog.Logger
}

// NewLogMailer constructs a logging mailer.
func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger.With().Str("component", "mailer").Logger()}
}

// Send logs the outbound message and reports success.
func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.logger.Info().Str("to", to).Str("subject", subject).Str("body", body).Msg("email delivered")
	return nil
}
