// Package mail delivers the two email-distributed one-time secrets: the
// MFA login code and the password-reset link.
package mail

import (
	"context"
	"log/slog"
)

// Mailer sends a single message. Fire-and-forget: no delivery confirmation
// surfaces back to the caller beyond the submission error.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer writes messages to the log instead of sending them. Used in
// dev when no SMTP host is configured.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.Logger.Info("mail (not sent, no SMTP configured)",
		"to", to,
		"subject", subject,
		"body", body,
	)
	return nil
}
