package mailer

import (
	"log/slog"
)

// DevMailer logs messages instead of sending them. Used whenever SMTP
// is not configured.
type DevMailer struct {
	logger *slog.Logger
}

func NewDevMailer(logger *slog.Logger) *DevMailer {
	return &DevMailer{logger: logger}
}

func (m *DevMailer) Send(toEmail, toName, subject, text, _ string) (string, error) {
	m.logger.Info("dev mailer: email suppressed",
		"to", toEmail, "name", toName, "subject", subject, "body", text)
	return "dev", nil
}
