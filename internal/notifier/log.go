package notifier

import (
	"log/slog"

	"github.com/Monika-msk/vtu-internyet/internal/model"
)

// Ensure LogMailer implements model.Mailer.
var _ model.Mailer = (*LogMailer)(nil)

// LogMailer writes would-be deliveries to the logger instead of sending mail.
// Used in dry-run mode and by the self-check command.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer returns a mailer that logs each message via slog.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(to, subject, htmlBody string) error {
	m.logger.Info("would send mail", "to", to, "subject", subject, "body_bytes", len(htmlBody))
	return nil
}
