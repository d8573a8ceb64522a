package notifier

import (
	"log/slog"

	"github.com/Monika-msk/vtu-internyet/internal/model"
	"github.com/Monika-msk/vtu-internyet/internal/render"
)

// Dispatcher fans one rendered message out to every subscriber, sequentially
// and in list order. A failed delivery is logged and skipped; it never aborts
// the rest of the batch, and no retries happen within a run.
type Dispatcher struct {
	mailer           model.Mailer
	defaultRecipient string
	logger           *slog.Logger
}

// NewDispatcher creates a dispatcher. defaultRecipient receives the message
// when the subscriber list turns out to be empty, so a run never sends nothing.
func NewDispatcher(mailer model.Mailer, defaultRecipient string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		mailer:           mailer,
		defaultRecipient: defaultRecipient,
		logger:           logger,
	}
}

// Dispatch sends msg to each subscriber and reports how many of the attempted
// deliveries succeeded.
func (d *Dispatcher) Dispatch(msg render.Message, subscribers []string) (sent, total int) {
	recipients := subscribers
	if len(recipients) == 0 {
		d.logger.Info("no subscribers, falling back to default recipient", "to", d.defaultRecipient)
		recipients = []string{d.defaultRecipient}
	}

	for _, to := range recipients {
		if err := d.mailer.Send(to, msg.Subject, msg.HTMLBody); err != nil {
			d.logger.Error("delivery failed", "to", to, "error", err)
			continue
		}
		sent++
	}

	d.logger.Info("dispatch complete", "sent", sent, "total", len(recipients))
	return sent, len(recipients)
}
