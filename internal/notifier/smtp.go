package notifier

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/Monika-msk/vtu-internyet/internal/model"
)

// Ensure SMTPMailer implements model.Mailer.
var _ model.Mailer = (*SMTPMailer)(nil)

// SMTPMailer delivers HTML mail through an SMTP relay with STARTTLS
// (e.g. smtp.gmail.com:587 with an app password).
type SMTPMailer struct {
	sender string
	dialer *gomail.Dialer
}

// NewSMTPMailer creates a mailer that authenticates as sender.
func NewSMTPMailer(host string, port int, sender, password string) *SMTPMailer {
	return &SMTPMailer{
		sender: sender,
		dialer: gomail.NewDialer(host, port, sender, password),
	}
}

// Verify dials the relay and authenticates without sending anything. Used by
// the self-check command.
func (m *SMTPMailer) Verify() error {
	sc, err := m.dialer.Dial()
	if err != nil {
		return fmt.Errorf("dialing smtp relay: %w", err)
	}
	return sc.Close()
}

// Send delivers one message. Each call dials a fresh connection; runs are
// infrequent enough that holding a connection open buys nothing.
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	return nil
}
