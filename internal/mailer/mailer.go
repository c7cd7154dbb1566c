package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/owlproh/api-yamdb/internal/logger"
)

// Mailer delivers confirmation codes. Delivery failure never fails the
// signup itself; callers dispatch asynchronously and log on error.
type Mailer interface {
	SendConfirmationCode(ctx context.Context, email, code string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	addr string
	from string
}

// NewSMTP creates a mailer talking to the relay at addr (host:port).
func NewSMTP(addr, from string) *SMTPMailer {
	return &SMTPMailer{addr: addr, from: from}
}

func (m *SMTPMailer) SendConfirmationCode(_ context.Context, email, code string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your confirmation code\r\n\r\nUse this code to finish signing up: %s\r\n",
		m.from, email, code,
	)
	if err := smtp.SendMail(m.addr, nil, m.from, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("send confirmation mail: %w", err)
	}
	return nil
}

// LogMailer writes the code to the log instead of sending mail.
// Used in development when no SMTP relay is configured.
type LogMailer struct{}

func (LogMailer) SendConfirmationCode(_ context.Context, email, code string) error {
	logger.Log.Infow("confirmation code issued", "email", email, "code", code)
	return nil
}
