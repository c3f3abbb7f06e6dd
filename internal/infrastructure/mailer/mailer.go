package mailer

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"loanguard-backend/internal/domain/fraud"
)

// SMTPNotifier delivers admin notifications over plain SMTP. It is only ever
// called through the best-effort path; delivery failures are the caller's to
// log and ignore.
type SMTPNotifier struct {
	addr string
	from string
	to   string
}

var _ fraud.Notifier = (*SMTPNotifier)(nil)

func NewSMTPNotifier(addr, from, to string) *SMTPNotifier {
	return &SMTPNotifier{addr: addr, from: from, to: to}
}

func (n *SMTPNotifier) Notify(ctx context.Context, subject, body string) error {
	msg := strings.NewReplacer("\r", "", "\n", " ").Replace(subject)
	payload := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		n.from, n.to, msg, body)
	return smtp.SendMail(n.addr, nil, n.from, []string{n.to}, []byte(payload))
}

// LogNotifier is the fallback when no SMTP endpoint is configured; it writes
// the notification to the service log and always succeeds.
type LogNotifier struct{}

var _ fraud.Notifier = LogNotifier{}

func (LogNotifier) Notify(ctx context.Context, subject, body string) error {
	log.Printf("notify: %s: %s", subject, body)
	return nil
}
