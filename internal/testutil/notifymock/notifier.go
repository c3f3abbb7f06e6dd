package notifymock

import (
	"context"

	"loanguard-backend/internal/domain/fraud"
)

var _ fraud.Notifier = (*Notifier)(nil)

// Notifier records notifications and optionally fails them.
type Notifier struct {
	Err      error
	Subjects []string
	Bodies   []string
}

func (n *Notifier) Notify(ctx context.Context, subject, body string) error {
	n.Subjects = append(n.Subjects, subject)
	n.Bodies = append(n.Bodies, body)
	return n.Err
}
