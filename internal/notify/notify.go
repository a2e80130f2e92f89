package notify

import (
	"context"

	"go.uber.org/multierr"

	"github.com/hamed0406/pingwatch/internal/domain"
)

// Notifier delivers one notification payload over some channel. Transport,
// auth and retries are the channel's business, not the caller's.
type Notifier interface {
	Send(ctx context.Context, p domain.NotificationPayload) error
}

// Multi fans one payload out to every channel, best-effort each.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, p domain.NotificationPayload) error {
	var errs error
	for _, n := range m {
		if n == nil {
			continue
		}
		errs = multierr.Append(errs, n.Send(ctx, p))
	}
	return errs
}
