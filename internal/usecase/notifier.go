package usecase

import (
	"context"
	"log/slog"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// Notifier delivers admin notifications.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification) error
}

// notifyBestEffort sends n and only logs a failure. The write it announces
// is already committed, so a cancelled request does not abort delivery.
func notifyBestEffort(ctx context.Context, notifier Notifier, logger *slog.Logger, n model.Notification) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(context.WithoutCancel(ctx), n); err != nil {
		logger.Warn("notification failed",
			slog.String("title", n.Title),
			slog.String("type", string(n.Type)),
			slog.String("error", err.Error()),
		)
	}
}
