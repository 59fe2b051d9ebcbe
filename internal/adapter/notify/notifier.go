package notify

import (
	"context"
	"errors"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/usecase"
)

// StoreNotifier inserts notifications into the admin feed table.
type StoreNotifier struct {
	repo repository.NotificationRepository
}

// NewStoreNotifier constructs StoreNotifier.
func NewStoreNotifier(repo repository.NotificationRepository) *StoreNotifier {
	return &StoreNotifier{repo: repo}
}

// Notify implements usecase.Notifier.
func (n *StoreNotifier) Notify(ctx context.Context, notification model.Notification) error {
	return n.repo.Create(ctx, notification)
}

// Fanout delivers to every sink and joins their errors.
type Fanout []usecase.Notifier

// Notify implements usecase.Notifier.
func (f Fanout) Notify(ctx context.Context, notification model.Notification) error {
	var errs []error
	for _, sink := range f {
		if err := sink.Notify(ctx, notification); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	_ usecase.Notifier = (*StoreNotifier)(nil)
	_ usecase.Notifier = Fanout(nil)
)
