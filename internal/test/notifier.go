package test

import (
	"context"
	"sync"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// NotifierStub records notifications and optionally fails.
type NotifierStub struct {
	NotifyFn func(context.Context, model.Notification) error
	Err      error

	mu   sync.Mutex
	Sent []model.Notification
}

// Notify records n unless an error is configured.
func (s *NotifierStub) Notify(ctx context.Context, n model.Notification) error {
	if s.NotifyFn != nil {
		return s.NotifyFn(ctx, n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Sent = append(s.Sent, n)
	return nil
}

// Notifications returns a copy of recorded notifications.
func (s *NotifierStub) Notifications() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Notification(nil), s.Sent...)
}
