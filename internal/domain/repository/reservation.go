package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// ReservationRepository describes persistence operations with service bookings.
type ReservationRepository interface {
	Create(ctx context.Context, r *model.Reservation) (string, error)
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]model.Reservation, error)
	List(ctx context.Context) ([]model.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status model.ReservationStatus) error
}

// NotificationRepository stores admin notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n model.Notification) error
}

// InquiryRepository stores contact form submissions.
type InquiryRepository interface {
	Create(ctx context.Context, in *model.Inquiry) (string, error)
	List(ctx context.Context) ([]model.Inquiry, error)
}
