package errors

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	ErrUserNotVerified        = errors.New("user not verified")
	ErrProductNotFound        = errors.New("product not found")
	ErrOrderHeaderWriteFailed = errors.New("failed to create order")
	ErrOrderItemsWriteFailed  = errors.New("failed to create order items")
	ErrReservationWriteFailed = errors.New("failed to create reservation")
	ErrInquiryWriteFailed     = errors.New("failed to submit inquiry")
	// ErrNotificationFailed is logged by the workflows and never returned to callers.
	ErrNotificationFailed = errors.New("failed to create notification")

	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidOrder       = errors.New("invalid order")
	ErrInvalidReservation = errors.New("invalid reservation")
	ErrInvalidInquiry     = errors.New("invalid inquiry")
)
