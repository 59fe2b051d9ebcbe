package handlers

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// OrderFacade encapsulates customer order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, in model.PlaceOrderInput) (string, error)
	Orders(ctx context.Context, userID string) ([]model.Order, error)
	Order(ctx context.Context, userID, orderID string) (*model.Order, error)
}

// ReservationFacade encapsulates customer booking operations.
type ReservationFacade interface {
	CreateReservation(ctx context.Context, in model.ReservationInput) (string, error)
	Reservations(ctx context.Context, userID string) ([]model.Reservation, error)
}

// InquiryFacade accepts contact form submissions.
type InquiryFacade interface {
	SubmitInquiry(ctx context.Context, name, email, subject, message string) (string, error)
}

// AdminFacade provides dashboard operations.
type AdminFacade interface {
	AllOrders(ctx context.Context) ([]model.Order, error)
	OrderDetail(ctx context.Context, orderID string) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	AllReservations(ctx context.Context) ([]model.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id string, status model.ReservationStatus) error
	Inquiries(ctx context.Context) ([]model.Inquiry, error)
	SweepOrphans(ctx context.Context, limit int) (int, error)
}

// HealthFacade probes backing services.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// StorefrontFacade aggregates the full set of operations used across handlers and middleware.
type StorefrontFacade interface {
	OrderFacade
	ReservationFacade
	InquiryFacade
	AdminFacade
	HealthFacade
	middleware.TokenParser
	middleware.AdminVerifier
}
