package app

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/usecase"
)

// HealthChecker probes the storage backend.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// TokenParser resolves an access token into a user id.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// AdminVerifier validates the admin API key.
type AdminVerifier interface {
	VerifyAdminKey(key string) error
}

// StorefrontFacade is the single entry point used by HTTP handlers and the sweeper.
type StorefrontFacade struct {
	orders       *usecase.OrderUseCase
	reservations *usecase.ReservationUseCase
	inquiries    *usecase.InquiryUseCase
	health       HealthChecker
	tokens       TokenParser
	admin        AdminVerifier
}

func NewStorefrontFacade(
	orders *usecase.OrderUseCase,
	reservations *usecase.ReservationUseCase,
	inquiries *usecase.InquiryUseCase,
	health HealthChecker,
	tokens TokenParser,
	admin AdminVerifier,
) *StorefrontFacade {
	return &StorefrontFacade{
		orders:       orders,
		reservations: reservations,
		inquiries:    inquiries,
		health:       health,
		tokens:       tokens,
		admin:        admin,
	}
}

func (f *StorefrontFacade) PlaceOrder(ctx context.Context, in model.PlaceOrderInput) (string, error) {
	return f.orders.PlaceOrder(ctx, in)
}

func (f *StorefrontFacade) Orders(ctx context.Context, userID string) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *StorefrontFacade) Order(ctx context.Context, userID, orderID string) (*model.Order, error) {
	return f.orders.GetForUser(ctx, userID, orderID)
}

func (f *StorefrontFacade) CreateReservation(ctx context.Context, in model.ReservationInput) (string, error) {
	return f.reservations.Create(ctx, in)
}

func (f *StorefrontFacade) Reservations(ctx context.Context, userID string) ([]model.Reservation, error) {
	return f.reservations.ListByUser(ctx, userID)
}

func (f *StorefrontFacade) SubmitInquiry(ctx context.Context, name, email, subject, message string) (string, error) {
	return f.inquiries.Submit(ctx, name, email, subject, message)
}

func (f *StorefrontFacade) AllOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.List(ctx)
}

func (f *StorefrontFacade) OrderDetail(ctx context.Context, orderID string) (*model.Order, error) {
	return f.orders.Get(ctx, orderID)
}

func (f *StorefrontFacade) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	return f.orders.UpdateStatus(ctx, orderID, status)
}

func (f *StorefrontFacade) AllReservations(ctx context.Context) ([]model.Reservation, error) {
	return f.reservations.List(ctx)
}

func (f *StorefrontFacade) UpdateReservationStatus(ctx context.Context, id string, status model.ReservationStatus) error {
	return f.reservations.UpdateStatus(ctx, id, status)
}

func (f *StorefrontFacade) Inquiries(ctx context.Context) ([]model.Inquiry, error) {
	return f.inquiries.List(ctx)
}

// SweepOrphans runs one reconciliation pass synchronously.
func (f *StorefrontFacade) SweepOrphans(ctx context.Context, limit int) (int, error) {
	return f.orders.SweepOrphans(ctx, limit)
}

// OrphanOrders feeds the background sweeper.
func (f *StorefrontFacade) OrphanOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.Orphans(ctx, limit)
}

func (f *StorefrontFacade) RemoveOrphanOrder(ctx context.Context, orderID string) error {
	return f.orders.RemoveOrphan(ctx, orderID)
}

func (f *StorefrontFacade) Health(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}

func (f *StorefrontFacade) ParseToken(token string) (string, error) {
	return f.tokens.ParseToken(token)
}

func (f *StorefrontFacade) VerifyAdminKey(key string) error {
	return f.admin.VerifyAdminKey(key)
}
