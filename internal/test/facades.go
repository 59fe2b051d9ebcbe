package test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// StorefrontFacadeStub provides controllable behaviour for every HTTP facade.
// Unset functions fall back to canned successful responses.
type StorefrontFacadeStub struct {
	PlaceOrderFn        func(context.Context, model.PlaceOrderInput) (string, error)
	OrdersFn            func(context.Context, string) ([]model.Order, error)
	OrderFn             func(context.Context, string, string) (*model.Order, error)
	CreateReservationFn func(context.Context, model.ReservationInput) (string, error)
	ReservationsFn      func(context.Context, string) ([]model.Reservation, error)
	SubmitInquiryFn     func(context.Context, string, string, string, string) (string, error)
	AllOrdersFn         func(context.Context) ([]model.Order, error)
	OrderDetailFn       func(context.Context, string) (*model.Order, error)
	UpdateOrderFn       func(context.Context, string, model.OrderStatus) error
	AllReservationsFn   func(context.Context) ([]model.Reservation, error)
	UpdateReservationFn func(context.Context, string, model.ReservationStatus) error
	InquiriesFn         func(context.Context) ([]model.Inquiry, error)
	SweepFn             func(context.Context, int) (int, error)
	HealthErr           error

	TokenParserStub
	AdminVerifierStub
}

// SampleOrder returns an order with a single line for handler tests.
func SampleOrder(id, userID string) model.Order {
	price := decimal.RequireFromString("10.00")
	return model.Order{
		ID:         id,
		UserID:     userID,
		Status:     model.OrderStatusPending,
		TotalPrice: price.Mul(decimal.NewFromInt(2)),
		DeliveryAddress: model.DeliveryAddress{
			District: "Gasabo", Village: "Kacyiru", Cell: "Kamatamu", Phone: "0788000000",
		},
		Items: []model.OrderItem{{ID: "item-1", OrderID: id, ProductID: "P1", ProductName: "Broom", Quantity: 2, Price: price}},
	}
}

func (s StorefrontFacadeStub) PlaceOrder(ctx context.Context, in model.PlaceOrderInput) (string, error) {
	if s.PlaceOrderFn != nil {
		return s.PlaceOrderFn(ctx, in)
	}
	return "order-1", nil
}

func (s StorefrontFacadeStub) Orders(ctx context.Context, userID string) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{SampleOrder("order-1", userID)}, nil
}

func (s StorefrontFacadeStub) Order(ctx context.Context, userID, orderID string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, orderID)
	}
	order := SampleOrder(orderID, userID)
	return &order, nil
}

func (s StorefrontFacadeStub) CreateReservation(ctx context.Context, in model.ReservationInput) (string, error) {
	if s.CreateReservationFn != nil {
		return s.CreateReservationFn(ctx, in)
	}
	return "reservation-1", nil
}

func (s StorefrontFacadeStub) Reservations(ctx context.Context, userID string) ([]model.Reservation, error) {
	if s.ReservationsFn != nil {
		return s.ReservationsFn(ctx, userID)
	}
	return []model.Reservation{{ID: "reservation-1", UserID: userID, ServiceName: "Deep clean", Status: model.ReservationStatusPending}}, nil
}

func (s StorefrontFacadeStub) SubmitInquiry(ctx context.Context, name, email, subject, message string) (string, error) {
	if s.SubmitInquiryFn != nil {
		return s.SubmitInquiryFn(ctx, name, email, subject, message)
	}
	return "inquiry-1", nil
}

func (s StorefrontFacadeStub) AllOrders(ctx context.Context) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx)
	}
	return []model.Order{SampleOrder("order-1", "U1")}, nil
}

func (s StorefrontFacadeStub) OrderDetail(ctx context.Context, orderID string) (*model.Order, error) {
	if s.OrderDetailFn != nil {
		return s.OrderDetailFn(ctx, orderID)
	}
	order := SampleOrder(orderID, "U1")
	return &order, nil
}

func (s StorefrontFacadeStub) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	if s.UpdateOrderFn != nil {
		return s.UpdateOrderFn(ctx, orderID, status)
	}
	return nil
}

func (s StorefrontFacadeStub) AllReservations(ctx context.Context) ([]model.Reservation, error) {
	if s.AllReservationsFn != nil {
		return s.AllReservationsFn(ctx)
	}
	return []model.Reservation{{ID: "reservation-1", Status: model.ReservationStatusPending}}, nil
}

func (s StorefrontFacadeStub) UpdateReservationStatus(ctx context.Context, id string, status model.ReservationStatus) error {
	if s.UpdateReservationFn != nil {
		return s.UpdateReservationFn(ctx, id, status)
	}
	return nil
}

func (s StorefrontFacadeStub) Inquiries(ctx context.Context) ([]model.Inquiry, error) {
	if s.InquiriesFn != nil {
		return s.InquiriesFn(ctx)
	}
	return []model.Inquiry{{ID: "inquiry-1", Name: "Ana", Message: "Hello", Status: "new"}}, nil
}

func (s StorefrontFacadeStub) SweepOrphans(ctx context.Context, limit int) (int, error) {
	if s.SweepFn != nil {
		return s.SweepFn(ctx, limit)
	}
	return 0, nil
}

func (s StorefrontFacadeStub) Health(context.Context) error {
	return s.HealthErr
}

// SweepFacadeStub mimics the sweeper's view of the application facade.
type SweepFacadeStub struct {
	Batches  [][]model.Order
	OrdersFn func(context.Context, int) ([]model.Order, error)
	RemoveFn func(context.Context, string) error

	mu      sync.Mutex
	calls   int
	Removed []string
}

// OrphanOrders returns configured batches in order, then nothing.
func (s *SweepFacadeStub) OrphanOrders(ctx context.Context, limit int) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= len(s.Batches) {
		return s.Batches[s.calls-1], nil
	}
	return nil, nil
}

// RemoveOrphanOrder records removed ids.
func (s *SweepFacadeStub) RemoveOrphanOrder(ctx context.Context, orderID string) error {
	if s.RemoveFn != nil {
		if err := s.RemoveFn(ctx, orderID); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Removed = append(s.Removed, orderID)
	return nil
}

// RemovedIDs returns a snapshot of removed ids.
func (s *SweepFacadeStub) RemovedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Removed...)
}

// FetchCalls reports how many times batches were requested.
func (s *SweepFacadeStub) FetchCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
