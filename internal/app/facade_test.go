package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
	testhelpers "github.com/polkiloo/storefront/internal/test"
	"github.com/polkiloo/storefront/internal/usecase"
)

func newFacade(t *testing.T) (*StorefrontFacade, *testhelpers.MemoryStore, *testhelpers.NotifierStub) {
	t.Helper()
	store := testhelpers.NewMemoryStore()
	store.AddProfile(model.Profile{ID: "U1", Email: "u1@example.com"})
	store.AddProduct(model.Product{ID: "P1", Name: "Broom", Price: decimal.RequireFromString("10.00")})
	notifier := &testhelpers.NotifierStub{}
	logger := discardLogger()

	orders := usecase.NewOrderUseCase(store.Profiles(), store.Products(), store.Orders(), notifier, logger, usecase.Settings{})
	reservations := usecase.NewReservationUseCase(store.Profiles(), store.Reservations(), notifier, logger)
	inquiries := usecase.NewInquiryUseCase(store.Inquiries(), notifier, logger)
	tokens := testhelpers.TokenParserStub{ParseFn: func(token string) (string, error) {
		if token != "good" {
			return "", pkgAuth.ErrInvalidToken
		}
		return "U1", nil
	}}
	admin := pkgAuth.NewAdminKeyVerifier(testhelpers.HasherStub{}, "hash:admin")

	return NewStorefrontFacade(orders, reservations, inquiries, store, tokens, admin), store, notifier
}

func address() model.DeliveryAddress {
	return model.DeliveryAddress{District: "Gasabo", Village: "Kacyiru", Cell: "Kamatamu", Phone: "0788000000"}
}

func TestStorefrontFacadeOrders(t *testing.T) {
	facade, store, notifier := newFacade(t)
	ctx := context.Background()

	id, err := facade.PlaceOrder(ctx, model.PlaceOrderInput{
		UserID:          "U1",
		DeliveryAddress: address(),
		Items:           []model.OrderItemInput{{ProductID: "P1", Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if store.OrderCount() != 1 || store.ItemCount() != 1 {
		t.Fatalf("expected one order with one item, got %d/%d", store.OrderCount(), store.ItemCount())
	}
	if len(notifier.Notifications()) != 1 {
		t.Fatalf("expected one notification")
	}

	orders, err := facade.Orders(ctx, "U1")
	if err != nil || len(orders) != 1 {
		t.Fatalf("unexpected orders %v %v", orders, err)
	}

	order, err := facade.Order(ctx, "U1", id)
	if err != nil || !order.TotalPrice.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("unexpected order %+v %v", order, err)
	}
	if _, err := facade.Order(ctx, "U2", id); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for foreign user, got %v", err)
	}

	all, err := facade.AllOrders(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("unexpected admin orders %v %v", all, err)
	}
	if _, err := facade.OrderDetail(ctx, id); err != nil {
		t.Fatalf("order detail: %v", err)
	}
	if err := facade.UpdateOrderStatus(ctx, id, model.OrderStatusShipped); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if err := facade.UpdateOrderStatus(ctx, id, "lost"); !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}
}

func TestStorefrontFacadeReservationsAndInquiries(t *testing.T) {
	facade, _, notifier := newFacade(t)
	ctx := context.Background()

	id, err := facade.CreateReservation(ctx, model.ReservationInput{
		UserID:         "U1",
		ServiceName:    "Deep clean",
		FullName:       "Ana K",
		Email:          "ana@example.com",
		Phone:          "0788000000",
		PreferredDate:  "2026-11-02",
		PreferredTime:  "10:00",
		ServiceAddress: "KG 11 Ave",
	})
	if err != nil {
		t.Fatalf("create reservation: %v", err)
	}
	mine, err := facade.Reservations(ctx, "U1")
	if err != nil || len(mine) != 1 || mine[0].ID != id {
		t.Fatalf("unexpected reservations %v %v", mine, err)
	}
	if err := facade.UpdateReservationStatus(ctx, id, model.ReservationStatusConfirmed); err != nil {
		t.Fatalf("update reservation: %v", err)
	}
	all, err := facade.AllReservations(ctx)
	if err != nil || len(all) != 1 || all[0].Status != model.ReservationStatusConfirmed {
		t.Fatalf("unexpected admin reservations %v %v", all, err)
	}

	if _, err := facade.SubmitInquiry(ctx, "Ana", "ana@example.com", "", "Do you deliver?"); err != nil {
		t.Fatalf("submit inquiry: %v", err)
	}
	inquiries, err := facade.Inquiries(ctx)
	if err != nil || len(inquiries) != 1 {
		t.Fatalf("unexpected inquiries %v %v", inquiries, err)
	}
	if got := len(notifier.Notifications()); got != 3 {
		t.Fatalf("expected booking, status and inquiry notifications, got %d", got)
	}
}

func TestStorefrontFacadeSweep(t *testing.T) {
	facade, store, _ := newFacade(t)
	ctx := context.Background()
	store.PutOrder(model.Order{ID: "orphan-1", UserID: "U1", Status: model.OrderStatusPending}, nil)

	orphans, err := facade.OrphanOrders(ctx, 10)
	if err != nil || len(orphans) != 1 {
		t.Fatalf("unexpected orphans %v %v", orphans, err)
	}
	if err := facade.RemoveOrphanOrder(ctx, "orphan-1"); err != nil {
		t.Fatalf("remove orphan: %v", err)
	}
	removed, err := facade.SweepOrphans(ctx, 10)
	if err != nil || removed != 0 {
		t.Fatalf("expected nothing left to sweep, got %d %v", removed, err)
	}
	if store.OrderCount() != 0 {
		t.Fatalf("expected orphan removed, %d orders left", store.OrderCount())
	}
}

func TestStorefrontFacadeAuthAndHealth(t *testing.T) {
	facade, store, _ := newFacade(t)

	if id, err := facade.ParseToken("good"); err != nil || id != "U1" {
		t.Fatalf("unexpected parse result %q %v", id, err)
	}
	if _, err := facade.ParseToken("bad"); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
	if err := facade.VerifyAdminKey("admin"); err != nil {
		t.Fatalf("expected admin key accepted, got %v", err)
	}
	if err := facade.VerifyAdminKey("guest"); !errors.Is(err, pkgAuth.ErrInvalidAdminKey) {
		t.Fatalf("expected invalid admin key, got %v", err)
	}

	if err := facade.Health(context.Background()); err != nil {
		t.Fatalf("unexpected health error: %v", err)
	}
	store.Fail.HealthCheck = errors.New("down")
	if err := facade.Health(context.Background()); err == nil {
		t.Fatal("expected health error")
	}
}
