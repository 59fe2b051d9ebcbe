package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// OrderUseCase encapsulates order placement and administration.
type OrderUseCase struct {
	profiles repository.ProfileRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
	notifier Notifier
	logger   *slog.Logger
	settings Settings
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	profiles repository.ProfileRepository,
	products repository.ProductRepository,
	orders repository.OrderRepository,
	notifier Notifier,
	logger *slog.Logger,
	settings Settings,
) *OrderUseCase {
	return &OrderUseCase{
		profiles: profiles,
		products: products,
		orders:   orders,
		notifier: notifier,
		logger:   logger,
		settings: settings.normalize(),
	}
}

// PlaceOrder verifies the customer, prices every line from the catalog,
// persists header and items, and notifies admins. It returns the new order id.
func (u *OrderUseCase) PlaceOrder(ctx context.Context, in model.PlaceOrderInput) (string, error) {
	if err := normalizeOrderInput(&in); err != nil {
		return "", err
	}

	if err := verifyProfile(ctx, u.profiles, in.UserID); err != nil {
		u.logger.Warn("order rejected", slog.String("user_id", in.UserID), slog.String("error", err.Error()))
		return "", err
	}

	items, total, err := u.priceItems(ctx, in.Items)
	if err != nil {
		u.logger.Warn("order rejected", slog.String("user_id", in.UserID), slog.String("error", err.Error()))
		return "", err
	}

	order := &model.Order{
		UserID:          in.UserID,
		Status:          in.Status,
		TotalPrice:      total,
		DeliveryAddress: in.DeliveryAddress,
	}

	var orderID string
	if atomic, ok := u.orders.(repository.AtomicOrderWriter); ok {
		orderID, err = u.createAtomically(ctx, atomic, order, items)
	} else {
		orderID, err = u.createWithCompensation(ctx, order, items)
	}
	if err != nil {
		return "", err
	}

	u.logger.Info("order placed",
		slog.String("order_id", orderID),
		slog.String("user_id", in.UserID),
		slog.String("total", total.StringFixed(2)),
		slog.Int("items", len(items)),
	)

	notifyBestEffort(ctx, u.notifier, u.logger, model.OrderPlacedNotification(orderID, total))
	return orderID, nil
}

func (u *OrderUseCase) priceItems(ctx context.Context, inputs []model.OrderItemInput) ([]model.OrderItem, decimal.Decimal, error) {
	items := make([]model.OrderItem, 0, len(inputs))
	total := decimal.Zero
	for _, in := range inputs {
		product, err := u.products.GetByID(ctx, in.ProductID)
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, decimal.Zero, fmt.Errorf("%w: %s", domainErrors.ErrProductNotFound, in.ProductID)
		}
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("lookup product %s: %w", in.ProductID, err)
		}
		name := in.ProductName
		if name == "" {
			name = product.Name
		}
		item := model.OrderItem{
			ProductID:   in.ProductID,
			ProductName: name,
			Quantity:    in.Quantity,
			Price:       product.Price,
		}
		total = total.Add(item.Subtotal())
		items = append(items, item)
	}
	return items, total, nil
}

func (u *OrderUseCase) createAtomically(ctx context.Context, atomic repository.AtomicOrderWriter, order *model.Order, items []model.OrderItem) (string, error) {
	id, err := atomic.CreateWithItems(ctx, order, items)
	if err != nil {
		u.logger.Error("order transaction failed", slog.String("user_id", order.UserID), slog.String("error", err.Error()))
		if errors.Is(err, domainErrors.ErrOrderItemsWriteFailed) || errors.Is(err, domainErrors.ErrOrderHeaderWriteFailed) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", domainErrors.ErrOrderHeaderWriteFailed, err)
	}
	return id, nil
}

func (u *OrderUseCase) createWithCompensation(ctx context.Context, order *model.Order, items []model.OrderItem) (string, error) {
	id, err := u.orders.CreateHeader(ctx, order)
	if err != nil {
		u.logger.Error("order header insert failed", slog.String("user_id", order.UserID), slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %w", domainErrors.ErrOrderHeaderWriteFailed, err)
	}

	for i := range items {
		items[i].OrderID = id
	}
	if err := u.orders.InsertItems(ctx, id, items); err != nil {
		u.logger.Error("order items insert failed", slog.String("order_id", id), slog.String("error", err.Error()))
		u.compensate(ctx, id)
		return "", fmt.Errorf("%w: %w", domainErrors.ErrOrderItemsWriteFailed, err)
	}
	return id, nil
}

// compensate deletes an order header whose items could not be written.
// A failure is logged and left to the orphan sweep.
func (u *OrderUseCase) compensate(ctx context.Context, orderID string) {
	ctx = context.WithoutCancel(ctx)
	var err error
	for attempt := 1; attempt <= u.settings.CompensationRetries; attempt++ {
		if err = u.orders.DeleteHeader(ctx, orderID); err == nil {
			u.logger.Info("order header compensated", slog.String("order_id", orderID), slog.Int("attempt", attempt))
			return
		}
		if attempt < u.settings.CompensationRetries {
			time.Sleep(u.settings.CompensationBackoff * time.Duration(attempt))
		}
	}
	u.logger.Error("order header compensation failed",
		slog.String("order_id", orderID),
		slog.Int("attempts", u.settings.CompensationRetries),
		slog.String("error", err.Error()),
	)
	notifyBestEffort(ctx, u.notifier, u.logger, model.OrderCleanupNotification(orderID))
}

// SweepOrphans deletes order headers older than the grace period that own no items.
func (u *OrderUseCase) SweepOrphans(ctx context.Context, limit int) (int, error) {
	orphans, err := u.Orphans(ctx, limit)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, o := range orphans {
		if err := u.RemoveOrphan(ctx, o.ID); err != nil {
			u.logger.Error("orphan delete failed", slog.String("order_id", o.ID), slog.String("error", err.Error()))
			continue
		}
		removed++
	}
	return removed, nil
}

// Orphans lists order headers without items older than the grace period.
func (u *OrderUseCase) Orphans(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.ListOrphans(ctx, time.Now().Add(-u.settings.SweepGracePeriod), limit)
}

// RemoveOrphan deletes a single orphaned header.
func (u *OrderUseCase) RemoveOrphan(ctx context.Context, orderID string) error {
	if err := u.orders.DeleteHeader(ctx, orderID); err != nil {
		return err
	}
	u.logger.Info("orphan order removed", slog.String("order_id", orderID))
	return nil
}

// ListByUser returns the customer's orders, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// GetForUser returns an order with items if it belongs to the user.
func (u *OrderUseCase) GetForUser(ctx context.Context, userID, orderID string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// List returns all orders for administration, newest first.
func (u *OrderUseCase) List(ctx context.Context) ([]model.Order, error) {
	return u.orders.List(ctx)
}

// Get returns any order with items.
func (u *OrderUseCase) Get(ctx context.Context, orderID string) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

// UpdateStatus sets a new status. Transitions between statuses are not restricted.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	if !status.Valid() {
		return domainErrors.ErrInvalidStatus
	}
	if err := u.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}
	u.logger.Info("order status updated", slog.String("order_id", orderID), slog.String("status", string(status)))
	return nil
}

func verifyProfile(ctx context.Context, profiles repository.ProfileRepository, userID string) error {
	if userID == "" {
		return domainErrors.ErrUserNotVerified
	}
	_, err := profiles.GetByID(ctx, userID)
	if errors.Is(err, domainErrors.ErrNotFound) {
		return domainErrors.ErrUserNotVerified
	}
	if err != nil {
		return fmt.Errorf("lookup profile: %w", err)
	}
	return nil
}

func normalizeOrderInput(in *model.PlaceOrderInput) error {
	in.UserID = strings.TrimSpace(in.UserID)
	if in.Status == "" {
		in.Status = model.OrderStatusPending
	}
	if !in.Status.Valid() {
		return fmt.Errorf("%w: %w", domainErrors.ErrInvalidOrder, domainErrors.ErrInvalidStatus)
	}
	if !in.DeliveryAddress.Complete() {
		return fmt.Errorf("%w: incomplete delivery address", domainErrors.ErrInvalidOrder)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: no items", domainErrors.ErrInvalidOrder)
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 || item.Quantity > model.MaxItemQuantity {
			return fmt.Errorf("%w: bad item %q", domainErrors.ErrInvalidOrder, item.ProductID)
		}
	}
	return nil
}
