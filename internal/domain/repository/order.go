package repository

import (
	"context"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders and their items.
type OrderRepository interface {
	// CreateHeader inserts the order row without items and returns its id.
	CreateHeader(ctx context.Context, order *model.Order) (string, error)
	// InsertItems writes all items of an order in a single batch.
	InsertItems(ctx context.Context, orderID string, items []model.OrderItem) error
	// DeleteHeader removes an order header. Deleting a missing order is not an error.
	DeleteHeader(ctx context.Context, orderID string) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
	// ListOrphans returns headers created before olderThan that own no items.
	ListOrphans(ctx context.Context, olderThan time.Time, limit int) ([]model.Order, error)
}

// AtomicOrderWriter is implemented by order stores able to write a header
// and its items as one unit.
type AtomicOrderWriter interface {
	CreateWithItems(ctx context.Context, order *model.Order, items []model.OrderItem) (string, error)
}
