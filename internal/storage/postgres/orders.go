package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

type orderRepository struct {
	storage *Storage
}

const orderColumns = `o.id::text, o.user_id::text, o.status, o.total_price::text, o.delivery_address, o.created_at, COALESCE(p.email, '')`

const orderFrom = ` FROM orders o LEFT JOIN profiles p ON p.id = o.user_id`

func insertHeader(ctx context.Context, q querier, o *model.Order) (string, error) {
	address, err := json.Marshal(o.DeliveryAddress)
	if err != nil {
		return "", fmt.Errorf("encode delivery address: %w", err)
	}
	const query = `INSERT INTO orders (user_id, status, total_price, delivery_address)
                   VALUES ($1, $2, $3::numeric, $4::jsonb)
                   RETURNING id::text, created_at`
	var id string
	if err := q.QueryRow(ctx, query, o.UserID, string(o.Status), o.TotalPrice.String(), string(address)).Scan(&id, &o.CreatedAt); err != nil {
		return "", err
	}
	o.ID = id
	return id, nil
}

// insertItems writes every line of an order in a single statement.
func insertItems(ctx context.Context, q querier, orderID string, items []model.OrderItem) error {
	productIDs := make([]string, len(items))
	names := make([]string, len(items))
	quantities := make([]int32, len(items))
	prices := make([]string, len(items))
	for i, item := range items {
		if item.Quantity <= 0 || item.Quantity > model.MaxItemQuantity {
			return fmt.Errorf("%w: quantity %d out of range for %s", domainErrors.ErrInvalidOrder, item.Quantity, item.ProductID)
		}
		productIDs[i] = item.ProductID
		names[i] = item.ProductName
		quantities[i] = int32(item.Quantity)
		prices[i] = item.Price.String()
	}

	const query = `INSERT INTO order_items (order_id, product_id, product_name, quantity, price)
                   SELECT $1, t.product_id, t.product_name, t.quantity, t.price
                   FROM unnest($2::uuid[], $3::text[], $4::int[], $5::numeric[])
                        AS t(product_id, product_name, quantity, price)`
	tag, err := q.Exec(ctx, query, orderID, productIDs, names, quantities, prices)
	if err != nil {
		return err
	}
	if int(tag.RowsAffected()) != len(items) {
		return fmt.Errorf("inserted %d of %d order items", tag.RowsAffected(), len(items))
	}
	return nil
}

func (r *orderRepository) CreateHeader(ctx context.Context, o *model.Order) (string, error) {
	return insertHeader(ctx, r.storage.pool, o)
}

func (r *orderRepository) InsertItems(ctx context.Context, orderID string, items []model.OrderItem) error {
	return insertItems(ctx, r.storage.pool, orderID, items)
}

// CreateWithItems writes header and items in one transaction.
func (r *orderRepository) CreateWithItems(ctx context.Context, o *model.Order, items []model.OrderItem) (string, error) {
	var id string
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		if id, err = insertHeader(ctx, tx, o); err != nil {
			return fmt.Errorf("%w: %w", domainErrors.ErrOrderHeaderWriteFailed, err)
		}
		if err := insertItems(ctx, tx, id, items); err != nil {
			return fmt.Errorf("%w: %w", domainErrors.ErrOrderItemsWriteFailed, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// DeleteHeader removes an order; items go with it via ON DELETE CASCADE.
func (r *orderRepository) DeleteHeader(ctx context.Context, id string) error {
	if _, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id); err != nil {
		if err = mapError(err); err == domainErrors.ErrNotFound {
			return nil
		}
		return err
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + orderFrom + ` WHERE o.id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}

	const itemsQuery = `SELECT i.id::text, i.order_id::text, i.product_id::text,
                               COALESCE(NULLIF(i.product_name, ''), pr.name, 'Unknown Product'),
                               i.quantity, i.price::text
                        FROM order_items i LEFT JOIN products pr ON pr.id = i.product_id
                        WHERE i.order_id=$1 ORDER BY i.product_name`
	rows, err := r.storage.pool.Query(ctx, itemsQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item  model.OrderItem
			price string
		)
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &price); err != nil {
			return nil, err
		}
		if item.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("item price: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + orderFrom + ` WHERE o.user_id=$1 ORDER BY o.created_at DESC`
	orders, err := r.list(ctx, query, userID)
	if err != nil {
		return nil, mapError(err)
	}
	return orders, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+orderFrom+` ORDER BY o.created_at DESC`)
}

func (r *orderRepository) ListOrphans(ctx context.Context, olderThan time.Time, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + orderFrom + `
              WHERE o.created_at < $1
                AND NOT EXISTS (SELECT 1 FROM order_items i WHERE i.order_id = o.id)
              ORDER BY o.created_at
              LIMIT $2`
	return r.list(ctx, query, olderThan, limit)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE orders SET status=$1 WHERE id=$2`, string(status), id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanOrder(row pgx.Row) (model.Order, error) {
	var (
		o       model.Order
		status  string
		total   string
		address []byte
	)
	if err := row.Scan(&o.ID, &o.UserID, &status, &total, &address, &o.CreatedAt, &o.CustomerEmail); err != nil {
		return o, err
	}
	o.Status = model.OrderStatus(strings.ToLower(status))

	var err error
	if o.TotalPrice, err = decimal.NewFromString(total); err != nil {
		return o, fmt.Errorf("order total: %w", err)
	}
	if len(address) > 0 {
		if err := json.Unmarshal(address, &o.DeliveryAddress); err != nil {
			return o, fmt.Errorf("decode delivery address: %w", err)
		}
	}
	return o, nil
}

var _ repository.AtomicOrderWriter = (*orderRepository)(nil)
