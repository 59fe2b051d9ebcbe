package rest

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

var errEmptyInsert = errors.New("insert returned no rows")

const orderSelect = "id,user_id,status,total_price,delivery_address,created_at,profiles(email)"

type orderRepository struct {
	client *Client
}

type orderRow struct {
	ID              string                `json:"id"`
	UserID          string                `json:"user_id"`
	Status          string                `json:"status"`
	TotalPrice      decimal.Decimal       `json:"total_price"`
	DeliveryAddress model.DeliveryAddress `json:"delivery_address"`
	CreatedAt       time.Time             `json:"created_at"`
	Profile         *profileRow           `json:"profiles,omitempty"`
	Items           []struct {
		ID string `json:"id"`
	} `json:"order_items,omitempty"`
}

type orderInsert struct {
	UserID          string                `json:"user_id"`
	Status          string                `json:"status"`
	TotalPrice      decimal.Decimal       `json:"total_price"`
	DeliveryAddress model.DeliveryAddress `json:"delivery_address"`
}

type itemRow struct {
	ID          string          `json:"id,omitempty"`
	OrderID     string          `json:"order_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Product     *struct {
		Name string `json:"name"`
	} `json:"products,omitempty"`
}

func (row orderRow) toModel() model.Order {
	o := model.Order{
		ID:              row.ID,
		UserID:          row.UserID,
		Status:          model.OrderStatus(row.Status),
		TotalPrice:      row.TotalPrice,
		DeliveryAddress: row.DeliveryAddress,
		CreatedAt:       row.CreatedAt,
	}
	if row.Profile != nil {
		o.CustomerEmail = row.Profile.Email
	}
	return o
}

func (r *orderRepository) CreateHeader(ctx context.Context, o *model.Order) (string, error) {
	var rows []createdRow
	resp, err := r.client.returning(ctx).
		SetQueryParam("select", "id,created_at").
		SetBody(orderInsert{
			UserID:          o.UserID,
			Status:          string(o.Status),
			TotalPrice:      o.TotalPrice,
			DeliveryAddress: o.DeliveryAddress,
		}).
		SetResult(&rows).
		Post("/orders")
	if err := r.client.check(resp, err, "insert order"); err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", errEmptyInsert
	}
	o.ID, o.CreatedAt = rows[0].ID, rows[0].CreatedAt
	return o.ID, nil
}

// InsertItems posts all lines as one bulk insert; the API applies it atomically.
func (r *orderRepository) InsertItems(ctx context.Context, orderID string, items []model.OrderItem) error {
	body := make([]itemRow, 0, len(items))
	for _, item := range items {
		body = append(body, itemRow{
			OrderID:     orderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	resp, err := r.client.request(ctx).SetBody(body).Post("/order_items")
	return r.client.check(resp, err, "insert order items")
}

// DeleteHeader removes the order; deleting an absent row is not an error.
func (r *orderRepository) DeleteHeader(ctx context.Context, id string) error {
	resp, err := r.client.request(ctx).SetQueryParam("id", eq(id)).Delete("/orders")
	if err := r.client.check(resp, err, "delete order"); err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return err
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	orders, err := r.list(ctx, map[string]string{"id": eq(id)})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	order := orders[0]

	var rows []itemRow
	resp, err := r.client.request(ctx).
		SetQueryParams(map[string]string{
			"select":   "id,order_id,product_id,product_name,quantity,price,products(name)",
			"order_id": eq(id),
		}).
		SetResult(&rows).
		Get("/order_items")
	if err := r.client.check(resp, err, "list order items"); err != nil {
		return nil, err
	}
	for _, row := range rows {
		name := row.ProductName
		if name == "" && row.Product != nil {
			name = row.Product.Name
		}
		if name == "" {
			name = "Unknown Product"
		}
		order.Items = append(order.Items, model.OrderItem{
			ID:          row.ID,
			OrderID:     row.OrderID,
			ProductID:   row.ProductID,
			ProductName: name,
			Quantity:    row.Quantity,
			Price:       row.Price,
		})
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return r.list(ctx, map[string]string{"user_id": eq(userID)})
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	return r.list(ctx, nil)
}

// ListOrphans embeds order_items and keeps headers that have none.
func (r *orderRepository) ListOrphans(ctx context.Context, olderThan time.Time, limit int) ([]model.Order, error) {
	var rows []orderRow
	resp, err := r.client.request(ctx).
		SetQueryParams(map[string]string{
			"select":      "id,user_id,status,total_price,delivery_address,created_at,order_items(id)",
			"created_at":  "lt." + olderThan.UTC().Format(time.RFC3339Nano),
			"order_items": "is.null",
			"order":       "created_at.asc",
			"limit":       strconv.Itoa(limit),
		}).
		SetResult(&rows).
		Get("/orders")
	if err := r.client.check(resp, err, "list orphan orders"); err != nil {
		return nil, err
	}
	var result []model.Order
	for _, row := range rows {
		if len(row.Items) == 0 {
			result = append(result, row.toModel())
		}
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	var rows []createdRow
	resp, err := r.client.returning(ctx).
		SetQueryParams(map[string]string{"id": eq(id), "select": "id,created_at"}).
		SetBody(map[string]string{"status": string(status)}).
		SetResult(&rows).
		Patch("/orders")
	if err := r.client.check(resp, err, "update order"); err != nil {
		return err
	}
	if len(rows) == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) list(ctx context.Context, filters map[string]string) ([]model.Order, error) {
	params := map[string]string{"select": orderSelect, "order": "created_at.desc"}
	for k, v := range filters {
		params[k] = v
	}
	var rows []orderRow
	resp, err := r.client.request(ctx).SetQueryParams(params).SetResult(&rows).Get("/orders")
	if err := r.client.check(resp, err, "list orders"); err != nil {
		return nil, err
	}
	result := make([]model.Order, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toModel())
	}
	return result, nil
}
