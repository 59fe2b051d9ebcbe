package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes fulfilment lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether status is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// MaxItemQuantity is the largest quantity a single order line may carry.
const MaxItemQuantity = math.MaxInt32

// DeliveryAddress is stored with the order as a single document.
type DeliveryAddress struct {
	District string  `json:"district"`
	Village  string  `json:"village"`
	Cell     string  `json:"cell"`
	Phone    string  `json:"phone"`
	Notes    *string `json:"notes,omitempty"`
}

// Complete reports whether all required address fields are present.
func (a DeliveryAddress) Complete() bool {
	return a.District != "" && a.Village != "" && a.Cell != "" && a.Phone != ""
}

// Order is a purchase header placed by a customer.
type Order struct {
	ID              string
	UserID          string
	CustomerEmail   string
	Status          OrderStatus
	TotalPrice      decimal.Decimal
	DeliveryAddress DeliveryAddress
	CreatedAt       time.Time
	Items           []OrderItem
}

// OrderItem is a purchased line with the unit price captured at order time.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

// Subtotal returns unit price multiplied by quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
