package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryAddress is the shipping address attached to an order.
type DeliveryAddress struct {
	District string  `json:"district" binding:"required"`
	Village  string  `json:"village" binding:"required"`
	Cell     string  `json:"cell" binding:"required"`
	Phone    string  `json:"phone" binding:"required"`
	Notes    *string `json:"notes,omitempty"`
}

// OrderItemRequest is a requested cart line. Price is accepted but ignored.
type OrderItemRequest struct {
	ProductID   string          `json:"productId" binding:"required"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity" binding:"required,gt=0,max=2147483647"`
	Price       decimal.Decimal `json:"price"`
}

// CreateOrderRequest describes checkout payload.
type CreateOrderRequest struct {
	Status          string             `json:"status"`
	DeliveryAddress DeliveryAddress    `json:"deliveryAddress"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateStatusRequest is used by admin status updates for orders and reservations.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreatedResponse carries the identifier of a created record.
type CreatedResponse struct {
	ID string `json:"id"`
}

type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// OrderResponse describes an order with optional items.
type OrderResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"userId"`
	CustomerEmail   string              `json:"customerEmail,omitempty"`
	Status          string              `json:"status"`
	TotalPrice      decimal.Decimal     `json:"totalPrice"`
	DeliveryAddress DeliveryAddress     `json:"deliveryAddress"`
	CreatedAt       time.Time           `json:"createdAt"`
	Items           []OrderItemResponse `json:"items,omitempty"`
}

// SweepResponse reports how many orphaned orders were removed.
type SweepResponse struct {
	Removed int `json:"removed"`
}
