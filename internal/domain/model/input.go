package model

import "github.com/shopspring/decimal"

// OrderItemInput is a requested line. Price is what the client displayed and is never trusted.
type OrderItemInput struct {
	ProductID   string
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

// PlaceOrderInput is the shaped request for placing an order.
type PlaceOrderInput struct {
	UserID          string
	Status          OrderStatus
	DeliveryAddress DeliveryAddress
	Items           []OrderItemInput
}

// ReservationInput carries a service booking request.
type ReservationInput struct {
	UserID         string
	ServiceName    string
	FullName       string
	Email          string
	Phone          string
	PreferredDate  string
	PreferredTime  string
	ServiceAddress string
	Notes          *string
}
