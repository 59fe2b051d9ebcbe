package model

import "github.com/shopspring/decimal"

// Product is a catalog entry. The service only reads it.
type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// Profile is the application-side record of an authenticated user.
type Profile struct {
	ID    string
	Email string
}
