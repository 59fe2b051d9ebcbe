package dto

import "time"

// CreateReservationRequest describes a service booking payload.
type CreateReservationRequest struct {
	ServiceName    string  `json:"serviceName" binding:"required"`
	FullName       string  `json:"fullName" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Phone          string  `json:"phone" binding:"required"`
	PreferredDate  string  `json:"preferredDate" binding:"required"`
	PreferredTime  string  `json:"preferredTime" binding:"required"`
	ServiceAddress string  `json:"serviceAddress" binding:"required"`
	Notes          *string `json:"notes,omitempty"`
}

// ReservationResponse describes a stored booking.
type ReservationResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	ServiceName    string    `json:"serviceName"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	PreferredDate  string    `json:"preferredDate"`
	PreferredTime  string    `json:"preferredTime"`
	ServiceAddress string    `json:"serviceAddress"`
	Notes          *string   `json:"notes,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}
