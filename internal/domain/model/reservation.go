package model

import "time"

// ReservationStatus describes lifecycle of a service booking.
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCompleted, ReservationStatusCancelled:
		return true
	}
	return false
}

// Reservation is a customer's request to book a service.
type Reservation struct {
	ID             string
	UserID         string
	ServiceName    string
	FullName       string
	Email          string
	Phone          string
	PreferredDate  string
	PreferredTime  string
	ServiceAddress string
	Notes          *string
	Status         ReservationStatus
	CreatedAt      time.Time
}
