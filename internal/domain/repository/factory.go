package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Profiles() ProfileRepository
	Products() ProductRepository
	Orders() OrderRepository
	Reservations() ReservationRepository
	Notifications() NotificationRepository
	Inquiries() InquiryRepository
}

// Store is a storage backend: repositories plus connectivity probe.
type Store interface {
	Factory
	HealthCheck(ctx context.Context) error
	Close()
}
