package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// NotificationType groups admin notifications by source.
type NotificationType string

const (
	NotificationTypeOrder       NotificationType = "order"
	NotificationTypeInquiry     NotificationType = "inquiry"
	NotificationTypeSystem      NotificationType = "system"
	NotificationTypeReservation NotificationType = "reservation"
)

// Notification is an entry in the admin dashboard feed.
type Notification struct {
	Title   string
	Message string
	Type    NotificationType
}

// OrderPlacedNotification announces a new order with its total rounded to cents.
func OrderPlacedNotification(orderID string, total decimal.Decimal) Notification {
	return Notification{
		Title:   "New Order Placed",
		Message: fmt.Sprintf("Order #%s for $%s", orderID, total.StringFixed(2)),
		Type:    NotificationTypeOrder,
	}
}

// OrderCleanupNotification warns admins that an order header without items
// is waiting for the orphan sweep.
func OrderCleanupNotification(orderID string) Notification {
	return Notification{
		Title:   "Order Cleanup Pending",
		Message: fmt.Sprintf("Order #%s has no items and will be removed by the orphan sweep.", orderID),
		Type:    NotificationTypeSystem,
	}
}

// BookingNotification announces a new reservation.
func BookingNotification(r Reservation) Notification {
	return Notification{
		Title:   "New Service Booking",
		Message: fmt.Sprintf("Booking #%s for %s by %s", r.ID, r.ServiceName, r.FullName),
		Type:    NotificationTypeReservation,
	}
}

// ReservationStatusNotification announces an admin status change.
func ReservationStatusNotification(id string, status ReservationStatus) Notification {
	return Notification{
		Title:   "Reservation Status Updated",
		Message: fmt.Sprintf("Reservation %s has been updated to %s.", id, status),
		Type:    NotificationTypeReservation,
	}
}

// InquiryNotification announces a submitted contact form.
func InquiryNotification(in Inquiry) Notification {
	subject := in.Subject
	if subject == "" {
		subject = "No subject"
	}
	return Notification{
		Title:   "New Inquiry Submitted",
		Message: fmt.Sprintf("Inquiry from %s: %s", in.Name, subject),
		Type:    NotificationTypeInquiry,
	}
}
