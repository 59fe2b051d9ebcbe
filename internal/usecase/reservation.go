package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// ReservationUseCase handles service bookings.
type ReservationUseCase struct {
	profiles     repository.ProfileRepository
	reservations repository.ReservationRepository
	notifier     Notifier
	logger       *slog.Logger
}

// NewReservationUseCase constructs ReservationUseCase.
func NewReservationUseCase(
	profiles repository.ProfileRepository,
	reservations repository.ReservationRepository,
	notifier Notifier,
	logger *slog.Logger,
) *ReservationUseCase {
	return &ReservationUseCase{profiles: profiles, reservations: reservations, notifier: notifier, logger: logger}
}

// Create verifies the customer and stores a pending reservation.
func (u *ReservationUseCase) Create(ctx context.Context, in model.ReservationInput) (string, error) {
	if err := validateReservation(&in); err != nil {
		return "", err
	}

	if err := verifyProfile(ctx, u.profiles, in.UserID); err != nil {
		u.logger.Warn("reservation rejected", slog.String("user_id", in.UserID), slog.String("error", err.Error()))
		return "", err
	}

	r := &model.Reservation{
		UserID:         in.UserID,
		ServiceName:    in.ServiceName,
		FullName:       in.FullName,
		Email:          in.Email,
		Phone:          in.Phone,
		PreferredDate:  in.PreferredDate,
		PreferredTime:  in.PreferredTime,
		ServiceAddress: in.ServiceAddress,
		Notes:          in.Notes,
		Status:         model.ReservationStatusPending,
	}

	id, err := u.reservations.Create(ctx, r)
	if err != nil {
		u.logger.Error("reservation insert failed", slog.String("user_id", in.UserID), slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %w", domainErrors.ErrReservationWriteFailed, err)
	}
	r.ID = id

	u.logger.Info("reservation created", slog.String("reservation_id", id), slog.String("service", r.ServiceName))
	notifyBestEffort(ctx, u.notifier, u.logger, model.BookingNotification(*r))
	return id, nil
}

// ListByUser returns the customer's reservations.
func (u *ReservationUseCase) ListByUser(ctx context.Context, userID string) ([]model.Reservation, error) {
	return u.reservations.ListByUser(ctx, userID)
}

// List returns every reservation.
func (u *ReservationUseCase) List(ctx context.Context) ([]model.Reservation, error) {
	return u.reservations.List(ctx)
}

// UpdateStatus changes reservation status and notifies admins.
func (u *ReservationUseCase) UpdateStatus(ctx context.Context, id string, status model.ReservationStatus) error {
	if !status.Valid() {
		return domainErrors.ErrInvalidStatus
	}
	if err := u.reservations.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	u.logger.Info("reservation status updated", slog.String("reservation_id", id), slog.String("status", string(status)))
	notifyBestEffort(ctx, u.notifier, u.logger, model.ReservationStatusNotification(id, status))
	return nil
}

func validateReservation(in *model.ReservationInput) error {
	in.UserID = strings.TrimSpace(in.UserID)
	in.ServiceName = strings.TrimSpace(in.ServiceName)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)

	required := []struct{ field, value string }{
		{"service name", in.ServiceName},
		{"full name", in.FullName},
		{"email", in.Email},
		{"phone", in.Phone},
		{"preferred date", in.PreferredDate},
		{"preferred time", in.PreferredTime},
		{"service address", in.ServiceAddress},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required", domainErrors.ErrInvalidReservation, r.field)
		}
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: invalid email", domainErrors.ErrInvalidReservation)
	}
	return nil
}
