package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

type reservationRepository struct {
	storage *Storage
}

type notificationRepository struct {
	storage *Storage
}

type inquiryRepository struct {
	storage *Storage
}

const reservationColumns = `id::text, user_id::text, service_name, full_name, email, phone,
                            preferred_date, preferred_time, service_address, notes, status, created_at`

func (r *reservationRepository) Create(ctx context.Context, res *model.Reservation) (string, error) {
	const query = `INSERT INTO reservations (user_id, service_name, full_name, email, phone,
                                             preferred_date, preferred_time, service_address, notes, status)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                   RETURNING id::text, created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		res.UserID, res.ServiceName, res.FullName, res.Email, res.Phone,
		res.PreferredDate, res.PreferredTime, res.ServiceAddress, res.Notes, string(res.Status),
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		return "", err
	}
	return res.ID, nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	row := r.storage.pool.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id=$1`, id)
	res, err := scanReservation(row)
	if err != nil {
		return nil, mapError(err)
	}
	return &res, nil
}

func (r *reservationRepository) ListByUser(ctx context.Context, userID string) ([]model.Reservation, error) {
	const query = `SELECT ` + reservationColumns + ` FROM reservations WHERE user_id=$1 ORDER BY created_at DESC`
	list, err := r.list(ctx, query, userID)
	if err != nil {
		return nil, mapError(err)
	}
	return list, nil
}

func (r *reservationRepository) List(ctx context.Context) ([]model.Reservation, error) {
	return r.list(ctx, `SELECT `+reservationColumns+` FROM reservations ORDER BY created_at DESC`)
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id string, status model.ReservationStatus) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE reservations SET status=$1 WHERE id=$2`, string(status), id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *reservationRepository) list(ctx context.Context, query string, args ...any) ([]model.Reservation, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanReservation(row pgx.Row) (model.Reservation, error) {
	var (
		res    model.Reservation
		status string
	)
	err := row.Scan(&res.ID, &res.UserID, &res.ServiceName, &res.FullName, &res.Email, &res.Phone,
		&res.PreferredDate, &res.PreferredTime, &res.ServiceAddress, &res.Notes, &status, &res.CreatedAt)
	res.Status = model.ReservationStatus(status)
	return res, err
}

func (r *notificationRepository) Create(ctx context.Context, n model.Notification) error {
	const query = `INSERT INTO notifications (title, message, type) VALUES ($1, $2, $3)`
	_, err := r.storage.pool.Exec(ctx, query, n.Title, n.Message, string(n.Type))
	return err
}

func (r *inquiryRepository) Create(ctx context.Context, in *model.Inquiry) (string, error) {
	const query = `INSERT INTO inquiries (name, email, subject, message, status)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id::text, created_at`
	if err := r.storage.pool.QueryRow(ctx, query, in.Name, in.Email, in.Subject, in.Message, in.Status).Scan(&in.ID, &in.CreatedAt); err != nil {
		return "", err
	}
	return in.ID, nil
}

func (r *inquiryRepository) List(ctx context.Context) ([]model.Inquiry, error) {
	const query = `SELECT id::text, name, email, subject, message, status, created_at
                   FROM inquiries ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Inquiry
	for rows.Next() {
		var in model.Inquiry
		if err := rows.Scan(&in.ID, &in.Name, &in.Email, &in.Subject, &in.Message, &in.Status, &in.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
