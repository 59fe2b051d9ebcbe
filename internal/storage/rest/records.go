package rest

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

type profileRepository struct {
	client *Client
}

type productRepository struct {
	client *Client
}

type reservationRepository struct {
	client *Client
}

type notificationRepository struct {
	client *Client
}

type inquiryRepository struct {
	client *Client
}

type profileRow struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type productRow struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type reservationRow struct {
	ID             string    `json:"id,omitempty"`
	UserID         string    `json:"user_id"`
	ServiceName    string    `json:"service_name"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	PreferredDate  string    `json:"preferred_date"`
	PreferredTime  string    `json:"preferred_time"`
	ServiceAddress string    `json:"service_address"`
	Notes          *string   `json:"notes"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type reservationInsert struct {
	UserID         string  `json:"user_id"`
	ServiceName    string  `json:"service_name"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	PreferredDate  string  `json:"preferred_date"`
	PreferredTime  string  `json:"preferred_time"`
	ServiceAddress string  `json:"service_address"`
	Notes          *string `json:"notes"`
	Status         string  `json:"status"`
}

type notificationInsert struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
	IsRead  bool   `json:"is_read"`
}

type inquiryRow struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type inquiryInsert struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type createdRow struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	var rows []profileRow
	resp, err := r.client.request(ctx).
		SetQueryParams(map[string]string{"select": "id,email", "id": eq(id)}).
		SetResult(&rows).
		Get("/profiles")
	if err := r.client.check(resp, err, "get profile"); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return &model.Profile{ID: rows[0].ID, Email: rows[0].Email}, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var rows []productRow
	resp, err := r.client.request(ctx).
		SetQueryParams(map[string]string{"select": "id,name,price", "id": eq(id)}).
		SetResult(&rows).
		Get("/products")
	if err := r.client.check(resp, err, "get product"); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return &model.Product{ID: rows[0].ID, Name: rows[0].Name, Price: rows[0].Price}, nil
}

func (r *reservationRepository) Create(ctx context.Context, res *model.Reservation) (string, error) {
	var rows []createdRow
	resp, err := r.client.returning(ctx).
		SetQueryParam("select", "id,created_at").
		SetBody(reservationInsert{
			UserID:         res.UserID,
			ServiceName:    res.ServiceName,
			FullName:       res.FullName,
			Email:          res.Email,
			Phone:          res.Phone,
			PreferredDate:  res.PreferredDate,
			PreferredTime:  res.PreferredTime,
			ServiceAddress: res.ServiceAddress,
			Notes:          res.Notes,
			Status:         string(res.Status),
		}).
		SetResult(&rows).
		Post("/reservations")
	if err := r.client.check(resp, err, "insert reservation"); err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", errEmptyInsert
	}
	res.ID, res.CreatedAt = rows[0].ID, rows[0].CreatedAt
	return res.ID, nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	list, err := r.list(ctx, map[string]string{"id": eq(id)})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return &list[0], nil
}

func (r *reservationRepository) ListByUser(ctx context.Context, userID string) ([]model.Reservation, error) {
	return r.list(ctx, map[string]string{"user_id": eq(userID)})
}

func (r *reservationRepository) List(ctx context.Context) ([]model.Reservation, error) {
	return r.list(ctx, nil)
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id string, status model.ReservationStatus) error {
	var rows []createdRow
	resp, err := r.client.returning(ctx).
		SetQueryParams(map[string]string{"id": eq(id), "select": "id,created_at"}).
		SetBody(map[string]string{"status": string(status)}).
		SetResult(&rows).
		Patch("/reservations")
	if err := r.client.check(resp, err, "update reservation"); err != nil {
		return err
	}
	if len(rows) == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *reservationRepository) list(ctx context.Context, filters map[string]string) ([]model.Reservation, error) {
	params := map[string]string{"select": "*", "order": "created_at.desc"}
	for k, v := range filters {
		params[k] = v
	}
	var rows []reservationRow
	resp, err := r.client.request(ctx).SetQueryParams(params).SetResult(&rows).Get("/reservations")
	if err := r.client.check(resp, err, "list reservations"); err != nil {
		return nil, err
	}
	result := make([]model.Reservation, 0, len(rows))
	for _, row := range rows {
		result = append(result, model.Reservation{
			ID:             row.ID,
			UserID:         row.UserID,
			ServiceName:    row.ServiceName,
			FullName:       row.FullName,
			Email:          row.Email,
			Phone:          row.Phone,
			PreferredDate:  row.PreferredDate,
			PreferredTime:  row.PreferredTime,
			ServiceAddress: row.ServiceAddress,
			Notes:          row.Notes,
			Status:         model.ReservationStatus(row.Status),
			CreatedAt:      row.CreatedAt,
		})
	}
	return result, nil
}

func (r *notificationRepository) Create(ctx context.Context, n model.Notification) error {
	resp, err := r.client.request(ctx).
		SetBody(notificationInsert{Title: n.Title, Message: n.Message, Type: string(n.Type)}).
		Post("/notifications")
	return r.client.check(resp, err, "insert notification")
}

func (r *inquiryRepository) Create(ctx context.Context, in *model.Inquiry) (string, error) {
	var rows []createdRow
	resp, err := r.client.returning(ctx).
		SetQueryParam("select", "id,created_at").
		SetBody(inquiryInsert{Name: in.Name, Email: in.Email, Subject: in.Subject, Message: in.Message, Status: in.Status}).
		SetResult(&rows).
		Post("/inquiries")
	if err := r.client.check(resp, err, "insert inquiry"); err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", errEmptyInsert
	}
	in.ID, in.CreatedAt = rows[0].ID, rows[0].CreatedAt
	return in.ID, nil
}

func (r *inquiryRepository) List(ctx context.Context) ([]model.Inquiry, error) {
	var rows []inquiryRow
	resp, err := r.client.request(ctx).
		SetQueryParams(map[string]string{"select": "*", "order": "created_at.desc"}).
		SetResult(&rows).
		Get("/inquiries")
	if err := r.client.check(resp, err, "list inquiries"); err != nil {
		return nil, err
	}
	result := make([]model.Inquiry, 0, len(rows))
	for _, row := range rows {
		result = append(result, model.Inquiry(row))
	}
	return result, nil
}
