package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// TooManyRequestsError represents rate limiting signal from the data API.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// apiError mirrors the error body returned by the data API.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

// Client is a repository.Store over a PostgREST-compatible HTTP API.
// Writes are independent requests; there are no transactions.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// New creates a client authorised with the service role key.
func New(baseURL, serviceKey string, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse rest url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("rest url must be absolute")
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(parsed.String(), "/")+"/rest/v1").
		SetTimeout(10*time.Second).
		SetHeader("apikey", serviceKey).
		SetAuthToken(serviceKey).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &Client{http: httpClient, logger: logger}, nil
}

// Close is a no-op; the HTTP client holds no pooled resources worth releasing.
func (c *Client) Close() {}

// HealthCheck performs a cheap read against the profiles table.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	resp, err := c.request(ctx).
		SetQueryParams(map[string]string{"select": "id", "limit": "1"}).
		Get("/profiles")
	return c.check(resp, err, "health check")
}

func (c *Client) Profiles() repository.ProfileRepository { return &profileRepository{client: c} }

func (c *Client) Products() repository.ProductRepository { return &productRepository{client: c} }

func (c *Client) Orders() repository.OrderRepository { return &orderRepository{client: c} }

func (c *Client) Reservations() repository.ReservationRepository {
	return &reservationRepository{client: c}
}

func (c *Client) Notifications() repository.NotificationRepository {
	return &notificationRepository{client: c}
}

func (c *Client) Inquiries() repository.InquiryRepository { return &inquiryRepository{client: c} }

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

func (c *Client) returning(ctx context.Context) *resty.Request {
	return c.request(ctx).SetHeader("Prefer", "return=representation")
}

// check converts transport and API failures into errors.
func (c *Client) check(resp *resty.Response, err error, op string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !resp.IsError() {
		return nil
	}
	if resp.StatusCode() == http.StatusTooManyRequests {
		return TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header().Get("Retry-After"))}
	}

	var body apiError
	_ = json.Unmarshal(resp.Body(), &body)
	switch body.Code {
	case "23505":
		return domainErrors.ErrAlreadyExists
	case "22P02", "PGRST116":
		return domainErrors.ErrNotFound
	}

	c.logger.Error("data api request failed",
		slog.String("op", op),
		slog.Int("status", resp.StatusCode()),
		slog.String("code", body.Code),
		slog.String("message", body.Message),
	)
	return fmt.Errorf("%s: %s", op, resp.Status())
}

func eq(value string) string { return "eq." + value }

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}

var _ repository.Store = (*Client)(nil)
