package test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// StoreFailures injects errors into MemoryStore operations.
type StoreFailures struct {
	GetProfile         error
	GetProduct         error
	CreateHeader       error
	InsertItems        error
	DeleteHeader       error
	DeleteHeaderTimes  int // number of DeleteHeader calls that fail before succeeding; 0 means always
	UpdateOrderStatus  error
	CreateReservation  error
	CreateNotification error
	CreateInquiry      error
	HealthCheck        error
}

// MemoryStore is an in-memory repository.Store without transactional writes.
type MemoryStore struct {
	mu sync.Mutex

	profiles      map[string]model.Profile
	products      map[string]model.Product
	orders        map[string]model.Order
	items         map[string][]model.OrderItem
	reservations  map[string]model.Reservation
	notifications []model.Notification
	inquiries     []model.Inquiry
	seq           int

	Fail              StoreFailures
	DeleteHeaderCalls int
	Closed            bool
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles:     make(map[string]model.Profile),
		products:     make(map[string]model.Product),
		orders:       make(map[string]model.Order),
		items:        make(map[string][]model.OrderItem),
		reservations: make(map[string]model.Reservation),
	}
}

// AddProfile registers a verified user.
func (s *MemoryStore) AddProfile(p model.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = p
}

// AddProduct puts a product into the catalog.
func (s *MemoryStore) AddProduct(p model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// PutOrder stores a header and its items as is.
func (s *MemoryStore) PutOrder(o model.Order, items []model.OrderItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
	if len(items) > 0 {
		s.items[o.ID] = items
	}
}

// OrderCount returns the number of stored order headers.
func (s *MemoryStore) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// ItemCount returns the number of stored line items across all orders.
func (s *MemoryStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, items := range s.items {
		n += len(items)
	}
	return n
}

// ReservationCount returns the number of stored reservations.
func (s *MemoryStore) ReservationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reservations)
}

// StoredNotifications returns a copy of inserted notifications.
func (s *MemoryStore) StoredNotifications() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Notification(nil), s.notifications...)
}

// Profiles implements repository.Factory.
func (s *MemoryStore) Profiles() repository.ProfileRepository { return memoryProfiles{s} }

// Products implements repository.Factory.
func (s *MemoryStore) Products() repository.ProductRepository { return memoryProducts{s} }

// Orders implements repository.Factory.
func (s *MemoryStore) Orders() repository.OrderRepository { return &MemoryOrders{s} }

// Reservations implements repository.Factory.
func (s *MemoryStore) Reservations() repository.ReservationRepository {
	return memoryReservations{s}
}

// Notifications implements repository.Factory.
func (s *MemoryStore) Notifications() repository.NotificationRepository {
	return memoryNotifications{s}
}

// Inquiries implements repository.Factory.
func (s *MemoryStore) Inquiries() repository.InquiryRepository { return memoryInquiries{s} }

// HealthCheck returns the injected failure.
func (s *MemoryStore) HealthCheck(context.Context) error { return s.Fail.HealthCheck }

// Close marks the store closed.
func (s *MemoryStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closed = true
}

func (s *MemoryStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s%d", prefix, s.seq)
}

type memoryProfiles struct{ s *MemoryStore }

func (r memoryProfiles) GetByID(_ context.Context, id string) (*model.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail.GetProfile != nil {
		return nil, r.s.Fail.GetProfile
	}
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &p, nil
}

type memoryProducts struct{ s *MemoryStore }

func (r memoryProducts) GetByID(_ context.Context, id string) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail.GetProduct != nil {
		return nil, r.s.Fail.GetProduct
	}
	p, ok := r.s.products[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &p, nil
}

// MemoryOrders writes header and items as separate steps.
type MemoryOrders struct{ s *MemoryStore }

// CreateHeader stores the header and assigns an id.
func (r *MemoryOrders) CreateHeader(_ context.Context, o *model.Order) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail.CreateHeader != nil {
		return "", r.s.Fail.CreateHeader
	}
	stored := *o
	stored.ID = r.s.nextID("order-")
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	stored.Items = nil
	r.s.orders[stored.ID] = stored
	return stored.ID, nil
}

// InsertItems stores all items of an order or none.
func (r *MemoryOrders) InsertItems(_ context.Context, orderID string, items []model.OrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail.InsertItems != nil {
		return r.s.Fail.InsertItems
	}
	if _, ok := r.s.orders[orderID]; !ok {
		return domainErrors.ErrNotFound
	}
	stored := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		item.ID = r.s.nextID("item-")
		item.OrderID = orderID
		stored = append(stored, item)
	}
	r.s.items[orderID] = append(r.s.items[orderID], stored...)
	return nil
}

// DeleteHeader removes the header and its items. Missing ids are not an error.
func (r *MemoryOrders) DeleteHeader(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.DeleteHeaderCalls++
	if r.s.Fail.DeleteHeader != nil && (r.s.Fail.DeleteHeaderTimes == 0 || r.s.DeleteHeaderCalls <= r.s.Fail.DeleteHeaderTimes) {
		return r.s.Fail.DeleteHeader
	}
	delete(r.s.orders, id)
	delete(r.s.items, id)
	return nil
}

// GetByID returns the order with items.
func (r *MemoryOrders) GetByID(_ context.Context, id string) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	o.Items = append([]model.OrderItem(nil), r.s.items[id]...)
	return &o, nil
}

// ListByUser returns the user's orders, newest first.
func (r *MemoryOrders) ListByUser(_ context.Context, userID string) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.sortedOrders(func(o model.Order) bool { return o.UserID == userID }), nil
}

// List returns all orders, newest first.
func (r *MemoryOrders) List(context.Context) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.sortedOrders(func(model.Order) bool { return true }), nil
}

// UpdateStatus changes status of an existing order.
func (r *MemoryOrders) UpdateStatus(_ context.Context, id string, status model.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail.UpdateOrderStatus != nil {
		return r.s.Fail.UpdateOrderStatus
	}
	o, ok := r.s.orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	o.Status = status
	r.s.orders[id] = o
	return nil
}

// ListOrphans returns headers without items created before olderThan.
func (r *MemoryOrders) ListOrphans(_ context.Context, olderThan time.Time, limit int) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	orphans := r.s.sortedOrders(func(o model.Order) bool {
		return len(r.s.items[o.ID]) == 0 && o.CreatedAt.Before(olderThan)
	})
	if limit > 0 && len(orphans) > limit {
		orphans = orphans[:limit]
	}
	return orphans, nil
}

func (s *MemoryStore) sortedOrders(keep func(model.Order) bool) []model.Order {
	var out []model.Order
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// AtomicOrders adds a transactional write on top of MemoryOrders.
type AtomicOrders struct {
	*MemoryOrders
	CreateWithItemsFn func(context.Context, *model.Order, []model.OrderItem) (string, error)
}

// NewAtomicOrders wraps the store's orders repository.
func NewAtomicOrders(s *MemoryStore) *AtomicOrders {
	return &AtomicOrders{MemoryOrders: &MemoryOrders{s}}
}

// CreateWithItems writes header and items under one lock, or nothing.
func (r *AtomicOrders) CreateWithItems(ctx context.Context, o *model.Order, items []model.OrderItem) (string, error) {
	if r.CreateWithItemsFn != nil {
		return r.CreateWithItemsFn(ctx, o, items)
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail.CreateHeader != nil {
		return "", fmt.Errorf("%w: %w", domainErrors.ErrOrderHeaderWriteFailed, s.Fail.CreateHeader)
	}
	if s.Fail.InsertItems != nil {
		return "", fmt.Errorf("%w: %w", domainErrors.ErrOrderItemsWriteFailed, s.Fail.InsertItems)
	}
	stored := *o
	stored.ID = s.nextID("order-")
	stored.CreatedAt = time.Now()
	stored.Items = nil
	s.orders[stored.ID] = stored
	for _, item := range items {
		item.ID = s.nextID("item-")
		item.OrderID = stored.ID
		s.items[stored.ID] = append(s.items[stored.ID], item)
	}
	return stored.ID, nil
}

type memoryReservations struct{ s *MemoryStore }

func (r memoryReservations) Create(_ context.Context, res *model.Reservation) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail.CreateReservation != nil {
		return "", r.s.Fail.CreateReservation
	}
	stored := *res
	stored.ID = r.s.nextID("reservation-")
	stored.CreatedAt = time.Now()
	r.s.reservations[stored.ID] = stored
	return stored.ID, nil
}

func (r memoryReservations) GetByID(_ context.Context, id string) (*model.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.reservations[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &res, nil
}

func (r memoryReservations) ListByUser(ctx context.Context, userID string) ([]model.Reservation, error) {
	all, _ := r.List(ctx)
	var out []model.Reservation
	for _, res := range all {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r memoryReservations) List(context.Context) ([]model.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Reservation, 0, len(r.s.reservations))
	for _, res := range r.s.reservations {
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memoryReservations) UpdateStatus(_ context.Context, id string, status model.ReservationStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.reservations[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	res.Status = status
	r.s.reservations[id] = res
	return nil
}

type memoryNotifications struct{ s *MemoryStore }

func (r memoryNotifications) Create(_ context.Context, n model.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail.CreateNotification != nil {
		return r.s.Fail.CreateNotification
	}
	r.s.notifications = append(r.s.notifications, n)
	return nil
}

type memoryInquiries struct{ s *MemoryStore }

func (r memoryInquiries) Create(_ context.Context, in *model.Inquiry) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail.CreateInquiry != nil {
		return "", r.s.Fail.CreateInquiry
	}
	stored := *in
	stored.ID = r.s.nextID("inquiry-")
	stored.CreatedAt = time.Now()
	r.s.inquiries = append(r.s.inquiries, stored)
	return stored.ID, nil
}

func (r memoryInquiries) List(context.Context) ([]model.Inquiry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Inquiry, len(r.s.inquiries))
	for i := range r.s.inquiries {
		out[len(out)-1-i] = r.s.inquiries[i]
	}
	return out, nil
}

var (
	_ repository.Store             = (*MemoryStore)(nil)
	_ repository.AtomicOrderWriter = (*AtomicOrders)(nil)
)
