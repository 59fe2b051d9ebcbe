package postgres

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

var orderHeaderColumns = []string{"id", "user_id", "status", "total_price", "delivery_address", "created_at", "email"}

const addressJSON = `{"district":"Gasabo","village":"V","cell":"C","phone":"0780000000","notes":null}`

func testOrder() *model.Order {
	return &model.Order{
		UserID:     "11111111-1111-1111-1111-111111111111",
		Status:     model.OrderStatusPending,
		TotalPrice: decimal.RequireFromString("30.00"),
		DeliveryAddress: model.DeliveryAddress{
			District: "Gasabo", Village: "V", Cell: "C", Phone: "0780000000",
		},
	}
}

func testItems() []model.OrderItem {
	return []model.OrderItem{{ProductID: "p1", ProductName: "Broom", Quantity: 3, Price: decimal.RequireFromString("10.00")}}
}

func TestCatalogRepositories(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	ctx := context.Background()

	mock.ExpectQuery("FROM profiles WHERE id=").WithArgs("u1").WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "email"}).AddRow("u1", "u1@example.com"))
	profile, err := storage.Profiles().GetByID(ctx, "u1")
	if err != nil || profile.Email != "u1@example.com" {
		t.Fatalf("unexpected profile %+v, %v", profile, err)
	}

	mock.ExpectQuery("FROM profiles WHERE id=").WithArgs("ghost").WillReturnError(pgx.ErrNoRows)
	if _, err := storage.Profiles().GetByID(ctx, "ghost"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM products WHERE id=").WithArgs("p1").WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "name", "price"}).AddRow("p1", "Broom", "10.50"))
	product, err := storage.Products().GetByID(ctx, "p1")
	if err != nil || !product.Price.Equal(decimal.RequireFromString("10.5")) {
		t.Fatalf("unexpected product %+v, %v", product, err)
	}

	mock.ExpectQuery("FROM products WHERE id=").WithArgs("p2").WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "name", "price"}).AddRow("p2", "Mop", "abc"))
	if _, err := storage.Products().GetByID(ctx, "p2"); err == nil {
		t.Fatal("expected price parse error")
	}

	mock.ExpectQuery("FROM products WHERE id=").WithArgs("missing").WillReturnError(pgx.ErrNoRows)
	if _, err := storage.Products().GetByID(ctx, "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryCreateHeaderAndItems(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}
	ctx := context.Background()
	now := time.Now()

	order := testOrder()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(order.UserID, "pending", order.TotalPrice.String(), pgxmockv3.AnyArg()).
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "created_at"}).AddRow("o1", now))
	id, err := repo.CreateHeader(ctx, order)
	if err != nil || id != "o1" || order.ID != "o1" || !order.CreatedAt.Equal(now) {
		t.Fatalf("unexpected header result %q %+v %v", id, order, err)
	}

	items := testItems()
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs("o1", []string{"p1"}, []string{"Broom"}, []int32{3}, []string{items[0].Price.String()}).
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	if err := repo.InsertItems(ctx, "o1", items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("INSERT INTO order_items").WillReturnResult(pgxmockv3.NewResult("INSERT", 0))
	if err := repo.InsertItems(ctx, "o1", items); err == nil {
		t.Fatal("expected short insert to fail")
	}

	mock.ExpectExec("INSERT INTO order_items").WillReturnError(errors.New("fk violation"))
	if err := repo.InsertItems(ctx, "o1", items); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery("INSERT INTO orders").WillReturnError(errors.New("insert"))
	if _, err := repo.CreateHeader(ctx, testOrder()); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryCreateWithItems(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").WillReturnRows(pgxmockv3.NewRows([]string{"id", "created_at"}).AddRow("o1", time.Now()))
	mock.ExpectExec("INSERT INTO order_items").WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectCommit()
	id, err := repo.CreateWithItems(ctx, testOrder(), testItems())
	if err != nil || id != "o1" {
		t.Fatalf("unexpected result %q, %v", id, err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").WillReturnRows(pgxmockv3.NewRows([]string{"id", "created_at"}).AddRow("o2", time.Now()))
	mock.ExpectExec("INSERT INTO order_items").WillReturnError(errors.New("batch failed"))
	mock.ExpectRollback()
	if _, err := repo.CreateWithItems(ctx, testOrder(), testItems()); !errors.Is(err, domainErrors.ErrOrderItemsWriteFailed) {
		t.Fatalf("expected items write failure, got %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").WillReturnError(errors.New("insert"))
	mock.ExpectRollback()
	if _, err := repo.CreateWithItems(ctx, testOrder(), testItems()); !errors.Is(err, domainErrors.ErrOrderHeaderWriteFailed) {
		t.Fatalf("expected header write failure, got %v", err)
	}

	mock.ExpectBegin().WillReturnError(errors.New("begin"))
	if _, err := repo.CreateWithItems(ctx, testOrder(), testItems()); err == nil {
		t.Fatal("expected begin error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryQuantityBounds(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}
	ctx := context.Background()

	oversized := []model.OrderItem{{ProductID: "p1", ProductName: "Broom", Quantity: math.MaxInt32 + 1, Price: decimal.RequireFromString("0.01")}}
	if err := repo.InsertItems(ctx, "o1", oversized); !errors.Is(err, domainErrors.ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder, got %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").WillReturnRows(pgxmockv3.NewRows([]string{"id", "created_at"}).AddRow("o1", time.Now()))
	mock.ExpectRollback()
	if _, err := repo.CreateWithItems(ctx, testOrder(), oversized); !errors.Is(err, domainErrors.ErrOrderItemsWriteFailed) {
		t.Fatalf("expected items write failure, got %v", err)
	}

	limit := []model.OrderItem{{ProductID: "p1", ProductName: "Broom", Quantity: math.MaxInt32, Price: decimal.RequireFromString("0.01")}}
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs("o1", []string{"p1"}, []string{"Broom"}, []int32{math.MaxInt32}, []string{"0.01"}).
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	if err := repo.InsertItems(ctx, "o1", limit); err != nil {
		t.Fatalf("unexpected error at the quantity limit: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryDeleteHeader(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM orders WHERE id=").WithArgs("o1").WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	if err := repo.DeleteHeader(ctx, "o1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("DELETE FROM orders WHERE id=").WithArgs("o1").WillReturnResult(pgxmockv3.NewResult("DELETE", 0))
	if err := repo.DeleteHeader(ctx, "o1"); err != nil {
		t.Fatalf("repeated delete must succeed: %v", err)
	}

	mock.ExpectExec("DELETE FROM orders WHERE id=").WithArgs("bad").WillReturnError(errors.New("timeout"))
	if err := repo.DeleteHeader(ctx, "bad"); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryGetByID(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("FROM orders o").WithArgs("o1").WillReturnRows(
		pgxmockv3.NewRows(orderHeaderColumns).AddRow("o1", "u1", "pending", "30.00", []byte(addressJSON), now, "u1@example.com"))
	mock.ExpectQuery("FROM order_items i").WithArgs("o1").WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "order_id", "product_id", "product_name", "quantity", "price"}).
			AddRow("i1", "o1", "p1", "Broom", 3, "10.00"))

	order, err := repo.GetByID(ctx, "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.CustomerEmail != "u1@example.com" || order.DeliveryAddress.District != "Gasabo" {
		t.Fatalf("unexpected order %+v", order)
	}
	if !order.TotalPrice.Equal(decimal.RequireFromString("30")) || len(order.Items) != 1 || order.Items[0].Quantity != 3 {
		t.Fatalf("unexpected order contents %+v", order)
	}

	mock.ExpectQuery("FROM orders o").WithArgs("missing").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM orders o").WithArgs("o1").WillReturnRows(
		pgxmockv3.NewRows(orderHeaderColumns).AddRow("o1", "u1", "pending", "30.00", []byte(addressJSON), now, ""))
	mock.ExpectQuery("FROM order_items i").WithArgs("o1").WillReturnError(errors.New("items"))
	if _, err := repo.GetByID(ctx, "o1"); err == nil {
		t.Fatal("expected items query error")
	}

	mock.ExpectQuery("FROM orders o").WithArgs("o1").WillReturnRows(
		pgxmockv3.NewRows(orderHeaderColumns).AddRow("o1", "u1", "pending", "30.00", []byte("{"), now, ""))
	if _, err := repo.GetByID(ctx, "o1"); err == nil {
		t.Fatal("expected address decode error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryLists(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}
	ctx := context.Background()
	now := time.Now()

	rows := func() *pgxmockv3.Rows {
		return pgxmockv3.NewRows(orderHeaderColumns).
			AddRow("o2", "u1", "shipped", "5", []byte(addressJSON), now, "u1@example.com").
			AddRow("o1", "u1", "pending", "7.5", []byte(addressJSON), now.Add(-time.Hour), "u1@example.com")
	}

	mock.ExpectQuery("WHERE o.user_id=").WithArgs("u1").WillReturnRows(rows())
	list, err := repo.ListByUser(ctx, "u1")
	if err != nil || len(list) != 2 || list[0].Status != model.OrderStatusShipped {
		t.Fatalf("unexpected list %+v, %v", list, err)
	}

	mock.ExpectQuery("FROM orders o").WillReturnRows(rows())
	if list, err := repo.List(ctx); err != nil || len(list) != 2 {
		t.Fatalf("unexpected admin list %+v, %v", list, err)
	}

	cutoff := now.Add(-10 * time.Minute)
	mock.ExpectQuery("NOT EXISTS").WithArgs(cutoff, 5).WillReturnRows(
		pgxmockv3.NewRows(orderHeaderColumns).AddRow("o3", "u1", "pending", "1", []byte(addressJSON), now.Add(-time.Hour), ""))
	orphans, err := repo.ListOrphans(ctx, cutoff, 5)
	if err != nil || len(orphans) != 1 || orphans[0].ID != "o3" {
		t.Fatalf("unexpected orphans %+v, %v", orphans, err)
	}

	mock.ExpectQuery("FROM orders o").WillReturnError(errors.New("query"))
	if _, err := repo.List(ctx); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery("FROM orders o").WillReturnRows(
		pgxmockv3.NewRows(orderHeaderColumns).AddRow("o1", "u1", "pending", "bad", []byte(addressJSON), now, ""))
	if _, err := repo.List(ctx); err == nil {
		t.Fatal("expected total parse error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryListRowsError(t *testing.T) {
	storage := &Storage{pool: &rowsErrorPool{rows: &errorRows{err: errors.New("rows")}}}
	repo := &orderRepository{storage: storage}
	if _, err := repo.List(context.Background()); err == nil {
		t.Fatal("expected rows error")
	}
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}
	ctx := context.Background()

	mock.ExpectExec("UPDATE orders SET status=").WithArgs("shipped", "o1").WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.UpdateStatus(ctx, "o1", model.OrderStatusShipped); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE orders SET status=").WithArgs("shipped", "missing").WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.UpdateStatus(ctx, "missing", model.OrderStatusShipped); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("UPDATE orders SET status=").WillReturnError(errors.New("boom"))
	if err := repo.UpdateStatus(ctx, "o1", model.OrderStatusShipped); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
