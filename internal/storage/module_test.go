package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/storage/rest"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewStoreSelectsBackend(t *testing.T) {
	memory := testhelpers.NewMemoryStore()
	original := openPostgres
	t.Cleanup(func() { openPostgres = original })

	var gotDSN string
	openPostgres = func(_ context.Context, dsn string, _ *slog.Logger) (repository.Store, error) {
		gotDSN = dsn
		return memory, nil
	}

	store, err := newStore(storeParams{
		Ctx:    context.Background(),
		Config: &config.Config{StoreBackend: config.BackendPostgres, DatabaseURI: "postgres://db"},
		Logger: testLogger(),
	})
	if err != nil || store != memory || gotDSN != "postgres://db" {
		t.Fatalf("unexpected postgres selection: %v %v %q", store, err, gotDSN)
	}

	store, err = newStore(storeParams{
		Ctx:    context.Background(),
		Config: &config.Config{StoreBackend: config.BackendREST, RESTURL: "https://project.example", ServiceRoleKey: "key"},
		Logger: testLogger(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.(*rest.Client); !ok {
		t.Fatalf("expected rest client, got %T", store)
	}

	if _, err := newStore(storeParams{Ctx: context.Background(), Config: &config.Config{StoreBackend: "mongo"}, Logger: testLogger()}); err == nil {
		t.Fatal("expected unknown backend error")
	}

	openPostgres = func(context.Context, string, *slog.Logger) (repository.Store, error) {
		return nil, errors.New("connect failed")
	}
	if _, err := newStore(storeParams{Ctx: context.Background(), Config: &config.Config{StoreBackend: config.BackendPostgres}, Logger: testLogger()}); err == nil {
		t.Fatal("expected connection error")
	}
}

func TestRegisterLifecycleClosesStore(t *testing.T) {
	memory := testhelpers.NewMemoryStore()
	lc := fxtest.NewLifecycle(t)
	registerLifecycle(lc, memory)

	lc.RequireStart()
	lc.RequireStop()
	if !memory.Closed {
		t.Fatal("expected store to be closed on stop")
	}
}
