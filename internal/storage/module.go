package storage

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/storage/postgres"
	"github.com/polkiloo/storefront/internal/storage/rest"
)

// Module wires the configured storage backend and its repositories.
var Module = fx.Options(
	fx.Provide(newStore),
	fx.Provide(
		func(s repository.Store) repository.ProfileRepository { return s.Profiles() },
		func(s repository.Store) repository.ProductRepository { return s.Products() },
		func(s repository.Store) repository.OrderRepository { return s.Orders() },
		func(s repository.Store) repository.ReservationRepository { return s.Reservations() },
		func(s repository.Store) repository.NotificationRepository { return s.Notifications() },
		func(s repository.Store) repository.InquiryRepository { return s.Inquiries() },
	),
	fx.Invoke(registerLifecycle),
)

type storeParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

var (
	openPostgres = func(ctx context.Context, dsn string, logger *slog.Logger) (repository.Store, error) {
		s, err := postgres.New(ctx, dsn, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	openREST = func(baseURL, key string, logger *slog.Logger) (repository.Store, error) {
		c, err := rest.New(baseURL, key, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
)

func newStore(p storeParams) (repository.Store, error) {
	switch p.Config.StoreBackend {
	case config.BackendPostgres:
		p.Logger.Info("using postgres store")
		return openPostgres(p.Ctx, p.Config.DatabaseURI, p.Logger)
	case config.BackendREST:
		p.Logger.Info("using rest store", slog.String("url", p.Config.RESTURL))
		return openREST(p.Config.RESTURL, p.Config.ServiceRoleKey, p.Logger)
	default:
		return nil, fmt.Errorf("unknown store backend %q", p.Config.StoreBackend)
	}
}

func registerLifecycle(lc fx.Lifecycle, store repository.Store) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			store.Close()
			return nil
		},
	})
}
