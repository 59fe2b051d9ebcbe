package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/repository"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/usecase"
	"github.com/polkiloo/storefront/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newStorefrontFacade,
		func(f *StorefrontFacade) handlers.StorefrontFacade { return f },
		newHTTPServer,
		newLocker,
		newOrphanSweeper,
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Orders       *usecase.OrderUseCase
	Reservations *usecase.ReservationUseCase
	Inquiries    *usecase.InquiryUseCase
	Store        repository.Store
	Tokens       pkgAuth.Strategy
	Admin        *pkgAuth.AdminKeyVerifier
}

func newStorefrontFacade(p facadeParams) *StorefrontFacade {
	return NewStorefrontFacade(p.Orders, p.Reservations, p.Inquiries, p.Store, p.Tokens, p.Admin)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:              p.Config.RunAddress,
		Handler:           p.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

var newRedisClient = func(opts *redis.Options) *redis.Client {
	return redis.NewClient(opts)
}

type lockerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

// newLocker returns a Redis lease when REDIS_ADDR is set so only one replica sweeps per tick.
func newLocker(p lockerParams) worker.Locker {
	if p.Config.RedisAddr == "" {
		return worker.NoopLocker{}
	}
	client := newRedisClient(&redis.Options{Addr: p.Config.RedisAddr})
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	p.Logger.Info("sweep lock enabled", slog.String("redis", p.Config.RedisAddr))
	return worker.NewRedisLocker(client)
}

type workerParams struct {
	fx.In

	Facade *StorefrontFacade
	Locker worker.Locker
	Config *config.Config
	Logger *slog.Logger
}

func newOrphanSweeper(p workerParams) *worker.OrphanSweeper {
	return worker.NewOrphanSweeper(
		p.Facade,
		p.Locker,
		p.Config.SweepInterval,
		p.Config.SweepBatchSize,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Sweeper    *worker.OrphanSweeper
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting storefront", slog.String("addr", p.Server.Addr), slog.String("store", p.Config.StoreBackend))
			p.Sweeper.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Sweeper.Stop()
			p.Logger.Info("storefront stopped")
			return nil
		},
	})
}
