package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/storage/rest"
)

const sweepLockKey = "storefront:orphan-sweep"

// OrderFacade exposes the subset of application functionality required by the sweeper.
type OrderFacade interface {
	OrphanOrders(ctx context.Context, limit int) ([]model.Order, error)
	RemoveOrphanOrder(ctx context.Context, orderID string) error
}

// OrphanSweeper periodically removes order headers left without items.
type OrphanSweeper struct {
	facade   OrderFacade
	locker   Locker
	interval time.Duration
	batch    int
	workers  int
	logger   *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewOrphanSweeper constructs the sweeper worker pool. A nil locker sweeps on every tick.
func NewOrphanSweeper(facade OrderFacade, locker Locker, interval time.Duration, batch, workers int, logger *slog.Logger) *OrphanSweeper {
	if workers <= 0 {
		workers = 1
	}
	if batch <= 0 {
		batch = 1
	}
	if interval <= 0 {
		interval = time.Minute
	}
	if locker == nil {
		locker = NoopLocker{}
	}
	return &OrphanSweeper{
		facade:   facade,
		locker:   locker,
		interval: interval,
		batch:    batch,
		workers:  workers,
		logger:   logger,
	}
}

// Start launches background sweeping. Calling Start on a running sweeper is a no-op.
func (s *OrphanSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.jobs = make(chan model.Order, s.batch)

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx, s.jobs)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx, s.jobs)
}

// Stop cancels the sweep loop and waits for in-flight deletes.
func (s *OrphanSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *OrphanSweeper) dispatch(ctx context.Context, jobs chan<- model.Order) {
	defer s.wg.Done()
	defer close(jobs)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fetchAndDispatch(ctx, jobs)
		}
	}
}

func (s *OrphanSweeper) fetchAndDispatch(ctx context.Context, jobs chan<- model.Order) {
	acquired, err := s.locker.TryLock(ctx, sweepLockKey, s.interval)
	if err != nil {
		s.logger.Warn("sweep lock failed", slog.String("error", err.Error()))
		return
	}
	if !acquired {
		s.logger.Debug("sweep skipped, lock held elsewhere")
		return
	}

	orders, err := s.facade.OrphanOrders(ctx, s.batch)
	if err != nil {
		s.backoff(ctx, err)
		s.logger.Error("fetch orphan orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case jobs <- order:
		}
	}
}

func (s *OrphanSweeper) worker(ctx context.Context, jobs <-chan model.Order) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-jobs:
			if !ok {
				return
			}
			s.handleOrder(ctx, order)
		}
	}
}

func (s *OrphanSweeper) handleOrder(ctx context.Context, order model.Order) {
	if err := s.facade.RemoveOrphanOrder(ctx, order.ID); err != nil {
		s.backoff(ctx, err)
		s.logger.Error("remove orphan order failed", slog.String("order_id", order.ID), slog.String("error", err.Error()))
	}
}

// backoff waits out a rate limit reported by the data API.
func (s *OrphanSweeper) backoff(ctx context.Context, err error) {
	var limited rest.TooManyRequestsError
	if !errors.As(err, &limited) || limited.RetryAfter <= 0 {
		return
	}
	s.logger.Warn("data api rate limited", slog.Duration("retry_after", limited.RetryAfter))
	timer := time.NewTimer(limited.RetryAfter)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
