package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/storage/rest"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.After(timeout)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for condition")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewOrphanSweeperDefaults(t *testing.T) {
	sweeper := NewOrphanSweeper(&testhelpers.SweepFacadeStub{}, nil, 0, 0, 0, discardLogger())
	if sweeper.batch != 1 {
		t.Fatalf("expected batch default to 1, got %d", sweeper.batch)
	}
	if sweeper.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", sweeper.workers)
	}
	if sweeper.interval != time.Minute {
		t.Fatalf("expected interval default to 1m, got %s", sweeper.interval)
	}
	if _, ok := sweeper.locker.(NoopLocker); !ok {
		t.Fatalf("expected noop locker, got %T", sweeper.locker)
	}
}

func TestOrphanSweeperRemovesOrphans(t *testing.T) {
	facade := &testhelpers.SweepFacadeStub{Batches: [][]model.Order{{{ID: "o-1"}, {ID: "o-2"}}}}
	locker := &testhelpers.LockerStub{}
	sweeper := NewOrphanSweeper(facade, locker, 10*time.Millisecond, 2, 2, discardLogger())

	sweeper.Start(context.Background())
	waitFor(t, time.Second, func() bool { return len(facade.RemovedIDs()) == 2 })
	sweeper.Stop()

	removed := facade.RemovedIDs()
	sort.Strings(removed)
	if removed[0] != "o-1" || removed[1] != "o-2" {
		t.Fatalf("unexpected removed ids %v", removed)
	}
	if locker.Attempts() == 0 || locker.Keys[0] != sweepLockKey {
		t.Fatalf("expected lock on %q, got %v", sweepLockKey, locker.Keys)
	}
}

func TestOrphanSweeperSkipsWhenLockHeld(t *testing.T) {
	facade := &testhelpers.SweepFacadeStub{Batches: [][]model.Order{{{ID: "o-1"}}}}
	locker := &testhelpers.LockerStub{Deny: true}
	sweeper := NewOrphanSweeper(facade, locker, 5*time.Millisecond, 1, 1, discardLogger())

	sweeper.Start(context.Background())
	waitFor(t, time.Second, func() bool { return locker.Attempts() >= 3 })
	sweeper.Stop()

	if facade.FetchCalls() != 0 {
		t.Fatalf("expected no fetch while lock is held elsewhere, got %d", facade.FetchCalls())
	}

	locker = &testhelpers.LockerStub{Err: errors.New("redis down")}
	sweeper = NewOrphanSweeper(facade, locker, 5*time.Millisecond, 1, 1, discardLogger())
	sweeper.Start(context.Background())
	waitFor(t, time.Second, func() bool { return locker.Attempts() >= 2 })
	sweeper.Stop()
	if facade.FetchCalls() != 0 {
		t.Fatalf("expected no fetch on lock error, got %d", facade.FetchCalls())
	}
}

func TestOrphanSweeperContinuesAfterRemoveFailure(t *testing.T) {
	facade := &testhelpers.SweepFacadeStub{
		Batches: [][]model.Order{{{ID: "bad"}, {ID: "good"}}},
		RemoveFn: func(_ context.Context, id string) error {
			if id == "bad" {
				return errors.New("delete failed")
			}
			return nil
		},
	}
	sweeper := NewOrphanSweeper(facade, nil, 5*time.Millisecond, 2, 1, discardLogger())

	sweeper.Start(context.Background())
	waitFor(t, time.Second, func() bool { return len(facade.RemovedIDs()) == 1 })
	sweeper.Stop()

	if removed := facade.RemovedIDs(); removed[0] != "good" {
		t.Fatalf("unexpected removed ids %v", removed)
	}
}

func TestOrphanSweeperHandlesRateLimiting(t *testing.T) {
	calls := 0
	facade := &testhelpers.SweepFacadeStub{
		OrdersFn: func(context.Context, int) ([]model.Order, error) {
			calls++
			if calls == 1 {
				return nil, rest.TooManyRequestsError{RetryAfter: 10 * time.Millisecond}
			}
			if calls == 2 {
				return []model.Order{{ID: "o-1"}}, nil
			}
			return nil, nil
		},
	}
	sweeper := NewOrphanSweeper(facade, nil, 5*time.Millisecond, 1, 1, discardLogger())

	sweeper.Start(context.Background())
	waitFor(t, time.Second, func() bool { return len(facade.RemovedIDs()) == 1 })
	sweeper.Stop()
}

func TestOrphanSweeperStartIsIdempotentAndRestartable(t *testing.T) {
	facade := &testhelpers.SweepFacadeStub{}
	sweeper := NewOrphanSweeper(facade, nil, 5*time.Millisecond, 1, 1, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	sweeper.Start(ctx)
	sweeper.Start(ctx)
	cancel()
	waitFor(t, time.Second, func() bool { return facade.FetchCalls() >= 1 })
	sweeper.Stop()

	before := facade.FetchCalls()
	sweeper.Start(context.Background())
	waitFor(t, time.Second, func() bool { return facade.FetchCalls() > before })
	sweeper.Stop()
	sweeper.Stop()
}
