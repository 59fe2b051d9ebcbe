package usecase

import (
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

const (
	defaultCompensationRetries = 3
	defaultCompensationBackoff = 100 * time.Millisecond
	defaultSweepGracePeriod    = 10 * time.Minute
)

// Settings tunes the order workflow.
type Settings struct {
	CompensationRetries int
	CompensationBackoff time.Duration
	SweepGracePeriod    time.Duration
}

func (s Settings) normalize() Settings {
	if s.CompensationRetries <= 0 {
		s.CompensationRetries = defaultCompensationRetries
	}
	if s.CompensationBackoff < 0 {
		s.CompensationBackoff = defaultCompensationBackoff
	}
	if s.SweepGracePeriod <= 0 {
		s.SweepGracePeriod = defaultSweepGracePeriod
	}
	return s
}

func newSettings(cfg *config.Config) Settings {
	return Settings{
		CompensationRetries: cfg.CompensationRetries,
		CompensationBackoff: defaultCompensationBackoff,
		SweepGracePeriod:    cfg.SweepGracePeriod,
	}
}

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newSettings,
	NewOrderUseCase,
	NewReservationUseCase,
	NewInquiryUseCase,
)
