package notify

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/usecase"
)

// Module exposes the admin notifier to the fx graph.
var Module = fx.Provide(newNotifier)

type notifierParams struct {
	fx.In

	Lifecycle     fx.Lifecycle
	Config        *config.Config
	Logger        *slog.Logger
	Notifications repository.NotificationRepository
}

var newProducer = func(brokers []string, topic string) Producer {
	return NewKafkaWriter(brokers, topic)
}

func newNotifier(p notifierParams) usecase.Notifier {
	sinks := Fanout{NewStoreNotifier(p.Notifications)}
	if len(p.Config.KafkaBrokers) == 0 {
		return sinks
	}

	kn := NewKafkaNotifier(newProducer(p.Config.KafkaBrokers, p.Config.NotificationTopic))
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return kn.Close()
		},
	})
	p.Logger.Info("publishing notifications to kafka",
		slog.String("topic", p.Config.NotificationTopic),
		slog.Int("brokers", len(p.Config.KafkaBrokers)),
	)
	return append(sinks, kn)
}
