package bootstrap

import (
	"context"
	"log/slog"

	"meeting-room-booking/internal/infra/messaging"
	"meeting-room-booking/internal/pkg/config"
	"meeting-room-booking/internal/usecase/notify"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewEventPublisher,
	),
)

// NewEventPublisher publishes to RabbitMQ when configured and otherwise logs events.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) notify.Publisher {
	if !cfg.AMQP.Enabled() {
		slog.Info("RABBITMQ_URL not set, reservation events are logged only")
		return messaging.NewLogPublisher()
	}

	publisher, err := messaging.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		slog.Warn("failed to connect to RabbitMQ, falling back to log publisher", "error", err.Error())
		return messaging.NewLogPublisher()
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}
