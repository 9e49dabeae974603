package bootstrap

import (
	"context"
	"log/slog"

	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/infra/events"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/pkg/config"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		fx.Annotate(
			NewEventPublisher,
			fx.As(new(events.Publisher)),
		),
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *events.KafkaPublisher {
	publisher := events.NewKafkaPublisher(cfg.Events, logger)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})

	return publisher
}
