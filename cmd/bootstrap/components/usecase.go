package components

import (
	"context"

	"meeting-room-booking/internal/domain/reservation"
	"meeting-room-booking/internal/domain/schedule"
	"meeting-room-booking/internal/pkg/clock"
	"meeting-room-booking/internal/pkg/config"
	"meeting-room-booking/internal/usecase"
	"meeting-room-booking/internal/usecase/commands"
	"meeting-room-booking/internal/usecase/notify"
	"meeting-room-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseEventsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(clock clock.Clock) *reservation.Services {
		return &reservation.Services{
			Clock: clock,
		}
	},
	func(cfg config.Config) schedule.SearchPolicy {
		return schedule.SearchPolicy{
			MaxAttempts: cfg.Schedule.SlotSearchMaxAttempts,
			Rounding:    cfg.Schedule.SlotRounding(),
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationUseCase,
		commands.NewRoomUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewRoomQueries,
		queries.NewReservationQueries,
		queries.NewAvailabilityQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

var usecaseEventsModule = fx.Module("usecase/events",
	fx.Provide(
		NewEventDispatcher,
		fx.Annotate(
			func(d *notify.Dispatcher) *notify.Dispatcher { return d },
			fx.As(new(commands.EventDispatcher)),
		),
	),
)

// NewEventDispatcher drains in-flight publishes before the publisher is closed.
func NewEventDispatcher(lc fx.Lifecycle, publisher notify.Publisher, cfg config.Config) *notify.Dispatcher {
	d := notify.NewDispatcher(publisher, cfg.Schedule.EventPublishTimeout)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return d.Wait(ctx)
		},
	})
	return d
}
