package components

import (
	"meeting-room-booking/internal/handler"
	"meeting-room-booking/internal/handler/api"
	"meeting-room-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewRoomHandler,
		api.NewAvailabilityHandler,
		api.NewReservationHandler,
		middleware.NewAuthMiddleware,
		func(rooms *api.RoomHandler, availability *api.AvailabilityHandler, reservations *api.ReservationHandler) handler.Handlers {
			return handler.Handlers{
				Rooms:        rooms,
				Availability: availability,
				Reservations: reservations,
			}
		},
	),
	fx.Invoke(handler.NewRouter),
)
