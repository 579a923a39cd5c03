package messaging

import (
	"context"
	"log/slog"

	"meeting-room-booking/internal/usecase/notify"
)

// LogPublisher writes events to the structured log. Used when no broker is configured.
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (p *LogPublisher) Publish(ctx context.Context, event notify.Event) error {
	attrs := []any{
		"type", string(event.Type),
		"occurred_at", event.OccurredAt,
	}
	if event.Reservation != nil {
		attrs = append(attrs,
			"reservation_id", event.Reservation.ID.String(),
			"room_id", event.Reservation.RoomID.String(),
			"status", event.Reservation.Status,
		)
	}
	slog.InfoContext(ctx, "reservation event", attrs...)
	return nil
}
