package shared

import (
	"context"

	"meeting-room-booking/internal/domain/reservation"
	"meeting-room-booking/internal/domain/room"
	"meeting-room-booking/internal/domain/schedule"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinRoom: Like Within, but serialized against every other writer of the same room
	WithinRoom(ctx context.Context, roomID uuid.UUID, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Rooms() RoomRepository
	Reads() CommandReads
}

type CommandReads interface {
	RoomByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
	// ReservationByID locks the row when called through Tx.Reads.
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	LiveReservationsOverlapping(ctx context.Context, roomID uuid.UUID, window schedule.TimeWindow, excludeID *uuid.UUID) ([]*ReservationSnapshot, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	Update(ctx context.Context, res *reservation.Reservation) error
}

type RoomRepository interface {
	Create(ctx context.Context, r *room.Room) error
	Update(ctx context.Context, r *room.Room) error
}
