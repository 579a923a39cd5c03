//go:build unit || e2e

package builder

import (
	"time"

	"meeting-room-booking/internal/domain/room"
	reqdto "meeting-room-booking/internal/handler/dto/request"
	sqlc "meeting-room-booking/internal/infra/sqlc/generated"
	"meeting-room-booking/internal/usecase/queries"
	"meeting-room-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RoomBuilder struct {
	ID         uuid.UUID
	LocationID uuid.UUID
	Name       string
	Capacity   int
	Amenities  []string
	Timezone   string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewRoomBuilder() *RoomBuilder {
	created := time.Date(2029, 12, 1, 9, 0, 0, 0, time.UTC)
	return &RoomBuilder{
		ID:         uuid.New(),
		LocationID: uuid.New(),
		Name:       "Everest",
		Capacity:   8,
		Amenities:  []string{"projector", "whiteboard"},
		Timezone:   "UTC",
		Active:     true,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

func (b *RoomBuilder) With(mutate func(*RoomBuilder)) *RoomBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *RoomBuilder) BuildDomain() *room.Room {
	return room.ReconstructRoom(b.ID, b.LocationID, b.Name, b.Capacity, b.Amenities, b.Timezone, b.Active, b.CreatedAt, b.UpdatedAt)
}

func (b *RoomBuilder) BuildInfra() sqlc.Rooms {
	return sqlc.Rooms{
		ID:         b.ID,
		LocationID: b.LocationID,
		Name:       b.Name,
		Capacity:   int32(b.Capacity),
		Amenities:  b.Amenities,
		Timezone:   b.Timezone,
		IsActive:   b.Active,
		CreatedAt:  pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
		UpdatedAt:  pgtype.Timestamptz{Time: b.UpdatedAt, Valid: true},
	}
}

func (b *RoomBuilder) BuildView() *queries.RoomView {
	return &queries.RoomView{
		ID:         b.ID,
		LocationID: b.LocationID,
		Name:       b.Name,
		Capacity:   b.Capacity,
		Amenities:  b.Amenities,
		Timezone:   b.Timezone,
		Active:     b.Active,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func (b *RoomBuilder) BuildSnapshot() *shared.RoomSnapshot {
	return &shared.RoomSnapshot{
		ID:         b.ID,
		LocationID: b.LocationID,
		Name:       b.Name,
		Capacity:   b.Capacity,
		Amenities:  b.Amenities,
		Timezone:   b.Timezone,
		Active:     b.Active,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func (b *RoomBuilder) BuildCreateRequestDTO() reqdto.CreateRoomRequest {
	return reqdto.CreateRoomRequest{
		LocationID: b.LocationID,
		Name:       b.Name,
		Capacity:   b.Capacity,
		Amenities:  b.Amenities,
		Timezone:   b.Timezone,
	}
}
