package converter

import (
	"meeting-room-booking/internal/domain/room"
	sqlc "meeting-room-booking/internal/infra/sqlc/generated"
	"meeting-room-booking/internal/pkg/pgconv"
)

func RoomToCreateParams(r *room.Room) sqlc.CreateRoomParams {
	return sqlc.CreateRoomParams{
		ID:         r.ID(),
		LocationID: r.LocationID(),
		Name:       r.Name(),
		Capacity:   int32(r.Capacity()),
		Amenities:  r.Amenities().Slice(),
		Timezone:   r.Timezone(),
		IsActive:   r.IsActive(),
		CreatedAt:  pgconv.TimeToPgtype(r.CreatedAt()),
		UpdatedAt:  pgconv.TimeToPgtype(r.UpdatedAt()),
	}
}

func RoomToUpdateParams(r *room.Room) sqlc.UpdateRoomParams {
	return sqlc.UpdateRoomParams{
		ID:        r.ID(),
		Name:      r.Name(),
		Capacity:  int32(r.Capacity()),
		Amenities: r.Amenities().Slice(),
		Timezone:  r.Timezone(),
		IsActive:  r.IsActive(),
		UpdatedAt: pgconv.TimeToPgtype(r.UpdatedAt()),
	}
}
