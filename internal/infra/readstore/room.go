package readstore

import (
	"context"

	"meeting-room-booking/internal/domain/room"
	"meeting-room-booking/internal/infra"
	sqlc "meeting-room-booking/internal/infra/sqlc/generated"
	"meeting-room-booking/internal/pkg/pgconv"
	"meeting-room-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomReadQueries interface {
	GetRoomByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Rooms, error)
	SearchRooms(ctx context.Context, db sqlc.DBTX, arg sqlc.SearchRoomsParams) ([]sqlc.Rooms, error)
}

type RoomReadStore struct {
	queries RoomReadQueries
	db      sqlc.DBTX
}

func NewRoomReadStore(queries RoomReadQueries, db sqlc.DBTX) *RoomReadStore {
	return &RoomReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	row, err := r.queries.GetRoomByID(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find room by ID", err)
	}
	return ToRoomView(row), nil
}

func (r *RoomReadStore) Search(ctx context.Context, criteria room.Criteria, limit int32) ([]*queries.RoomView, error) {
	amenities := criteria.Amenities
	if amenities == nil {
		// NULL would make the containment test reject every row
		amenities = []string{}
	}

	params := sqlc.SearchRoomsParams{
		LocationID:  pgconv.UUIDPtrToPgtype(criteria.LocationID),
		MinCapacity: int32(criteria.MinCapacity),
		Amenities:   amenities,
		ActiveOnly:  criteria.ActiveOnly,
		RowLimit:    limit,
	}

	rows, err := r.queries.SearchRooms(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search rooms", err)
	}

	result := make([]*queries.RoomView, len(rows))
	for i, row := range rows {
		result[i] = ToRoomView(row)
	}
	return result, nil
}

func ToRoomView(row sqlc.Rooms) *queries.RoomView {
	amenities := row.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return &queries.RoomView{
		ID:         row.ID,
		LocationID: row.LocationID,
		Name:       row.Name,
		Capacity:   int(row.Capacity),
		Amenities:  amenities,
		Timezone:   row.Timezone,
		Active:     row.IsActive,
		CreatedAt:  pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:  pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
