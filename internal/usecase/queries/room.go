package queries

import (
	"context"

	"meeting-room-booking/internal/domain/room"
	"meeting-room-booking/internal/infra"
	"meeting-room-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type RoomReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	Search(ctx context.Context, criteria room.Criteria, limit int32) ([]*RoomView, error)
}

type RoomQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	Search(ctx context.Context, criteria room.Criteria, limit int) ([]*RoomView, error)
}

type roomQueriesImpl struct {
	store RoomReadStore
}

func NewRoomQueries(store RoomReadStore) RoomQueries {
	return &roomQueriesImpl{store: store}
}

func (q *roomQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	return findRoom(ctx, q.store, id)
}

func (q *roomQueriesImpl) Search(ctx context.Context, criteria room.Criteria, limit int) ([]*RoomView, error) {
	limit = ValidateLimit(limit)

	amenities, err := room.NewAmenities(criteria.Amenities)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	criteria.Amenities = amenities.Slice()

	rooms, err := q.store.Search(ctx, criteria, int32(limit))
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func findRoom(ctx context.Context, store RoomReadStore, id uuid.UUID) (*RoomView, error) {
	rv, err := store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRoomNotFound
		}
		return nil, err
	}
	return rv, nil
}
