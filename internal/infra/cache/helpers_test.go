//go:build unit || e2e

package cache

import (
	"context"
	"sync/atomic"

	"meeting-room-booking/internal/domain/room"
	"meeting-room-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type countingRoomStore struct {
	next  queries.RoomReadStore
	finds atomic.Int32
}

func (c *countingRoomStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	c.finds.Add(1)
	return c.next.FindByID(ctx, id)
}

func (c *countingRoomStore) Search(ctx context.Context, criteria room.Criteria, limit int32) ([]*queries.RoomView, error) {
	return c.next.Search(ctx, criteria, limit)
}
