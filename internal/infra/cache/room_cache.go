package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"meeting-room-booking/internal/domain/room"
	"meeting-room-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const roomKeyPrefix = "room:v1:"

// RoomCache is a read-through cache in front of a RoomReadStore. Only lookups
// by id are cached; searches always hit the store. A nil client disables it.
type RoomCache struct {
	next   queries.RoomReadStore
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
}

func NewRoomCache(next queries.RoomReadStore, client *redis.Client, ttl time.Duration) *RoomCache {
	return &RoomCache{
		next:   next,
		client: client,
		ttl:    ttl,
	}
}

func roomKey(id uuid.UUID) string {
	return roomKeyPrefix + id.String()
}

func (c *RoomCache) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	if c.client == nil {
		return c.next.FindByID(ctx, id)
	}

	key := roomKey(id)
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var rv queries.RoomView
		if jerr := json.Unmarshal(raw, &rv); jerr == nil {
			return &rv, nil
		}
		slog.Warn("discarding undecodable room cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		slog.Warn("room cache read failed", "key", key, "error", err.Error())
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		rv, ferr := c.next.FindByID(ctx, id)
		if ferr != nil {
			return nil, ferr
		}
		c.store(ctx, key, rv)
		return rv, nil
	})
	if err != nil {
		return nil, err
	}

	rv := *v.(*queries.RoomView)
	return &rv, nil
}

func (c *RoomCache) Search(ctx context.Context, criteria room.Criteria, limit int32) ([]*queries.RoomView, error) {
	return c.next.Search(ctx, criteria, limit)
}

// Invalidate drops the cached entry so the next read sees committed changes.
func (c *RoomCache) Invalidate(ctx context.Context, roomID uuid.UUID) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, roomKey(roomID)).Err()
}

func (c *RoomCache) store(ctx context.Context, key string, rv *queries.RoomView) {
	payload, err := json.Marshal(rv)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		slog.Warn("room cache write failed", "key", key, "error", err.Error())
	}
}
