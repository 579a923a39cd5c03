package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"meeting-room-booking/internal/pkg/errs"
	"meeting-room-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyKeyPrefix = "idem:v1:"
	maxClaimAttempts     = 2
)

type idempotencyEntry struct {
	Status        string     `json:"status"`
	RequestHash   string     `json:"request_hash"`
	ReservationID *uuid.UUID `json:"reservation_id,omitempty"`
}

// IdempotencyStore keeps Idempotency-Key state in Redis, scoped per owner.
// With a nil client every claim succeeds and nothing is remembered.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		ttl:    ttl,
	}
}

func idempotencyKey(key, ownerID uuid.UUID) string {
	return idempotencyKeyPrefix + ownerID.String() + ":" + key.String()
}

func (s *IdempotencyStore) Begin(ctx context.Context, key, ownerID uuid.UUID, requestHash string) (*commands.IdempotencyRecord, error) {
	if s.client == nil {
		return nil, nil
	}

	redisKey := idempotencyKey(key, ownerID)
	payload, err := json.Marshal(idempotencyEntry{
		Status:      commands.IdempotencyStatusProcessing,
		RequestHash: requestHash,
	})
	if err != nil {
		return nil, err
	}

	for range maxClaimAttempts {
		claimed, err := s.client.SetNX(ctx, redisKey, payload, s.ttl).Result()
		if err != nil {
			return nil, errs.Wrap(err, "failed to claim idempotency key")
		}
		if claimed {
			return nil, nil
		}

		entry, err := s.get(ctx, redisKey)
		if errors.Is(err, redis.Nil) {
			// expired between SETNX and GET
			continue
		}
		if err != nil {
			return nil, err
		}
		return &commands.IdempotencyRecord{
			Key:           key,
			OwnerID:       ownerID,
			Status:        entry.Status,
			RequestHash:   entry.RequestHash,
			ReservationID: entry.ReservationID,
		}, nil
	}
	return nil, errs.Newf("idempotency key %s kept changing while claiming", key)
}

func (s *IdempotencyStore) Complete(ctx context.Context, key, ownerID, reservationID uuid.UUID) error {
	if s.client == nil {
		return nil
	}

	redisKey := idempotencyKey(key, ownerID)
	entry, err := s.get(ctx, redisKey)
	if err != nil {
		return errs.Wrap(err, "failed to load idempotency key")
	}
	entry.Status = commands.IdempotencyStatusCompleted
	entry.ReservationID = &reservationID

	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKey, payload, redis.KeepTTL).Err()
}

func (s *IdempotencyStore) Release(ctx context.Context, key, ownerID uuid.UUID) error {
	if s.client == nil {
		return nil
	}
	return s.client.Del(ctx, idempotencyKey(key, ownerID)).Err()
}

func (s *IdempotencyStore) get(ctx context.Context, redisKey string) (*idempotencyEntry, error) {
	raw, err := s.client.Get(ctx, redisKey).Bytes()
	if err != nil {
		return nil, err
	}
	var entry idempotencyEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, errs.Wrap(err, "corrupt idempotency entry")
	}
	return &entry, nil
}
