package commands

import (
	"context"

	"meeting-room-booking/internal/usecase/notify"

	"github.com/google/uuid"
)

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key           uuid.UUID
	OwnerID       uuid.UUID
	Status        string
	RequestHash   string
	ReservationID *uuid.UUID
}

type IdempotencyStore interface {
	// Begin claims key for the owner. A nil record means the caller now holds
	// the key; otherwise the existing record is returned untouched.
	Begin(ctx context.Context, key, ownerID uuid.UUID, requestHash string) (*IdempotencyRecord, error)
	Complete(ctx context.Context, key, ownerID, reservationID uuid.UUID) error
	Release(ctx context.Context, key, ownerID uuid.UUID) error
}

type EventDispatcher interface {
	Dispatch(ctx context.Context, event notify.Event)
}

type RoomCacheInvalidator interface {
	Invalidate(ctx context.Context, roomID uuid.UUID) error
}
