//go:build unit || e2e

package memstore

import (
	"context"
	"sync"

	"meeting-room-booking/internal/usecase/commands"
	"meeting-room-booking/internal/usecase/notify"

	"github.com/google/uuid"
)

type idemKey struct {
	key     uuid.UUID
	ownerID uuid.UUID
}

// Idempotency is a map-backed commands.IdempotencyStore.
type Idempotency struct {
	mu      sync.Mutex
	records map[idemKey]commands.IdempotencyRecord
}

func NewIdempotency() *Idempotency {
	return &Idempotency{records: make(map[idemKey]commands.IdempotencyRecord)}
}

func (s *Idempotency) Begin(_ context.Context, key, ownerID uuid.UUID, requestHash string) (*commands.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := idemKey{key: key, ownerID: ownerID}
	if existing, ok := s.records[k]; ok {
		return &existing, nil
	}
	s.records[k] = commands.IdempotencyRecord{
		Key:         key,
		OwnerID:     ownerID,
		Status:      commands.IdempotencyStatusProcessing,
		RequestHash: requestHash,
	}
	return nil, nil
}

func (s *Idempotency) Complete(_ context.Context, key, ownerID, reservationID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := idemKey{key: key, ownerID: ownerID}
	rec := s.records[k]
	rec.Status = commands.IdempotencyStatusCompleted
	rec.ReservationID = &reservationID
	s.records[k] = rec
	return nil
}

func (s *Idempotency) Release(_ context.Context, key, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, idemKey{key: key, ownerID: ownerID})
	return nil
}

// Record returns the stored state of a key, if any.
func (s *Idempotency) Record(key, ownerID uuid.UUID) (commands.IdempotencyRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[idemKey{key: key, ownerID: ownerID}]
	return rec, ok
}

// Events records dispatched events synchronously.
type Events struct {
	mu     sync.Mutex
	events []notify.Event
}

func (e *Events) Dispatch(_ context.Context, event notify.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
}

func (e *Events) All() []notify.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]notify.Event, len(e.events))
	copy(out, e.events)
	return out
}

func (e *Events) Types() []notify.EventType {
	all := e.All()
	out := make([]notify.EventType, len(all))
	for i, ev := range all {
		out[i] = ev.Type
	}
	return out
}

// Invalidations counts room cache invalidations.
type Invalidations struct {
	mu  sync.Mutex
	ids []uuid.UUID
}

func (i *Invalidations) Invalidate(_ context.Context, roomID uuid.UUID) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.ids = append(i.ids, roomID)
	return nil
}

func (i *Invalidations) IDs() []uuid.UUID {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]uuid.UUID(nil), i.ids...)
}
