package queries

import (
	"context"
	"time"

	"meeting-room-booking/internal/infra"
	"meeting-room-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	// FindLiveOverlapping returns non-canceled reservations on roomID whose
	// window intersects [start, end), ordered by start then id.
	FindLiveOverlapping(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*ReservationView, error)
	FindByOwnerFirstPage(ctx context.Context, ownerID uuid.UUID, limit int32) ([]*ReservationView, error)
	FindByOwnerKeyset(ctx context.Context, ownerID uuid.UUID, afterStart time.Time, afterID uuid.UUID, limit int32) ([]*ReservationView, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, cursor *Cursor, limit int) ([]*ReservationView, *Cursor, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	rv, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, err
	}
	return rv, nil
}

func (q *reservationQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID, cursor *Cursor, limit int) ([]*ReservationView, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*ReservationView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.store.FindByOwnerFirstPage(ctx, ownerID, int32(limit+1))
	} else {
		afterStart, afterID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, errs.Mark(derr, errs.ErrInvalidCursor)
		}
		rows, err = q.store.FindByOwnerKeyset(ctx, ownerID, afterStart, afterID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.Start, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
