package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"meeting-room-booking/internal/domain/schedule"
	"meeting-room-booking/internal/infra"
	"meeting-room-booking/internal/infra/readstore"
	"meeting-room-booking/internal/infra/repository"
	sqlc "meeting-room-booking/internal/infra/sqlc/generated"
	"meeting-room-booking/internal/pkg/errs"
	"meeting-room-booking/internal/usecase/queries"
	"meeting-room-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errRoomLock           = errs.New("failed to acquire room lock")
	ErrMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
	q    *sqlc.Queries
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries) shared.UnitOfWork {
	return &PostgresUoW{
		pool: pool,
		q:    q,
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, nil, fn)
}

// WithinRoom holds a transaction-scoped advisory lock keyed by the room for
// the whole of fn. Writers to other rooms never wait on it.
func (u *PostgresUoW) WithinRoom(ctx context.Context, roomID uuid.UUID, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, &roomID, fn)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{uow: u, dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(
	ctx context.Context,
	options pgx.TxOptions,
	lockRoomID *uuid.UUID,
	fn func(ctx context.Context, tx shared.Tx) error,
) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		err = u.attempt(ctx, pgxTx, lockRoomID, fn)
		if err == nil {
			return nil
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !isRetryableError(err) {
			return err
		}
		if attempt == maxRetries {
			slog.Error("transaction failed after max retries",
				"attempts", attempt+1,
				"error", err.Error())
			return errs.WithDetail(errs.Mark(err, ErrMaxRetriesExceeded), fmt.Sprintf("attempts=%d room_locked=%t", attempt+1, lockRoomID != nil))
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return ErrMaxRetriesExceeded
}

func (u *PostgresUoW) attempt(
	ctx context.Context,
	pgxTx pgx.Tx,
	lockRoomID *uuid.UUID,
	fn func(ctx context.Context, tx shared.Tx) error,
) error {
	if lockRoomID != nil {
		if err := u.q.LockRoom(ctx, pgxTx, *lockRoomID); err != nil {
			return errs.Mark(err, errRoomLock)
		}
	}

	tx := &pgTx{
		dbtx: pgxTx,
		uow:  u,
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx sqlc.DBTX
	uow  *PostgresUoW

	// Lazy-initialized repositories
	reservationRepo shared.ReservationRepository
	roomRepo        shared.RoomRepository
	commandReads    shared.CommandReads
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.uow.q, t.dbtx)
	}
	return t.reservationRepo
}

func (t *pgTx) Rooms() shared.RoomRepository {
	if t.roomRepo == nil {
		t.roomRepo = repository.NewRoomRepository(t.uow.q, t.dbtx)
	}
	return t.roomRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{
			uow:       t.uow,
			dbtx:      t.dbtx,
			forUpdate: true,
		}
	}
	return t.commandReads
}

type commandReads struct {
	uow  *PostgresUoW
	dbtx sqlc.DBTX
	// forUpdate row-locks reservations read inside a transaction
	forUpdate bool

	// Lazy-initialized readstores
	roomStore        *readstore.RoomReadStore
	reservationStore *readstore.ReservationReadStore
}

func (r *commandReads) rooms() *readstore.RoomReadStore {
	if r.roomStore == nil {
		r.roomStore = readstore.NewRoomReadStore(r.uow.q, r.dbtx)
	}
	return r.roomStore
}

func (r *commandReads) reservations() *readstore.ReservationReadStore {
	if r.reservationStore == nil {
		r.reservationStore = readstore.NewReservationReadStore(r.uow.q, r.dbtx)
	}
	return r.reservationStore
}

func (r *commandReads) RoomByID(ctx context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	rv, err := r.rooms().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := &shared.RoomSnapshot{
		ID:         rv.ID,
		LocationID: rv.LocationID,
		Name:       rv.Name,
		Capacity:   rv.Capacity,
		Amenities:  rv.Amenities,
		Timezone:   rv.Timezone,
		Active:     rv.Active,
		CreatedAt:  rv.CreatedAt,
		UpdatedAt:  rv.UpdatedAt,
	}
	return snapshot, nil
}

func (r *commandReads) ReservationByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	var (
		rv  *queries.ReservationView
		err error
	)
	if r.forUpdate {
		rv, err = r.reservations().FindByIDForUpdate(ctx, id)
	} else {
		rv, err = r.reservations().FindByID(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	return toReservationSnapshot(rv), nil
}

func (r *commandReads) LiveReservationsOverlapping(
	ctx context.Context,
	roomID uuid.UUID,
	window schedule.TimeWindow,
	excludeID *uuid.UUID,
) ([]*shared.ReservationSnapshot, error) {
	rows, err := r.reservations().FindLiveOverlapping(ctx, roomID, window.Start(), window.End(), excludeID)
	if err != nil {
		return nil, err
	}

	snapshots := make([]*shared.ReservationSnapshot, 0, len(rows))
	for _, rv := range rows {
		w, werr := schedule.NewTimeWindow(rv.Start, rv.End)
		if werr != nil {
			return nil, infra.NewRepoErr(infra.KindDBFailure, "stored reservation has an invalid window", werr)
		}
		if !w.Overlaps(window) {
			continue
		}
		snapshots = append(snapshots, toReservationSnapshot(rv))
	}
	return snapshots, nil
}

func toReservationSnapshot(rv *queries.ReservationView) *shared.ReservationSnapshot {
	return &shared.ReservationSnapshot{
		ID:          rv.ID,
		RoomID:      rv.RoomID,
		OwnerID:     rv.OwnerID,
		Start:       rv.Start,
		End:         rv.End,
		Title:       rv.Title,
		Description: rv.Description,
		Status:      rv.Status,
		CreatedAt:   rv.CreatedAt,
		UpdatedAt:   rv.UpdatedAt,
	}
}
