package readstore

import (
	"context"
	"time"

	"meeting-room-booking/internal/infra"
	sqlc "meeting-room-booking/internal/infra/sqlc/generated"
	"meeting-room-booking/internal/pkg/pgconv"
	"meeting-room-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationReadQueries interface {
	GetReservationByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Reservations, error)
	GetReservationByIDForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Reservations, error)
	ListLiveReservationsOverlapping(ctx context.Context, db sqlc.DBTX, arg sqlc.ListLiveReservationsOverlappingParams) ([]sqlc.Reservations, error)
	ListReservationsByOwnerFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListReservationsByOwnerFirstPageParams) ([]sqlc.Reservations, error)
	ListReservationsByOwnerKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListReservationsByOwnerKeysetParams) ([]sqlc.Reservations, error)
}

type ReservationReadStore struct {
	queries ReservationReadQueries
	db      sqlc.DBTX
}

func NewReservationReadStore(queries ReservationReadQueries, db sqlc.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationByID(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return ToReservationView(row), nil
}

// FindByIDForUpdate row-locks the reservation; db must be a transaction.
func (r *ReservationReadStore) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationByIDForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock reservation by ID", err)
	}
	return ToReservationView(row), nil
}

func (r *ReservationReadStore) FindLiveOverlapping(
	ctx context.Context,
	roomID uuid.UUID,
	start, end time.Time,
	excludeID *uuid.UUID,
) ([]*queries.ReservationView, error) {
	params := sqlc.ListLiveReservationsOverlappingParams{
		RoomID:      roomID,
		WindowEnd:   pgconv.TimeToPgtype(end),
		WindowStart: pgconv.TimeToPgtype(start),
		ExcludeID:   pgconv.UUIDPtrToPgtype(excludeID),
	}

	rows, err := r.queries.ListLiveReservationsOverlapping(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list overlapping reservations", err)
	}
	return toReservationViews(rows), nil
}

func (r *ReservationReadStore) FindByOwnerFirstPage(ctx context.Context, ownerID uuid.UUID, limit int32) ([]*queries.ReservationView, error) {
	params := sqlc.ListReservationsByOwnerFirstPageParams{
		OwnerID: ownerID,
		Limit:   limit,
	}

	rows, err := r.queries.ListReservationsByOwnerFirstPage(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations first page", err)
	}
	return toReservationViews(rows), nil
}

func (r *ReservationReadStore) FindByOwnerKeyset(
	ctx context.Context,
	ownerID uuid.UUID,
	afterStart time.Time,
	afterID uuid.UUID,
	limit int32,
) ([]*queries.ReservationView, error) {
	params := sqlc.ListReservationsByOwnerKeysetParams{
		OwnerID:       ownerID,
		AfterStartsAt: pgconv.TimeToPgtype(afterStart),
		AfterID:       afterID,
		RowLimit:      limit,
	}

	rows, err := r.queries.ListReservationsByOwnerKeyset(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations keyset", err)
	}
	return toReservationViews(rows), nil
}

func ToReservationView(row sqlc.Reservations) *queries.ReservationView {
	return &queries.ReservationView{
		ID:          row.ID,
		RoomID:      row.RoomID,
		OwnerID:     row.OwnerID,
		Start:       pgconv.TimeFromPgtype(row.StartsAt),
		End:         pgconv.TimeFromPgtype(row.EndsAt),
		Title:       row.Title,
		Description: pgconv.StringPtrFromPgtype(row.Description),
		Status:      row.Status,
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:   pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

func toReservationViews(rows []sqlc.Reservations) []*queries.ReservationView {
	result := make([]*queries.ReservationView, len(rows))
	for i, row := range rows {
		result[i] = ToReservationView(row)
	}
	return result
}
