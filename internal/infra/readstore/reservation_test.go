//go:build unit

package readstore

import (
	"context"
	"testing"
	"time"

	"meeting-room-booking/internal/domain/reservation"
	"meeting-room-booking/internal/infra"
	sqlc "meeting-room-booking/internal/infra/sqlc/generated"
	"meeting-room-booking/internal/pkg/pgconv"
	"meeting-room-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReservationReadQueries struct {
	mock.Mock
}

func (m *MockReservationReadQueries) GetReservationByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Reservations, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Reservations), args.Error(1)
}

func (m *MockReservationReadQueries) GetReservationByIDForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Reservations, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Reservations), args.Error(1)
}

func (m *MockReservationReadQueries) ListLiveReservationsOverlapping(ctx context.Context, db sqlc.DBTX, arg sqlc.ListLiveReservationsOverlappingParams) ([]sqlc.Reservations, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]sqlc.Reservations), args.Error(1)
}

func (m *MockReservationReadQueries) ListReservationsByOwnerFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListReservationsByOwnerFirstPageParams) ([]sqlc.Reservations, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]sqlc.Reservations), args.Error(1)
}

func (m *MockReservationReadQueries) ListReservationsByOwnerKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListReservationsByOwnerKeysetParams) ([]sqlc.Reservations, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]sqlc.Reservations), args.Error(1)
}

func TestReservationReadStore_FindByID(t *testing.T) {
	description := "Quarterly planning"
	row := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.Description = &description
	}).BuildInfra()

	tests := []struct {
		name      string
		mockRow   sqlc.Reservations
		mockError error
		wantKind  infra.RepositoryErrorKind
	}{
		{name: "success", mockRow: row},
		{name: "not found", mockError: pgx.ErrNoRows, wantKind: infra.KindNotFound},
		{name: "database error", mockError: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockReservationReadQueries)
			mockQueries.On("GetReservationByID", mock.Anything, mock.Anything, row.ID).Return(tt.mockRow, tt.mockError)

			store := NewReservationReadStore(mockQueries, nil)
			view, err := store.FindByID(context.Background(), row.ID)

			if tt.wantKind != "" {
				assert.Error(t, err)
				assert.Nil(t, view)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				require.NoError(t, err)
				assert.Equal(t, row.ID, view.ID)
				assert.Equal(t, row.RoomID, view.RoomID)
				assert.Equal(t, reservation.StatusConfirmed.String(), view.Status)
				require.NotNil(t, view.Description)
				assert.Equal(t, description, *view.Description)
				assert.Equal(t, time.UTC, view.Start.Location())
			}

			mockQueries.AssertExpectations(t)
		})
	}
}

func TestReservationReadStore_FindLiveOverlapping(t *testing.T) {
	roomID := uuid.New()
	excludeID := uuid.New()
	start := time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)
	row := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) { b.RoomID = roomID }).BuildInfra()

	t.Run("passes the window and exclusion through", func(t *testing.T) {
		mockQueries := new(MockReservationReadQueries)
		mockQueries.On("ListLiveReservationsOverlapping", mock.Anything, mock.Anything, sqlc.ListLiveReservationsOverlappingParams{
			RoomID:      roomID,
			WindowEnd:   pgconv.TimeToPgtype(end),
			WindowStart: pgconv.TimeToPgtype(start),
			ExcludeID:   pgconv.UUIDPtrToPgtype(&excludeID),
		}).Return([]sqlc.Reservations{row}, nil)

		views, err := NewReservationReadStore(mockQueries, nil).FindLiveOverlapping(context.Background(), roomID, start, end, &excludeID)

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, row.ID, views[0].ID)
		mockQueries.AssertExpectations(t)
	})

	t.Run("no exclusion sends NULL", func(t *testing.T) {
		mockQueries := new(MockReservationReadQueries)
		mockQueries.On("ListLiveReservationsOverlapping", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.ListLiveReservationsOverlappingParams) bool {
			return !p.ExcludeID.Valid
		})).Return([]sqlc.Reservations{}, nil)

		views, err := NewReservationReadStore(mockQueries, nil).FindLiveOverlapping(context.Background(), roomID, start, end, nil)

		require.NoError(t, err)
		assert.Empty(t, views)
		mockQueries.AssertExpectations(t)
	})

	t.Run("exclusion violation is classified as conflict", func(t *testing.T) {
		mockQueries := new(MockReservationReadQueries)
		mockQueries.On("ListLiveReservationsOverlapping", mock.Anything, mock.Anything, mock.Anything).
			Return([]sqlc.Reservations(nil), &pgconn.PgError{Code: "23P01"})

		_, err := NewReservationReadStore(mockQueries, nil).FindLiveOverlapping(context.Background(), roomID, start, end, nil)

		assert.True(t, infra.IsKind(err, infra.KindConflict))
	})
}

func TestReservationReadStore_FindByOwner(t *testing.T) {
	ownerID := uuid.New()
	afterID := uuid.New()
	afterStart := time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)
	row := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) { b.OwnerID = ownerID }).BuildInfra()

	mockQueries := new(MockReservationReadQueries)
	mockQueries.On("ListReservationsByOwnerFirstPage", mock.Anything, mock.Anything, sqlc.ListReservationsByOwnerFirstPageParams{
		OwnerID: ownerID,
		Limit:   21,
	}).Return([]sqlc.Reservations{row}, nil)
	mockQueries.On("ListReservationsByOwnerKeyset", mock.Anything, mock.Anything, sqlc.ListReservationsByOwnerKeysetParams{
		OwnerID:       ownerID,
		AfterStartsAt: pgconv.TimeToPgtype(afterStart),
		AfterID:       afterID,
		RowLimit:      21,
	}).Return([]sqlc.Reservations{}, nil)

	store := NewReservationReadStore(mockQueries, nil)

	first, err := store.FindByOwnerFirstPage(context.Background(), ownerID, 21)
	require.NoError(t, err)
	assert.Len(t, first, 1)

	next, err := store.FindByOwnerKeyset(context.Background(), ownerID, afterStart, afterID, 21)
	require.NoError(t, err)
	assert.Empty(t, next)

	mockQueries.AssertExpectations(t)
}
