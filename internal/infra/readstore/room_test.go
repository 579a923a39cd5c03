//go:build unit

package readstore

import (
	"context"
	"testing"

	"meeting-room-booking/internal/domain/room"
	"meeting-room-booking/internal/infra"
	sqlc "meeting-room-booking/internal/infra/sqlc/generated"
	"meeting-room-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRoomReadQueries struct {
	mock.Mock
}

func (m *MockRoomReadQueries) GetRoomByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Rooms, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Rooms), args.Error(1)
}

func (m *MockRoomReadQueries) SearchRooms(ctx context.Context, db sqlc.DBTX, arg sqlc.SearchRoomsParams) ([]sqlc.Rooms, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]sqlc.Rooms), args.Error(1)
}

func TestRoomReadStore_FindByID(t *testing.T) {
	row := builder.NewRoomBuilder().BuildInfra()
	noAmenities := builder.NewRoomBuilder().With(func(b *builder.RoomBuilder) { b.Amenities = nil }).BuildInfra()

	tests := []struct {
		name          string
		id            uuid.UUID
		mockRow       sqlc.Rooms
		mockError     error
		wantAmenities []string
		wantKind      infra.RepositoryErrorKind
	}{
		{name: "success", id: row.ID, mockRow: row, wantAmenities: []string{"projector", "whiteboard"}},
		{name: "null amenities become empty", id: noAmenities.ID, mockRow: noAmenities, wantAmenities: []string{}},
		{name: "not found", id: uuid.New(), mockError: pgx.ErrNoRows, wantKind: infra.KindNotFound},
		{name: "database error", id: row.ID, mockError: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockRoomReadQueries)
			mockQueries.On("GetRoomByID", mock.Anything, mock.Anything, tt.id).Return(tt.mockRow, tt.mockError)

			view, err := NewRoomReadStore(mockQueries, nil).FindByID(context.Background(), tt.id)

			if tt.wantKind != "" {
				assert.Nil(t, view)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.id, view.ID)
				assert.Equal(t, tt.wantAmenities, view.Amenities)
				assert.True(t, view.Active)
			}

			mockQueries.AssertExpectations(t)
		})
	}
}

func TestRoomReadStore_Search(t *testing.T) {
	location := uuid.New()

	t.Run("criteria map to query parameters", func(t *testing.T) {
		mockQueries := new(MockRoomReadQueries)
		mockQueries.On("SearchRooms", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.SearchRoomsParams) bool {
			return p.LocationID.Valid &&
				uuid.UUID(p.LocationID.Bytes) == location &&
				p.MinCapacity == 4 &&
				assert.ObjectsAreEqual([]string{"projector"}, p.Amenities) &&
				p.ActiveOnly &&
				p.RowLimit == 10
		})).Return([]sqlc.Rooms{builder.NewRoomBuilder().BuildInfra()}, nil)

		views, err := NewRoomReadStore(mockQueries, nil).Search(context.Background(), room.Criteria{
			LocationID:  &location,
			MinCapacity: 4,
			Amenities:   []string{"projector"},
			ActiveOnly:  true,
		}, 10)

		require.NoError(t, err)
		assert.Len(t, views, 1)
		mockQueries.AssertExpectations(t)
	})

	t.Run("empty criteria send an empty amenity array", func(t *testing.T) {
		mockQueries := new(MockRoomReadQueries)
		mockQueries.On("SearchRooms", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.SearchRoomsParams) bool {
			return !p.LocationID.Valid && p.Amenities != nil && len(p.Amenities) == 0
		})).Return([]sqlc.Rooms{}, nil)

		views, err := NewRoomReadStore(mockQueries, nil).Search(context.Background(), room.Criteria{}, 20)

		require.NoError(t, err)
		assert.Empty(t, views)
		mockQueries.AssertExpectations(t)
	})
}
