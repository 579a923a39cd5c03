//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"meeting-room-booking/internal/domain/room"
	"meeting-room-booking/internal/pkg/errs"
	"meeting-room-booking/internal/usecase/queries"
	"meeting-room-booking/tests/common/builder"
	"meeting-room-booking/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationQueries_ListByOwnerPaginates(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	q := queries.NewReservationQueries(store.Reservations())
	owner := uuid.New()

	var want []uuid.UUID
	for i := 0; i < 5; i++ {
		start := at(9, 0).Add(time.Duration(i) * time.Hour)
		v := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			b.OwnerID = owner
		}).WithWindow(start, start.Add(30*time.Minute)).BuildView()
		store.PutReservation(v)
		want = append(want, v.ID)
	}
	store.PutReservation(builder.NewReservationBuilder().BuildView())

	var got []uuid.UUID
	var cursor *queries.Cursor
	pages := 0
	for {
		rows, next, err := q.ListByOwner(ctx, owner, cursor, 2)
		require.NoError(t, err)
		for _, r := range rows {
			got = append(got, r.ID)
		}
		pages++
		if next == nil {
			break
		}
		cursor = next
	}

	assert.Equal(t, want, got)
	assert.Equal(t, 3, pages)
}

func TestReservationQueries_ListByOwnerRejectsBadCursor(t *testing.T) {
	q := queries.NewReservationQueries(memstore.New().Reservations())

	_, _, err := q.ListByOwner(context.Background(), uuid.New(), &queries.Cursor{After: "bogus"}, 10)

	assert.True(t, errs.Is(err, errs.ErrInvalidCursor))
}

func TestReservationQueries_GetByID(t *testing.T) {
	store := memstore.New()
	q := queries.NewReservationQueries(store.Reservations())
	v := builder.NewReservationBuilder().BuildView()
	store.PutReservation(v)

	got, err := q.GetByID(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, v.ID, got.ID)

	_, err = q.GetByID(context.Background(), uuid.New())
	assert.True(t, errs.Is(err, errs.ErrReservationNotFound))
}

func TestRoomQueries_Search(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	q := queries.NewRoomQueries(store.Rooms())
	location := uuid.New()

	big := builder.NewRoomBuilder().With(func(b *builder.RoomBuilder) {
		b.LocationID = location
		b.Name = "Atlas"
		b.Capacity = 20
	}).BuildView()
	small := builder.NewRoomBuilder().With(func(b *builder.RoomBuilder) {
		b.LocationID = location
		b.Name = "Bonsai"
		b.Capacity = 2
		b.Amenities = []string{"whiteboard"}
	}).BuildView()
	closed := builder.NewRoomBuilder().With(func(b *builder.RoomBuilder) {
		b.LocationID = location
		b.Name = "Closet"
		b.Active = false
	}).BuildView()
	elsewhere := builder.NewRoomBuilder().BuildView()
	for _, v := range []*queries.RoomView{big, small, closed, elsewhere} {
		store.PutRoom(v)
	}

	tests := []struct {
		name     string
		criteria room.Criteria
		want     []uuid.UUID
	}{
		{
			name:     "by location ordered by name",
			criteria: room.Criteria{LocationID: &location},
			want:     []uuid.UUID{big.ID, small.ID, closed.ID},
		},
		{
			name:     "active only",
			criteria: room.Criteria{LocationID: &location, ActiveOnly: true},
			want:     []uuid.UUID{big.ID, small.ID},
		},
		{
			name:     "minimum capacity",
			criteria: room.Criteria{LocationID: &location, MinCapacity: 10},
			want:     []uuid.UUID{big.ID},
		},
		{
			name:     "amenities are normalized before matching",
			criteria: room.Criteria{LocationID: &location, Amenities: []string{" Projector "}},
			want:     []uuid.UUID{big.ID, closed.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := q.Search(ctx, tt.criteria, 0)
			require.NoError(t, err)

			got := make([]uuid.UUID, len(rows))
			for i, r := range rows {
				got[i] = r.ID
			}
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := q.Search(ctx, room.Criteria{Amenities: []string{""}}, 0)
	assert.True(t, errs.Is(err, errs.ErrDomainValidation))
}
