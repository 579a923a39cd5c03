//go:build unit

package room_test

import (
	"testing"
	"time"

	"meeting-room-booking/internal/domain/room"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2030, 3, 4, 9, 0, 0, 0, time.UTC)

func TestNewRoom(t *testing.T) {
	loc := uuid.New()

	t.Run("basic success case", func(t *testing.T) {
		r, err := room.NewRoom(loc, "  Fuji  ", 8, []string{"Projector", "whiteboard", "projector"}, "Asia/Tokyo", now)
		require.NoError(t, err)
		assert.Equal(t, "Fuji", r.Name())
		assert.Equal(t, 8, r.Capacity())
		assert.True(t, r.IsActive())
		assert.Equal(t, []string{"projector", "whiteboard"}, r.Amenities().Slice())
		assert.Equal(t, "Asia/Tokyo", r.Timezone())
	})

	t.Run("empty timezone defaults to UTC", func(t *testing.T) {
		r, err := room.NewRoom(loc, "Fuji", 1, nil, "", now)
		require.NoError(t, err)
		assert.Equal(t, room.DefaultTimezone, r.Timezone())
	})

	tests := []struct {
		name     string
		location uuid.UUID
		roomName string
		capacity int
		tz       string
		errIs    error
	}{
		{name: "missing location", location: uuid.Nil, roomName: "Fuji", capacity: 4, errIs: room.ErrMissingLocation},
		{name: "blank name", location: loc, roomName: "  ", capacity: 4, errIs: room.ErrEmptyRoomName},
		{name: "zero capacity", location: loc, roomName: "Fuji", capacity: 0, errIs: room.ErrInvalidCapacity},
		{name: "unknown timezone", location: loc, roomName: "Fuji", capacity: 4, tz: "Mars/Olympus", errIs: room.ErrInvalidTimezone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := room.NewRoom(tt.location, tt.roomName, tt.capacity, nil, tt.tz, now)
			require.ErrorIs(t, err, tt.errIs)
		})
	}
}

func TestRoom_SetActive(t *testing.T) {
	r, err := room.NewRoom(uuid.New(), "Fuji", 4, nil, "", now)
	require.NoError(t, err)

	later := now.Add(time.Hour)
	r.SetActive(false, later)
	assert.False(t, r.IsActive())
	assert.Equal(t, later, r.UpdatedAt())

	r.SetActive(false, later.Add(time.Hour))
	assert.Equal(t, later, r.UpdatedAt(), "no-op toggle keeps updatedAt")
}

func TestCriteria(t *testing.T) {
	loc := uuid.New()
	other := uuid.New()
	r, err := room.NewRoom(loc, "Fuji", 6, []string{"projector", "vc"}, "", now)
	require.NoError(t, err)

	tests := []struct {
		name     string
		criteria room.Criteria
		want     bool
	}{
		{name: "empty criteria", criteria: room.Criteria{}, want: true},
		{name: "same location", criteria: room.Criteria{LocationID: &loc}, want: true},
		{name: "other location", criteria: room.Criteria{LocationID: &other}, want: false},
		{name: "capacity met", criteria: room.Criteria{MinCapacity: 6}, want: true},
		{name: "capacity not met", criteria: room.Criteria{MinCapacity: 7}, want: false},
		{name: "amenities present", criteria: room.Criteria{Amenities: []string{"VC"}}, want: true},
		{name: "amenity missing", criteria: room.Criteria{Amenities: []string{"vc", "whiteboard"}}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.criteria.Matches(r))
		})
	}

	r.SetActive(false, now)
	assert.False(t, room.Criteria{ActiveOnly: true}.Matches(r))
}
