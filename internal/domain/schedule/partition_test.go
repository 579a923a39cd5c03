//go:build unit

package schedule_test

import (
	"testing"

	"meeting-room-booking/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPartition(t *testing.T, query schedule.TimeWindow, slots []schedule.Slot) {
	t.Helper()
	require.NotEmpty(t, slots)
	assert.True(t, slots[0].Window.Start().Equal(query.Start()), "first slot must start at query start")
	assert.True(t, slots[len(slots)-1].Window.End().Equal(query.End()), "last slot must end at query end")
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Window.End().Equal(slots[i].Window.Start()),
			"slot %d must start where slot %d ends", i, i-1)
	}
	for _, s := range slots {
		assert.True(t, s.Window.Start().Before(s.Window.End()), "slot must be non-empty")
		assert.Equal(t, s.Free, s.ReservationID == nil)
	}
}

func TestPartition(t *testing.T) {
	query := win(9, 0, 12, 0)
	r1 := uuid.New()
	r2 := uuid.New()

	t.Run("no busy intervals yields one free slot", func(t *testing.T) {
		slots := schedule.Partition(query, nil)
		require.Len(t, slots, 1)
		assert.True(t, slots[0].Free)
		assert.True(t, slots[0].Window.Equal(query))
	})

	t.Run("single reservation in the middle", func(t *testing.T) {
		slots := schedule.Partition(query, []schedule.Busy{{ReservationID: r1, Window: win(10, 0, 11, 0)}})
		assertPartition(t, query, slots)
		require.Len(t, slots, 3)
		assert.True(t, slots[0].Free)
		assert.True(t, slots[0].Window.Equal(win(9, 0, 10, 0)))
		assert.False(t, slots[1].Free)
		assert.Equal(t, r1, *slots[1].ReservationID)
		assert.True(t, slots[2].Free)
		assert.True(t, slots[2].Window.Equal(win(11, 0, 12, 0)))
	})

	t.Run("busy intervals are clipped to the query", func(t *testing.T) {
		slots := schedule.Partition(query, []schedule.Busy{
			{ReservationID: r1, Window: win(8, 0, 9, 30)},
			{ReservationID: r2, Window: win(11, 30, 13, 0)},
		})
		assertPartition(t, query, slots)
		require.Len(t, slots, 3)
		assert.True(t, slots[0].Window.Equal(win(9, 0, 9, 30)))
		assert.True(t, slots[1].Free)
		assert.True(t, slots[2].Window.Equal(win(11, 30, 12, 0)))
	})

	t.Run("adjacent busy intervals leave no zero-length gap", func(t *testing.T) {
		slots := schedule.Partition(query, []schedule.Busy{
			{ReservationID: r2, Window: win(10, 0, 11, 0)},
			{ReservationID: r1, Window: win(9, 0, 10, 0)},
		})
		assertPartition(t, query, slots)
		require.Len(t, slots, 3)
		assert.Equal(t, r1, *slots[0].ReservationID)
		assert.Equal(t, r2, *slots[1].ReservationID)
		assert.True(t, slots[2].Free)
	})

	t.Run("overlapping input is tolerated", func(t *testing.T) {
		slots := schedule.Partition(query, []schedule.Busy{
			{ReservationID: r1, Window: win(9, 30, 10, 30)},
			{ReservationID: r2, Window: win(10, 0, 10, 15)},
		})
		assertPartition(t, query, slots)
		require.Len(t, slots, 3)
		assert.True(t, slots[1].Window.Equal(win(9, 30, 10, 30)))
	})

	t.Run("fully booked", func(t *testing.T) {
		slots := schedule.Partition(query, []schedule.Busy{{ReservationID: r1, Window: win(8, 0, 13, 0)}})
		assertPartition(t, query, slots)
		require.Len(t, slots, 1)
		assert.False(t, slots[0].Free)
	})
}
