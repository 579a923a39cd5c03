//go:build unit

package reservation_test

import (
	"strings"
	"testing"
	"time"

	"meeting-room-booking/internal/domain/reservation"
	"meeting-room-booking/internal/domain/schedule"
	"meeting-room-booking/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2030, 3, 4, 9, 0, 0, 0, time.UTC)

func newServices() *reservation.Services {
	return &reservation.Services{Clock: clock.NewMockClock(now)}
}

func mustTitle(t *testing.T, s string) reservation.Title {
	t.Helper()
	title, err := reservation.NewTitle(s)
	require.NoError(t, err)
	return title
}

func newConfirmed(t *testing.T) *reservation.Reservation {
	t.Helper()
	w := schedule.MustTimeWindow(now.Add(time.Hour), now.Add(2*time.Hour))
	r, err := reservation.NewReservation(newServices(), uuid.New(), uuid.New(), w, mustTitle(t, "Sprint review"), reservation.Description{})
	require.NoError(t, err)
	return r
}

func TestNewReservation(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		r := newConfirmed(t)
		assert.NotEqual(t, uuid.Nil, r.ID())
		assert.Equal(t, reservation.StatusConfirmed, r.Status())
		assert.True(t, r.IsLive())
		assert.Equal(t, now, r.CreatedAt())
		assert.Equal(t, r.CreatedAt(), r.UpdatedAt())
		assert.Equal(t, "Sprint review", r.Title().String())
	})

	t.Run("window in progress is accepted", func(t *testing.T) {
		w := schedule.MustTimeWindow(now.Add(-30*time.Minute), now.Add(30*time.Minute))
		_, err := reservation.NewReservation(newServices(), uuid.New(), uuid.New(), w, mustTitle(t, "x"), reservation.Description{})
		require.NoError(t, err)
	})

	t.Run("window ending now is rejected", func(t *testing.T) {
		w := schedule.MustTimeWindow(now.Add(-time.Hour), now)
		_, err := reservation.NewReservation(newServices(), uuid.New(), uuid.New(), w, mustTitle(t, "x"), reservation.Description{})
		require.ErrorIs(t, err, reservation.ErrWindowInPast)
	})
}

func TestReservation_Reschedule(t *testing.T) {
	r := newConfirmed(t)
	later := now.Add(10 * time.Minute)

	next := schedule.MustTimeWindow(now.Add(3*time.Hour), now.Add(4*time.Hour))
	require.NoError(t, r.Reschedule(next, later))
	assert.True(t, r.Window().Equal(next))
	assert.Equal(t, later, r.UpdatedAt())

	past := schedule.MustTimeWindow(now.Add(-3*time.Hour), now.Add(-2*time.Hour))
	require.ErrorIs(t, r.Reschedule(past, later), reservation.ErrWindowInPast)

	r.Cancel(later)
	require.ErrorIs(t, r.Reschedule(next, later), reservation.ErrReservationCanceled)
	require.ErrorIs(t, r.Retitle(mustTitle(t, "y"), later), reservation.ErrReservationCanceled)
}

func TestReservation_Cancel(t *testing.T) {
	r := newConfirmed(t)
	first := now.Add(time.Minute)
	second := now.Add(2 * time.Minute)

	assert.True(t, r.Cancel(first))
	assert.Equal(t, reservation.StatusCanceled, r.Status())
	assert.False(t, r.IsLive())

	assert.False(t, r.Cancel(second), "second cancel is a no-op")
	assert.Equal(t, reservation.StatusCanceled, r.Status())
	assert.Equal(t, first, r.UpdatedAt())
}

func TestTitle(t *testing.T) {
	_, err := reservation.NewTitle("   ")
	require.ErrorIs(t, err, reservation.ErrEmptyTitle)

	_, err = reservation.NewTitle(strings.Repeat("a", reservation.MaxTitleLength+1))
	require.ErrorIs(t, err, reservation.ErrTitleTooLong)

	title, err := reservation.NewTitle("  Planning  ")
	require.NoError(t, err)
	assert.Equal(t, "Planning", title.String())
}

func TestDescription(t *testing.T) {
	d, err := reservation.NewDescription(nil)
	require.NoError(t, err)
	assert.Nil(t, d.Ptr())

	long := strings.Repeat("a", reservation.MaxDescriptionLength+1)
	_, err = reservation.NewDescription(&long)
	require.ErrorIs(t, err, reservation.ErrDescriptionTooLong)
}

func TestStatus_IsLive(t *testing.T) {
	assert.True(t, reservation.StatusPending.IsLive())
	assert.True(t, reservation.StatusConfirmed.IsLive())
	assert.False(t, reservation.StatusCanceled.IsLive())
}
