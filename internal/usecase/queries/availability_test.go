//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"meeting-room-booking/internal/domain/reservation"
	"meeting-room-booking/internal/domain/schedule"
	"meeting-room-booking/internal/pkg/clock"
	"meeting-room-booking/internal/pkg/errs"
	"meeting-room-booking/internal/usecase/queries"
	"meeting-room-booking/tests/common/builder"
	"meeting-room-booking/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

func at(h, m int) time.Time {
	return time.Date(2030, 1, 7, h, m, 0, 0, time.UTC)
}

type AvailabilityQueriesTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memstore.Store
	clock *clock.MockClock
	q     queries.AvailabilityQueries
	room  *queries.RoomView
	r1    *queries.ReservationView
}

func (s *AvailabilityQueriesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.clock = clock.NewMockClock(at(8, 0))
	s.q = queries.NewAvailabilityQueries(s.store.Rooms(), s.store.Reservations(), s.clock, schedule.DefaultSearchPolicy())

	s.room = builder.NewRoomBuilder().BuildView()
	s.store.PutRoom(s.room)
	s.r1 = s.seed(at(10, 0), at(11, 0), reservation.StatusConfirmed)
}

func TestAvailabilityQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityQueriesTestSuite))
}

func (s *AvailabilityQueriesTestSuite) seed(start, end time.Time, status reservation.Status) *queries.ReservationView {
	v := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.RoomID = s.room.ID
		b.Status = status
	}).WithWindow(start, end).BuildView()
	s.store.PutReservation(v)
	return v
}

func (s *AvailabilityQueriesTestSuite) TestCheckAvailability_PartitionsTheWindow() {
	slots, err := s.q.CheckAvailability(s.ctx, s.room.ID, at(9, 0), at(12, 0))

	s.Require().NoError(err)
	s.Require().Len(slots, 3)

	s.True(slots[0].Free)
	s.True(at(9, 0).Equal(slots[0].Start))
	s.True(at(10, 0).Equal(slots[0].End))
	s.Nil(slots[0].Reservation)

	s.False(slots[1].Free)
	s.True(at(10, 0).Equal(slots[1].Start))
	s.True(at(11, 0).Equal(slots[1].End))
	s.Require().NotNil(slots[1].Reservation)
	s.Equal(s.r1.ID, slots[1].Reservation.ID)

	s.True(slots[2].Free)
	s.True(at(11, 0).Equal(slots[2].Start))
	s.True(at(12, 0).Equal(slots[2].End))
}

func (s *AvailabilityQueriesTestSuite) TestCheckAvailability_IsContiguous() {
	s.seed(at(8, 30), at(9, 30), reservation.StatusPending)
	s.seed(at(11, 0), at(11, 15), reservation.StatusConfirmed)
	s.seed(at(11, 30), at(13, 0), reservation.StatusConfirmed)
	s.seed(at(9, 30), at(10, 0), reservation.StatusCanceled)

	slots, err := s.q.CheckAvailability(s.ctx, s.room.ID, at(9, 0), at(12, 0))

	s.Require().NoError(err)
	s.Require().NotEmpty(slots)
	s.True(at(9, 0).Equal(slots[0].Start))
	s.True(at(12, 0).Equal(slots[len(slots)-1].End))
	for i := 1; i < len(slots); i++ {
		s.True(slots[i-1].End.Equal(slots[i].Start), "gap or overlap at segment %d", i)
		if slots[i-1].Free {
			s.False(slots[i].Free, "adjacent free segments at %d", i)
		}
	}
	// Clipped to the query window
	s.False(slots[0].Free)
	s.True(at(9, 30).Equal(slots[0].End))
}

func (s *AvailabilityQueriesTestSuite) TestCheckAvailability_Errors() {
	_, err := s.q.CheckAvailability(s.ctx, s.room.ID, at(12, 0), at(9, 0))
	s.True(errs.Is(err, errs.ErrInvalidWindow))

	_, err = s.q.CheckAvailability(s.ctx, s.room.ID, at(9, 0), at(9, 0))
	s.True(errs.Is(err, errs.ErrInvalidWindow))

	_, err = s.q.CheckAvailability(s.ctx, uuid.New(), at(9, 0), at(12, 0))
	s.True(errs.Is(err, errs.ErrRoomNotFound))
}

func (s *AvailabilityQueriesTestSuite) TestFindConflicts() {
	second := s.seed(at(11, 0), at(12, 0), reservation.StatusConfirmed)

	s.Run("overlapping window", func() {
		found, err := s.q.FindConflicts(s.ctx, s.room.ID, at(10, 30), at(11, 30), nil)
		s.Require().NoError(err)
		s.Require().Len(found, 2)
		s.Equal(s.r1.ID, found[0].ID)
		s.Equal(second.ID, found[1].ID)
	})

	s.Run("touching boundary", func() {
		found, err := s.q.FindConflicts(s.ctx, s.room.ID, at(9, 0), at(10, 0), nil)
		s.Require().NoError(err)
		s.Empty(found)
	})

	s.Run("excluded reservation", func() {
		found, err := s.q.FindConflicts(s.ctx, s.room.ID, at(10, 30), at(11, 30), &s.r1.ID)
		s.Require().NoError(err)
		s.Require().Len(found, 1)
		s.Equal(second.ID, found[0].ID)
	})
}

func (s *AvailabilityQueriesTestSuite) TestSuggestSlot_SkipsPastConflicts() {
	notBefore := at(10, 0)

	slot, err := s.q.SuggestSlot(s.ctx, s.room.ID, 30, &notBefore)

	s.Require().NoError(err)
	s.True(at(11, 0).Equal(slot.Start))
	s.True(at(11, 30).Equal(slot.End))

	found, err := s.q.FindConflicts(s.ctx, s.room.ID, slot.Start, slot.End, nil)
	s.Require().NoError(err)
	s.Empty(found)
}

func (s *AvailabilityQueriesTestSuite) TestSuggestSlot_DefaultsToNowRounded() {
	s.clock.Set(at(8, 7))

	slot, err := s.q.SuggestSlot(s.ctx, s.room.ID, 60, nil)

	s.Require().NoError(err)
	s.True(at(8, 15).Equal(slot.Start))
}

func (s *AvailabilityQueriesTestSuite) TestSuggestSlot_NoSlotWithinBound() {
	q := queries.NewAvailabilityQueries(s.store.Rooms(), s.store.Reservations(), s.clock, schedule.SearchPolicy{
		MaxAttempts: 1,
		Rounding:    15 * time.Minute,
	})
	notBefore := at(10, 0)

	_, err := q.SuggestSlot(s.ctx, s.room.ID, 30, &notBefore)

	s.True(errs.Is(err, errs.ErrNoSlotAvailable))
	s.False(errs.Is(err, errs.ErrRoomNotFound))
}

func (s *AvailabilityQueriesTestSuite) TestSuggestSlot_Errors() {
	_, err := s.q.SuggestSlot(s.ctx, s.room.ID, 0, nil)
	s.True(errs.Is(err, errs.ErrInvalidWindow))

	// 2^53 minutes wraps time.Duration to a short window.
	notBefore := at(12, 0)
	slot, err := s.q.SuggestSlot(s.ctx, s.room.ID, 30+1<<53, &notBefore)
	s.Nil(slot)
	s.True(errs.Is(err, errs.ErrInvalidWindow))

	_, err = s.q.SuggestSlot(s.ctx, uuid.New(), 30, nil)
	s.True(errs.Is(err, errs.ErrRoomNotFound))

	s.room.Active = false
	s.store.PutRoom(s.room)
	_, err = s.q.SuggestSlot(s.ctx, s.room.ID, 30, nil)
	s.True(errs.Is(err, errs.ErrRoomInactive))
}
