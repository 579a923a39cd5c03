package queries

import (
	"context"
	"sort"
	"time"

	"meeting-room-booking/internal/domain/schedule"
	"meeting-room-booking/internal/pkg/clock"
	"meeting-room-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type AvailabilityQueries interface {
	CheckAvailability(ctx context.Context, roomID uuid.UUID, start, end time.Time) ([]*SlotView, error)
	FindConflicts(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*ReservationView, error)
	SuggestSlot(ctx context.Context, roomID uuid.UUID, durationMinutes int, notBefore *time.Time) (*WindowView, error)
}

type availabilityQueriesImpl struct {
	rooms        RoomReadStore
	reservations ReservationReadStore
	clock        clock.Clock
	policy       schedule.SearchPolicy
}

func NewAvailabilityQueries(
	rooms RoomReadStore,
	reservations ReservationReadStore,
	clk clock.Clock,
	policy schedule.SearchPolicy,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		rooms:        rooms,
		reservations: reservations,
		clock:        clk,
		policy:       policy,
	}
}

func (q *availabilityQueriesImpl) CheckAvailability(ctx context.Context, roomID uuid.UUID, start, end time.Time) ([]*SlotView, error) {
	window, err := schedule.NewTimeWindow(start, end)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidWindow)
	}
	if _, err := findRoom(ctx, q.rooms, roomID); err != nil {
		return nil, err
	}

	conflicts, err := q.conflicts(ctx, roomID, window, nil)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*ReservationView, len(conflicts))
	busy := make([]schedule.Busy, 0, len(conflicts))
	for _, rv := range conflicts {
		w, werr := schedule.NewTimeWindow(rv.Start, rv.End)
		if werr != nil {
			return nil, errs.Wrap(werr, "stored reservation has an invalid window")
		}
		byID[rv.ID] = rv
		busy = append(busy, schedule.Busy{ReservationID: rv.ID, Window: w})
	}

	parts := schedule.Partition(window, busy)
	slots := make([]*SlotView, len(parts))
	for i, p := range parts {
		slot := &SlotView{
			Start: p.Window.Start(),
			End:   p.Window.End(),
			Free:  p.Free,
		}
		if p.ReservationID != nil {
			slot.Reservation = byID[*p.ReservationID]
		}
		slots[i] = slot
	}
	return slots, nil
}

func (q *availabilityQueriesImpl) FindConflicts(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*ReservationView, error) {
	window, err := schedule.NewTimeWindow(start, end)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidWindow)
	}
	if _, err := findRoom(ctx, q.rooms, roomID); err != nil {
		return nil, err
	}
	return q.conflicts(ctx, roomID, window, excludeID)
}

func (q *availabilityQueriesImpl) SuggestSlot(ctx context.Context, roomID uuid.UUID, durationMinutes int, notBefore *time.Time) (*WindowView, error) {
	duration, err := schedule.MinutesToDuration(durationMinutes)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidWindow)
	}
	rv, err := findRoom(ctx, q.rooms, roomID)
	if err != nil {
		return nil, err
	}
	if !rv.Active {
		return nil, errs.ErrRoomInactive
	}

	var from time.Time
	if notBefore != nil {
		from = *notBefore
	}

	lookup := func(ctx context.Context, candidate schedule.TimeWindow) ([]schedule.Busy, error) {
		found, err := q.conflicts(ctx, roomID, candidate, nil)
		if err != nil {
			return nil, err
		}
		busy := make([]schedule.Busy, 0, len(found))
		for _, c := range found {
			w, werr := schedule.NewTimeWindow(c.Start, c.End)
			if werr != nil {
				continue
			}
			busy = append(busy, schedule.Busy{ReservationID: c.ID, Window: w})
		}
		return busy, nil
	}

	slot, err := schedule.FindNextSlot(ctx, lookup, duration, from, q.clock.Now(), q.policy)
	if err != nil {
		if errs.Is(err, schedule.ErrNoSlotFound) {
			return nil, errs.Mark(err, errs.ErrNoSlotAvailable)
		}
		return nil, err
	}
	return &WindowView{Start: slot.Start(), End: slot.End()}, nil
}

// conflicts re-applies the overlap predicate on top of the store's range
// filter and returns a stable (start, id) order.
func (q *availabilityQueriesImpl) conflicts(ctx context.Context, roomID uuid.UUID, window schedule.TimeWindow, excludeID *uuid.UUID) ([]*ReservationView, error) {
	rows, err := q.reservations.FindLiveOverlapping(ctx, roomID, window.Start(), window.End(), excludeID)
	if err != nil {
		return nil, err
	}

	out := make([]*ReservationView, 0, len(rows))
	for _, rv := range rows {
		w, werr := schedule.NewTimeWindow(rv.Start, rv.End)
		if werr != nil || !w.Overlaps(window) {
			continue
		}
		if excludeID != nil && rv.ID == *excludeID {
			continue
		}
		out = append(out, rv)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start.Equal(out[j].Start) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out, nil
}
