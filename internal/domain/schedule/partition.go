package schedule

import (
	"sort"

	"github.com/google/uuid"
)

// Busy is an occupied interval owned by a live reservation.
type Busy struct {
	ReservationID uuid.UUID
	Window        TimeWindow
}

type Slot struct {
	Window        TimeWindow
	Free          bool
	ReservationID *uuid.UUID
}

// Partition splits query into an ordered, gap-free sequence of free and busy
// slots. Busy intervals are clipped to query; intervals that end up empty or
// entirely covered by an earlier one are skipped.
func Partition(query TimeWindow, busy []Busy) []Slot {
	sorted := make([]Busy, len(busy))
	copy(sorted, busy)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Window.start.Equal(sorted[j].Window.start) {
			return sorted[i].Window.end.Before(sorted[j].Window.end)
		}
		return sorted[i].Window.start.Before(sorted[j].Window.start)
	})

	slots := make([]Slot, 0, 2*len(sorted)+1)
	cursor := query.start

	for _, b := range sorted {
		start := b.Window.start
		if start.Before(cursor) {
			start = cursor
		}
		end := b.Window.end
		if end.After(query.end) {
			end = query.end
		}
		if !start.Before(end) {
			continue
		}

		if cursor.Before(start) {
			slots = append(slots, Slot{Window: TimeWindow{start: cursor, end: start}, Free: true})
		}

		id := b.ReservationID
		slots = append(slots, Slot{Window: TimeWindow{start: start, end: end}, ReservationID: &id})
		cursor = end
	}

	if cursor.Before(query.end) {
		slots = append(slots, Slot{Window: TimeWindow{start: cursor, end: query.end}, Free: true})
	}

	return slots
}
