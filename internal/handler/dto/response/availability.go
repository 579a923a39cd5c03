package response

import (
	"time"

	"meeting-room-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotResponse struct {
	Start       time.Time            `json:"start"`
	End         time.Time            `json:"end"`
	Free        bool                 `json:"free"`
	Reservation *ReservationResponse `json:"reservation,omitempty"`
}

type AvailabilityResponse struct {
	RoomID uuid.UUID       `json:"room_id"`
	Start  time.Time       `json:"start"`
	End    time.Time       `json:"end"`
	Slots  []*SlotResponse `json:"slots"`
}

type ConflictsResponse struct {
	Conflicts []*ReservationResponse `json:"conflicts"`
}

// NextSlotResponse reports a search miss as Found=false rather than an error.
type NextSlotResponse struct {
	Found bool       `json:"found"`
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

func NewAvailabilityResponse(roomID uuid.UUID, start, end time.Time, slots []*queries.SlotView) *AvailabilityResponse {
	items := make([]*SlotResponse, len(slots))
	for i, s := range slots {
		item := &SlotResponse{
			Start: s.Start.UTC(),
			End:   s.End.UTC(),
			Free:  s.Free,
		}
		if s.Reservation != nil {
			item.Reservation = FromReservationView(s.Reservation)
		}
		items[i] = item
	}
	return &AvailabilityResponse{
		RoomID: roomID,
		Start:  start.UTC(),
		End:    end.UTC(),
		Slots:  items,
	}
}

func NewConflictsResponse(views []*queries.ReservationView) *ConflictsResponse {
	return &ConflictsResponse{Conflicts: FromReservationViews(views)}
}

func NewNextSlotResponse(w *queries.WindowView) *NextSlotResponse {
	if w == nil {
		return &NextSlotResponse{Found: false}
	}
	start, end := w.Start.UTC(), w.End.UTC()
	return &NextSlotResponse{Found: true, Start: &start, End: &end}
}
