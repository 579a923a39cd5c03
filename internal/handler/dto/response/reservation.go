package response

import (
	"time"

	"meeting-room-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID          uuid.UUID `json:"id"`
	RoomID      uuid.UUID `json:"room_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ReservationListResponse struct {
	Items      []*ReservationResponse `json:"items"`
	NextCursor *string                `json:"next_cursor,omitempty"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:          v.ID,
		RoomID:      v.RoomID,
		OwnerID:     v.OwnerID,
		Start:       v.Start.UTC(),
		End:         v.End.UTC(),
		Title:       v.Title,
		Description: v.Description,
		Status:      v.Status,
		CreatedAt:   v.CreatedAt.UTC(),
		UpdatedAt:   v.UpdatedAt.UTC(),
	}
}

func FromReservationViews(views []*queries.ReservationView) []*ReservationResponse {
	res := make([]*ReservationResponse, len(views))
	for i, v := range views {
		res[i] = FromReservationView(v)
	}
	return res
}

func NewReservationListResponse(views []*queries.ReservationView, next *queries.Cursor) *ReservationListResponse {
	resp := &ReservationListResponse{Items: FromReservationViews(views)}
	if next != nil && next.After != "" {
		after := next.After
		resp.NextCursor = &after
	}
	return resp
}
