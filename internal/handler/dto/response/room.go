package response

import (
	"time"

	"meeting-room-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomResponse struct {
	ID         uuid.UUID `json:"id"`
	LocationID uuid.UUID `json:"location_id"`
	Name       string    `json:"name"`
	Capacity   int       `json:"capacity"`
	Amenities  []string  `json:"amenities"`
	Timezone   string    `json:"timezone"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type RoomListResponse struct {
	Items []*RoomResponse `json:"items"`
}

func FromRoomView(v *queries.RoomView) *RoomResponse {
	amenities := v.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return &RoomResponse{
		ID:         v.ID,
		LocationID: v.LocationID,
		Name:       v.Name,
		Capacity:   v.Capacity,
		Amenities:  amenities,
		Timezone:   v.Timezone,
		Active:     v.Active,
		CreatedAt:  v.CreatedAt.UTC(),
		UpdatedAt:  v.UpdatedAt.UTC(),
	}
}

func FromRoomViews(views []*queries.RoomView) *RoomListResponse {
	items := make([]*RoomResponse, len(views))
	for i, v := range views {
		items[i] = FromRoomView(v)
	}
	return &RoomListResponse{Items: items}
}
