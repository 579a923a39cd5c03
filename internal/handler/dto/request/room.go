package request

import (
	"strings"

	"meeting-room-booking/internal/domain/room"
	"meeting-room-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

const defaultRoomTimezone = "UTC"

type CreateRoomRequest struct {
	LocationID uuid.UUID `json:"location_id" binding:"required"`
	Name       string    `json:"name" binding:"required,max=100"`
	Capacity   int       `json:"capacity" binding:"required,min=1"`
	Amenities  []string  `json:"amenities"`
	Timezone   string    `json:"timezone"`
}

func (r CreateRoomRequest) ToInput() commands.CreateRoomInput {
	tz := strings.TrimSpace(r.Timezone)
	if tz == "" {
		tz = defaultRoomTimezone
	}
	return commands.CreateRoomInput{
		LocationID: r.LocationID,
		Name:       r.Name,
		Capacity:   r.Capacity,
		Amenities:  r.Amenities,
		Timezone:   tz,
	}
}

type UpdateRoomRequest struct {
	Name      *string   `json:"name,omitempty" binding:"omitempty,max=100"`
	Capacity  *int      `json:"capacity,omitempty" binding:"omitempty,min=1"`
	Amenities *[]string `json:"amenities,omitempty"`
	Timezone  *string   `json:"timezone,omitempty"`
	Active    *bool     `json:"active,omitempty"`
}

func (r UpdateRoomRequest) ToInput() commands.UpdateRoomInput {
	return commands.UpdateRoomInput{
		Name:      r.Name,
		Capacity:  r.Capacity,
		Amenities: r.Amenities,
		Timezone:  r.Timezone,
		Active:    r.Active,
	}
}

type SearchRoomsQuery struct {
	LocationID  string   `form:"location_id" binding:"omitempty,uuid"`
	MinCapacity int      `form:"min_capacity" binding:"omitempty,min=0"`
	Amenities   []string `form:"amenities"`
	ActiveOnly  bool     `form:"active_only"`
	Limit       int      `form:"limit" binding:"omitempty,min=1,max=200"`
}

func (q SearchRoomsQuery) ToCriteria() room.Criteria {
	c := room.Criteria{
		MinCapacity: q.MinCapacity,
		Amenities:   q.Amenities,
		ActiveOnly:  q.ActiveOnly,
	}
	if id, err := uuid.Parse(q.LocationID); err == nil {
		c.LocationID = &id
	}
	return c
}
