package request

import (
	"time"

	"meeting-room-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RoomID      uuid.UUID  `json:"room_id" binding:"required"`
	Start       time.Time  `json:"start" binding:"required"`
	End         time.Time  `json:"end" binding:"required"`
	Title       string     `json:"title" binding:"required,max=200"`
	Description *string    `json:"description,omitempty" binding:"omitempty,max=2000"`
	OwnerID     *uuid.UUID `json:"owner_id,omitempty"`
}

func (r CreateReservationRequest) ToInput(idempotencyKey *uuid.UUID) commands.CreateReservationInput {
	return commands.CreateReservationInput{
		RoomID:         r.RoomID,
		Start:          r.Start.UTC(),
		End:            r.End.UTC(),
		Title:          r.Title,
		Description:    r.Description,
		OwnerID:        r.OwnerID,
		IdempotencyKey: idempotencyKey,
	}
}

type UpdateReservationRequest struct {
	Start       *time.Time `json:"start,omitempty"`
	End         *time.Time `json:"end,omitempty"`
	Title       *string    `json:"title,omitempty" binding:"omitempty,max=200"`
	Description *string    `json:"description,omitempty" binding:"omitempty,max=2000"`
}

func (r UpdateReservationRequest) ToInput() commands.UpdateReservationInput {
	return commands.UpdateReservationInput{
		Start:       utcPtr(r.Start),
		End:         utcPtr(r.End),
		Title:       r.Title,
		Description: r.Description,
	}
}

type ListReservationsQuery struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
