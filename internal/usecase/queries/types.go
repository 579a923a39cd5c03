package queries

import (
	"time"

	"github.com/google/uuid"
)

// ReservationView represents read-optimized reservation data
type ReservationView struct {
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

// RoomView represents read-optimized room data
type RoomView struct {
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

// SlotView is one segment of an availability partition. Reservation is set
// only on busy segments.
type SlotView struct {
	Start       time.Time        `json:"start"`
	End         time.Time        `json:"end"`
	Free        bool             `json:"free"`
	Reservation *ReservationView `json:"reservation,omitempty"`
}

type WindowView struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
