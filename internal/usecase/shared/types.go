package shared

import (
	"time"

	"meeting-room-booking/internal/domain/reservation"
	"meeting-room-booking/internal/domain/room"
	"meeting-room-booking/internal/domain/schedule"

	"github.com/google/uuid"
)

// Write-side snapshots keep commands independent of read-side view types
type RoomSnapshot struct {
	ID         uuid.UUID
	LocationID uuid.UUID
	Name       string
	Capacity   int
	Amenities  []string
	Timezone   string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s *RoomSnapshot) ToDomain() *room.Room {
	return room.ReconstructRoom(s.ID, s.LocationID, s.Name, s.Capacity, s.Amenities, s.Timezone, s.Active, s.CreatedAt, s.UpdatedAt)
}

type ReservationSnapshot struct {
	ID          uuid.UUID
	RoomID      uuid.UUID
	OwnerID     uuid.UUID
	Start       time.Time
	End         time.Time
	Title       string
	Description *string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ToDomain rebuilds the aggregate from persisted state. Stored rows already
// passed validation, so malformed data is reported as an error rather than
// silently repaired.
func (s *ReservationSnapshot) ToDomain() (*reservation.Reservation, error) {
	window, err := schedule.NewTimeWindow(s.Start, s.End)
	if err != nil {
		return nil, err
	}
	title, err := reservation.NewTitle(s.Title)
	if err != nil {
		return nil, err
	}
	description, err := reservation.NewDescription(s.Description)
	if err != nil {
		return nil, err
	}
	status, err := reservation.ParseStatus(s.Status)
	if err != nil {
		return nil, err
	}
	return reservation.ReconstructReservation(
		s.ID, s.RoomID, s.OwnerID,
		window, title, description, status,
		s.CreatedAt, s.UpdatedAt,
	), nil
}
