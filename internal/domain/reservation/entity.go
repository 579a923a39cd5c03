package reservation

import (
	"errors"
	"time"

	"meeting-room-booking/internal/domain/schedule"
	"meeting-room-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrWindowInPast        = errors.New("reservation window lies entirely in the past")
	ErrReservationCanceled = errors.New("reservation is already canceled")
	ErrInvalidStatus       = errors.New("invalid reservation status")
	ErrEmptyTitle          = errors.New("title must not be empty")
	ErrTitleTooLong        = errors.New("title is too long")
	ErrDescriptionTooLong  = errors.New("description is too long")
)

type Services struct {
	Clock clock.Clock
}

type Reservation struct {
	id          uuid.UUID
	roomID      uuid.UUID
	ownerID     uuid.UUID
	window      schedule.TimeWindow
	title       Title
	description Description
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

func NewReservation(
	services *Services,
	roomID, ownerID uuid.UUID,
	window schedule.TimeWindow,
	title Title,
	description Description,
) (*Reservation, error) {
	now := services.Clock.Now()
	if window.IsPast(now) {
		return nil, ErrWindowInPast
	}

	return &Reservation{
		id:          uuid.New(),
		roomID:      roomID,
		ownerID:     ownerID,
		window:      window,
		title:       title,
		description: description,
		status:      StatusConfirmed,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructReservation(
	id, roomID, ownerID uuid.UUID,
	window schedule.TimeWindow,
	title Title,
	description Description,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:          id,
		roomID:      roomID,
		ownerID:     ownerID,
		window:      window,
		title:       title,
		description: description,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Reschedule moves the reservation to a new window. The caller re-runs the
// conflict check with this reservation excluded.
func (r *Reservation) Reschedule(window schedule.TimeWindow, now time.Time) error {
	if r.IsCanceled() {
		return ErrReservationCanceled
	}
	if window.IsPast(now) {
		return ErrWindowInPast
	}
	r.window = window
	r.updatedAt = now
	return nil
}

func (r *Reservation) Retitle(title Title, now time.Time) error {
	if r.IsCanceled() {
		return ErrReservationCanceled
	}
	r.title = title
	r.updatedAt = now
	return nil
}

func (r *Reservation) Describe(description Description, now time.Time) error {
	if r.IsCanceled() {
		return ErrReservationCanceled
	}
	r.description = description
	r.updatedAt = now
	return nil
}

// Cancel is terminal. It reports false when the reservation was already canceled.
func (r *Reservation) Cancel(now time.Time) bool {
	if r.IsCanceled() {
		return false
	}
	r.status = StatusCanceled
	r.updatedAt = now
	return true
}

func (r *Reservation) IsLive() bool {
	return r.status.IsLive()
}

func (r *Reservation) IsCanceled() bool {
	return r.status == StatusCanceled
}

func (r *Reservation) ID() uuid.UUID               { return r.id }
func (r *Reservation) RoomID() uuid.UUID           { return r.roomID }
func (r *Reservation) OwnerID() uuid.UUID          { return r.ownerID }
func (r *Reservation) Window() schedule.TimeWindow { return r.window }
func (r *Reservation) Title() Title                { return r.title }
func (r *Reservation) Description() Description    { return r.description }
func (r *Reservation) Status() Status              { return r.status }
func (r *Reservation) CreatedAt() time.Time        { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time        { return r.updatedAt }
