package commands

import (
	"fmt"

	"meeting-room-booking/internal/pkg/errs"
	"meeting-room-booking/internal/usecase/queries"
)

// ConflictError names the live reservations that overlap a rejected window.
// It matches errs.ErrReservationConflict under errs.Is.
type ConflictError struct {
	Conflicts []*queries.ReservationView
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("reservation conflict: window overlaps %d existing reservation(s)", len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error {
	return errs.ErrReservationConflict
}
