// Package authz decides whether an authenticated actor may mutate rooms and
// reservations. Every function here is pure; callers load the target first.
package authz

import (
	"errors"

	"meeting-room-booking/internal/domain/user"

	"github.com/google/uuid"
)

var ErrForbidden = errors.New("forbidden")

// Context is built from a validated bearer token on every request and never stored.
type Context struct {
	UserID             uuid.UUID
	Role               user.Role
	ManagedLocationIDs []uuid.UUID
}

func (c Context) IsAdmin() bool {
	return c.Role == user.RoleAdmin
}

// Manages reports whether the actor is a manager of the given location.
func (c Context) Manages(locationID uuid.UUID) bool {
	if c.Role != user.RoleManager {
		return false
	}
	for _, id := range c.ManagedLocationIDs {
		if id == locationID {
			return true
		}
	}
	return false
}

// Target identifies what a write touches.
type Target struct {
	OwnerID    uuid.UUID
	LocationID uuid.UUID
}

// CanManageReservation allows admins, managers of the target location and the
// reservation's owner. Ownership counts for managers too, so a manager can
// always edit their own bookings.
func CanManageReservation(actor Context, target Target) error {
	switch {
	case actor.IsAdmin():
		return nil
	case actor.Manages(target.LocationID):
		return nil
	case actor.UserID != uuid.Nil && actor.UserID == target.OwnerID:
		return nil
	default:
		return ErrForbidden
	}
}

// CanCreateReservation lets anyone book for themselves. Booking for someone
// else needs an admin or a manager of the room's location.
func CanCreateReservation(actor Context, target Target) error {
	if actor.UserID == uuid.Nil {
		return ErrForbidden
	}
	if target.OwnerID == actor.UserID {
		return nil
	}
	if actor.IsAdmin() || actor.Manages(target.LocationID) {
		return nil
	}
	return ErrForbidden
}

func CanManageRoom(actor Context, locationID uuid.UUID) error {
	if actor.IsAdmin() || actor.Manages(locationID) {
		return nil
	}
	return ErrForbidden
}
