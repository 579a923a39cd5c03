//go:build unit

package authz_test

import (
	"testing"

	"meeting-room-booking/internal/domain/authz"
	"meeting-room-booking/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanManageReservation(t *testing.T) {
	owner := uuid.New()
	locA := uuid.New()
	locB := uuid.New()
	target := authz.Target{OwnerID: owner, LocationID: locA}

	tests := []struct {
		name    string
		actor   authz.Context
		allowed bool
	}{
		{name: "admin", actor: authz.Context{UserID: uuid.New(), Role: user.RoleAdmin}, allowed: true},
		{name: "manager of location", actor: authz.Context{UserID: uuid.New(), Role: user.RoleManager, ManagedLocationIDs: []uuid.UUID{locB, locA}}, allowed: true},
		{name: "manager of other location", actor: authz.Context{UserID: uuid.New(), Role: user.RoleManager, ManagedLocationIDs: []uuid.UUID{locB}}, allowed: false},
		{name: "owner", actor: authz.Context{UserID: owner, Role: user.RoleUser}, allowed: true},
		{name: "manager owning a reservation outside their locations", actor: authz.Context{UserID: owner, Role: user.RoleManager, ManagedLocationIDs: []uuid.UUID{locB}}, allowed: true},
		{name: "other user", actor: authz.Context{UserID: uuid.New(), Role: user.RoleUser}, allowed: false},
		{name: "user claiming managed locations", actor: authz.Context{UserID: uuid.New(), Role: user.RoleUser, ManagedLocationIDs: []uuid.UUID{locA}}, allowed: false},
		{name: "anonymous", actor: authz.Context{}, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authz.CanManageReservation(tt.actor, target)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, authz.ErrForbidden)
			}
		})
	}
}

func TestCanCreateReservation(t *testing.T) {
	self := uuid.New()
	other := uuid.New()
	loc := uuid.New()

	assert.NoError(t, authz.CanCreateReservation(authz.Context{UserID: self, Role: user.RoleUser}, authz.Target{OwnerID: self, LocationID: loc}))
	assert.ErrorIs(t, authz.CanCreateReservation(authz.Context{UserID: self, Role: user.RoleUser}, authz.Target{OwnerID: other, LocationID: loc}), authz.ErrForbidden)
	assert.NoError(t, authz.CanCreateReservation(authz.Context{UserID: self, Role: user.RoleAdmin}, authz.Target{OwnerID: other, LocationID: loc}))
	assert.NoError(t, authz.CanCreateReservation(authz.Context{UserID: self, Role: user.RoleManager, ManagedLocationIDs: []uuid.UUID{loc}}, authz.Target{OwnerID: other, LocationID: loc}))
	assert.ErrorIs(t, authz.CanCreateReservation(authz.Context{UserID: self, Role: user.RoleManager}, authz.Target{OwnerID: other, LocationID: loc}), authz.ErrForbidden)
	assert.ErrorIs(t, authz.CanCreateReservation(authz.Context{}, authz.Target{LocationID: loc}), authz.ErrForbidden)
}

func TestCanManageRoom(t *testing.T) {
	loc := uuid.New()
	assert.NoError(t, authz.CanManageRoom(authz.Context{Role: user.RoleAdmin}, loc))
	assert.NoError(t, authz.CanManageRoom(authz.Context{Role: user.RoleManager, ManagedLocationIDs: []uuid.UUID{loc}}, loc))
	assert.ErrorIs(t, authz.CanManageRoom(authz.Context{Role: user.RoleManager}, loc), authz.ErrForbidden)
	assert.ErrorIs(t, authz.CanManageRoom(authz.Context{Role: user.RoleUser}, loc), authz.ErrForbidden)
}
