//go:build unit

package user_test

import (
	"testing"

	"meeting-room-booking/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRole(t *testing.T) {
	for _, s := range []string{"user", "manager", "admin"} {
		role, err := user.NewRole(s)
		require.NoError(t, err)
		assert.Equal(t, s, role.String())
	}

	_, err := user.NewRole("viewer")
	require.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestRole_AtLeast(t *testing.T) {
	tests := []struct {
		role user.Role
		min  user.Role
		want bool
	}{
		{user.RoleAdmin, user.RoleManager, true},
		{user.RoleManager, user.RoleManager, true},
		{user.RoleUser, user.RoleManager, false},
		{user.RoleUser, user.RoleUser, true},
		{"viewer", user.RoleUser, false},
		{user.RoleAdmin, "root", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.role.AtLeast(tt.min), "%s >= %s", tt.role, tt.min)
	}
}
