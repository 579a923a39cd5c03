//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"meeting-room-booking/internal/domain/user"
	"meeting-room-booking/internal/pkg/config"
	"meeting-room-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	return h.GenerateManagerToken(t, userID, role, nil)
}

// GenerateManagerToken mints a token carrying the locations the user manages.
func (h *JWTHelper) GenerateManagerToken(t *testing.T, userID uuid.UUID, role user.Role, managedLocationIDs []uuid.UUID) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	service := jwt.NewService(h.cfg.Secret, duration, jwt.WithIssuer(h.cfg.Issuer))
	token, err := service.GenerateToken(userID, role, managedLocationIDs)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, -time.Minute, jwt.WithIssuer(h.cfg.Issuer))
	token, err := service.GenerateToken(userID, role, nil)
	require.NoError(t, err)
	return token
}
