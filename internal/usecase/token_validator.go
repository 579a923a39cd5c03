package usecase

import (
	"meeting-room-booking/internal/domain/authz"
	"meeting-room-booking/internal/domain/user"
	"meeting-room-booking/internal/pkg/jwt"
)

// TokenValidator turns a bearer token into the caller's authorization context
type TokenValidator interface {
	ValidateToken(tokenString string) (authz.Context, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (authz.Context, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return authz.Context{}, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return authz.Context{}, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return authz.Context{}, err
	}

	return authz.Context{
		UserID:             userID,
		Role:               role,
		ManagedLocationIDs: claims.ManagedLocationIDs,
	}, nil
}
