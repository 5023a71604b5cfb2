package usecase

import (
	"ticketing-engine/internal/domain/user"
	"ticketing-engine/internal/pkg/jwt"

	"github.com/google/uuid"
)

// Identity is the caller resolved from a bearer token.
type Identity struct {
	UserID uuid.UUID
	Role   user.Role
}

func (i Identity) CanOperate() bool {
	return i.Role.AtLeast(user.RoleOperator)
}

type TokenValidator interface {
	Identify(token string) (Identity, error)
}

type jwtTokenValidator struct {
	svc *jwt.Service
}

func NewTokenValidator(svc *jwt.Service) TokenValidator {
	return &jwtTokenValidator{svc: svc}
}

func (v *jwtTokenValidator) Identify(token string) (Identity, error) {
	claims, err := v.svc.ValidateToken(token)
	if err != nil {
		return Identity{}, err
	}
	role, err := user.NewRole(claims.Role)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: claims.UserID, Role: role}, nil
}
