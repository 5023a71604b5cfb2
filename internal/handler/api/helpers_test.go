//go:build unit

package api_test

import (
	"errors"
	"io"
	"log/slog"

	"ticketing-engine/internal/domain/user"
	"ticketing-engine/internal/handler/middleware"
	"ticketing-engine/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	operatorToken = "operator-token"
	customerToken = "customer-token"
)

var (
	operatorID = uuid.MustParse("8f0c6a52-6c1f-4d38-9a3e-1b2f6f0e9a01")
	customerID = uuid.MustParse("2b7d4e10-93a4-4c55-8e0b-7c6d5a4b3c21")
)

type stubValidator struct{}

func (stubValidator) Identify(token string) (usecase.Identity, error) {
	switch token {
	case operatorToken:
		return usecase.Identity{UserID: operatorID, Role: user.RoleOperator}, nil
	case customerToken:
		return usecase.Identity{UserID: customerID, Role: user.RoleCustomer}, nil
	default:
		return usecase.Identity{}, errors.New("token rejected")
	}
}

func newTestAuth() *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(stubValidator{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func operatorOnly(auth *middleware.AuthMiddleware) []gin.HandlerFunc {
	return []gin.HandlerFunc{auth.RequireAuth(), auth.RequireRoleAtLeast(user.RoleOperator)}
}

func with(mw []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	return append(append([]gin.HandlerFunc{}, mw...), h)
}
