//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"ticketing-engine/internal/domain/user"
	"ticketing-engine/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	svc := jwt.NewService("secret", "ticketing-engine", time.Hour)

	t.Run("round trip keeps user and role", func(t *testing.T) {
		userID := uuid.New()
		token, err := svc.GenerateToken(userID, user.RoleOperator)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "operator", claims.Role)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := jwt.NewService("secret", "ticketing-engine", -time.Minute)
		token, err := expired.GenerateToken(uuid.New(), user.RoleCustomer)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("foreign issuer is rejected", func(t *testing.T) {
		other := jwt.NewService("secret", "someone-else", time.Hour)
		token, err := other.GenerateToken(uuid.New(), user.RoleAdmin)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := jwt.NewService("other", "ticketing-engine", time.Hour)
		token, err := other.GenerateToken(uuid.New(), user.RoleAdmin)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
