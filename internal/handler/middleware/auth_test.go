//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"testing"

	"ticketing-engine/internal/domain/user"
	"ticketing-engine/internal/handler/middleware"
	"ticketing-engine/internal/usecase"
	"ticketing-engine/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type tokenTable map[string]usecase.Identity

func (t tokenTable) Identify(token string) (usecase.Identity, error) {
	if id, ok := t[token]; ok {
		return id, nil
	}
	return usecase.Identity{}, errors.New("token expired")
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	adminID := uuid.New()
	buyerID := uuid.New()
	tokens := tokenTable{
		"admin": {UserID: adminID, Role: user.RoleAdmin},
		"buyer": {UserID: buyerID, Role: user.RoleCustomer},
	}
	auth := middleware.NewAuthMiddleware(tokens, discardLogger())

	whoami := func(c *gin.Context) {
		id, ok := middleware.GetUserID(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"user_id": ""})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id.String()})
	}

	router := gin.New()
	router.GET("/private", auth.RequireAuth(), whoami)
	router.GET("/operator", auth.RequireAuth(), auth.RequireRoleAtLeast(user.RoleOperator), whoami)
	router.GET("/optional", auth.OptionalAuth(), whoami)
	router.GET("/misordered", auth.RequireRoleAtLeast(user.RoleOperator), whoami)

	tests := []struct {
		name     string
		path     string
		token    string
		wantCode int
		wantUser string
	}{
		{name: "valid token", path: "/private", token: "buyer", wantCode: http.StatusOK, wantUser: buyerID.String()},
		{name: "missing token", path: "/private", wantCode: http.StatusUnauthorized},
		{name: "rejected token", path: "/private", token: "stale", wantCode: http.StatusUnauthorized},
		{name: "admin outranks operator", path: "/operator", token: "admin", wantCode: http.StatusOK, wantUser: adminID.String()},
		{name: "customer below operator", path: "/operator", token: "buyer", wantCode: http.StatusForbidden},
		{name: "optional without token", path: "/optional", wantCode: http.StatusOK, wantUser: ""},
		{name: "optional with bad token", path: "/optional", token: "stale", wantCode: http.StatusOK, wantUser: ""},
		{name: "optional with token", path: "/optional", token: "buyer", wantCode: http.StatusOK, wantUser: buyerID.String()},
		{name: "role check without auth", path: "/misordered", token: "admin", wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.PerformRequest(t, router, http.MethodGet, tt.path, nil, tt.token)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				var body map[string]string
				_ = httptest.DecodeResponseBody(t, rec.Body, &body)
				assert.Equal(t, tt.wantUser, body["user_id"])
			}
		})
	}
}

func TestAuthMiddlewareIgnoresNonBearerSchemes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := middleware.NewAuthMiddleware(tokenTable{"t": {UserID: uuid.New(), Role: user.RoleAdmin}}, discardLogger())

	router := gin.New()
	router.GET("/private", auth.RequireAuth(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.PerformRequestWithHeaders(t, router, http.MethodGet, "/private", nil, "",
		map[string]string{"Authorization": "Basic dDp0"})

	httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
}
