//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"ticketing-engine/internal/handler/api"
	"ticketing-engine/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	up := api.PingFunc(func(context.Context) error { return nil })
	down := api.PingFunc(func(context.Context) error { return errors.New("connection refused") })

	type healthBody struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}

	tests := []struct {
		name       string
		deps       map[string]api.Pinger
		wantCode   int
		wantStatus string
		wantChecks map[string]string
	}{
		{
			name:       "all dependencies reachable",
			deps:       map[string]api.Pinger{"postgres": up, "redis": up},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
			wantChecks: map[string]string{"postgres": "ok", "redis": "ok"},
		},
		{
			name:       "redis down degrades the service",
			deps:       map[string]api.Pinger{"postgres": up, "redis": down},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "degraded",
			wantChecks: map[string]string{"postgres": "ok", "redis": "unreachable"},
		},
		{
			name:       "disabled backends are skipped",
			deps:       map[string]api.Pinger{"postgres": nil, "redis": nil},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
			wantChecks: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/health", api.NewHealthHandler(tt.deps).Check)

			rec := httptest.PerformRequest(t, router, http.MethodGet, "/health", nil, "")

			var body healthBody
			assert.Equal(t, tt.wantCode, rec.Code)
			_ = httptest.DecodeResponseBody(t, rec.Body, &body)
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, tt.wantChecks, body.Checks)
		})
	}
}
