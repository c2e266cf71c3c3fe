package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce-analytics/internal/models"
	"ecommerce-analytics/internal/repositories"
	"ecommerce-analytics/internal/services"
)

func setupTestApp(t *testing.T) (*repositories.MockKPIRepository, *services.DashboardService) {
	t.Helper()
	repo := repositories.NewMockKPIRepository(models.ProductKPI{
		ProductID:    1,
		ProductName:  "Laptop Pro 14",
		CategoryName: "Electrónica",
		OrderMonth:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		TotalRevenue: 1299.90,
	})
	service := services.NewDashboardService(repo, time.Minute)
	return repo, service
}

func TestHealthEndpoint(t *testing.T) {
	_, service := setupTestApp(t)
	app := NewApp(service, services.NewTokenService("", 0), "disabled")

	_, _ = service.Data(context.Background())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status   string               `json:"status"`
		RabbitMQ string               `json:"rabbitmq"`
		Cache    services.CacheStatus `json:"cache"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "disabled", body.RabbitMQ)
	assert.True(t, body.Cache.Loaded)
	assert.Equal(t, 1, body.Cache.Rows)
}

func TestMetricsEndpoint(t *testing.T) {
	_, service := setupTestApp(t)
	app := NewApp(service, services.NewTokenService("", 0), "disabled")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/kpis/filters", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Contains(t, string(body), "kpi_dashboard_http_requests_total")
	assert.Contains(t, string(body), "kpi_dashboard_dataset_loads_total")
}

func TestReloadIsGuardedWhenSecretIsSet(t *testing.T) {
	repo, service := setupTestApp(t)
	tokens := services.NewTokenService("s3cret", time.Hour)
	app := NewApp(service, tokens, "disabled")

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/kpis/reload", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, 0, repo.Calls())

	token, err := tokens.Issue("ops")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/kpis/reload", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, 1, repo.Calls())
}
