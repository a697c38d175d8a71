package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/server"
	"storefront/pkg/logger"
	"storefront/pkg/upload"
)

func newApp(t *testing.T, store *repositories.Store, limit middleware.RateLimitConfig) *fiber.App {
	t.Helper()

	uploads, err := upload.NewStore(t.TempDir(), 2*1024*1024)
	require.NoError(t, err)

	return server.New(server.Deps{
		Store:     store,
		Uploads:   uploads,
		Metrics:   metrics.New(),
		Log:       logger.Discard(),
		RateLimit: limit,
	})
}

func get(t *testing.T, app *fiber.App, path string) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestRoot(t *testing.T) {
	app := newApp(t, repositories.NewMemoryStore(), middleware.RateLimitConfig{Max: 100, Window: time.Minute})

	resp, body := get(t, app, "/")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Welcome to the server!", body)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
	assert.Equal(t, "nosniff", resp.Header.Get(fiber.HeaderXContentTypeOptions))
}

func TestHealth(t *testing.T) {
	dsn := "file:" + uuid.New().String() + "?mode=memory&cache=shared"
	db, err := repositories.OpenSQLite(dsn, logger.Discard())
	require.NoError(t, err)
	store, err := repositories.NewGORMStore(db)
	require.NoError(t, err)

	app := newApp(t, store, middleware.RateLimitConfig{Max: 100, Window: time.Minute})

	resp, body := get(t, app, "/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &health))
	assert.Equal(t, "healthy", health["status"])

	require.NoError(t, store.Close(context.Background()))

	resp, body = get(t, app, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body, `"status":"unhealthy"`)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newApp(t, repositories.NewMemoryStore(), middleware.RateLimitConfig{Max: 100, Window: time.Minute})

	get(t, app, "/products")
	resp, body := get(t, app, "/metrics")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `storefront_http_requests_total{method="GET",route="/products",status="200"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestUnknownRoute(t *testing.T) {
	app := newApp(t, repositories.NewMemoryStore(), middleware.RateLimitConfig{Max: 100, Window: time.Minute})

	resp, _ := get(t, app, "/orders")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRateLimit(t *testing.T) {
	app := newApp(t, repositories.NewMemoryStore(), middleware.RateLimitConfig{Max: 10, Window: 2 * time.Second})

	for i := 0; i < 10; i++ {
		resp, _ := get(t, app, "/products")
		require.Equal(t, http.StatusOK, resp.StatusCode, "request %d", i+1)
	}

	// the budget is shared by every route
	resp, body := get(t, app, "/")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, middleware.RateLimitMessage, body)

	resp, _ = get(t, app, "/products")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	time.Sleep(3 * time.Second)

	resp, _ = get(t, app, "/products")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
