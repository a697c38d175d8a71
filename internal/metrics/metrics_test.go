package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersAreExposed(t *testing.T) {
	m := New()
	m.Registrations.WithLabelValues("created").Inc()
	m.Logins.WithLabelValues("invalid").Add(2)
	m.Products.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Registrations.WithLabelValues("created")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Logins.WithLabelValues("invalid")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `storefront_registrations_total{result="created"} 1`)
	assert.Contains(t, string(body), "storefront_products_created_total 1")
}

func TestNewUsesPrivateRegistry(t *testing.T) {
	// two instances must not collide on registration
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
