package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.SyncRuns.WithLabelValues("FULL", "SUCCESS").Inc()
	m.SyncItems.WithLabelValues("scanned").Add(10)
	m.Resolutions.WithLabelValues("resolve", "ok").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncRuns.WithLabelValues("FULL", "SUCCESS")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.SyncItems.WithLabelValues("scanned")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Resolutions.WithLabelValues("resolve", "invalid_state")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.DifferencesFound.WithLabelValues("HIGH").Add(3)

	app := fiber.New()
	m.Register(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `bom_reconciler_differences_found_total{severity="HIGH"} 3`)
}
