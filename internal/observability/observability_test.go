package observability

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/resolvehub/issue-desk/internal/config"
)

func TestMetrics_RecordsAndExposes(t *testing.T) {
	m := NewMetrics("resolvehub")

	m.RecordRequest("/issues", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/issues", "GET", 200, 20*time.Millisecond)
	m.RecordError("/issues", "POST", "VALIDATION_FAILED")
	m.RecordIssueEvent("issue_created")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/issues", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("POST", "/issues", "VALIDATION_FAILED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.issueEvents.WithLabelValues("issue_created")))

	app := fiber.New()
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "resolvehub_issue_events_total")
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "X")
		m.RecordIssueEvent("x")
	})
}

func TestRequestLogger_LogsFinalStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := NewMetrics("test")

	app := fiber.New()
	app.Use(RequestLogger(zap.New(core), m))
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusTeapot)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/teapot", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(fiber.StatusTeapot), entries[0].ContextMap()["status"])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/teapot", "418")))
}

func TestNewLogger_FallsBackToInfo(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "chatty"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}
