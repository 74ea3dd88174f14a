package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(1, 2, zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/ping").Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/ping").Code)

	w := serve(r, http.MethodGet, "/ping")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestLimiterStoreEvictsIdleClients(t *testing.T) {
	clock := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	store := newLimiterStore(time.Second, 5)
	store.now = func() time.Time { return clock }

	a := store.get("10.0.0.1")
	store.get("10.0.0.2")
	require.Len(t, store.clients, 2)

	clock = clock.Add(limiterIdleTTL / 2)
	assert.Same(t, a, store.get("10.0.0.1"), "an active client keeps its bucket")

	clock = clock.Add(limiterIdleTTL/2 + time.Second)
	store.get("10.0.0.3")
	assert.Len(t, store.clients, 2)
	assert.NotContains(t, store.clients, "10.0.0.2")
	assert.Contains(t, store.clients, "10.0.0.1")

	clock = clock.Add(2 * limiterIdleTTL)
	store.get("10.0.0.4")
	assert.Len(t, store.clients, 1)
}

func TestLimiterStoreKeepsBucketsUntilRefilled(t *testing.T) {
	// One token per minute with a burst of 30 takes half an hour to refill.
	store := newLimiterStore(time.Minute, 30)
	assert.Equal(t, 30*time.Minute, store.idle)
}

func TestRateLimitDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(0, 0, zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 50; i++ {
		require.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/ping").Code)
	}
}

func TestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Timeout(time.Minute))

	var deadline time.Time
	var hasDeadline bool
	r.GET("/ping", func(c *gin.Context) {
		deadline, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusNoContent)
	})

	serve(r, http.MethodGet, "/ping")
	require.True(t, hasDeadline)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)

	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/varas/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, http.MethodGet, "/varas/123")
	serve(r, http.MethodGet, "/ok")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/varas/:id", fields["path"])
	assert.Equal(t, int64(http.StatusNotFound), fields["status"])

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
}
