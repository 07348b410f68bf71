package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessLogWritesOneLinePerRequest(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	r := newEngine(RequestIDMiddleware(), RealIP(), Metrics(), AccessLog(logger))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "203.0.113.7")
	rec := serve(r, req)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "http request", entry.Message)
	assert.Equal(t, http.MethodGet, entry.Data["method"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
	assert.Equal(t, "203.0.113.7", entry.Data["ip"])
	assert.Equal(t, rec.Header().Get(requestIDHeader), entry.Data["request_id"])
}

func TestMetricsHandlesUnmatchedRoutes(t *testing.T) {
	r := newEngine(Metrics())
	rec := serve(r, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
