package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/hocus-focus/internal/domain/repository"
	"github.com/oksasatya/hocus-focus/pkg/helpers"
)

type stubResolver map[string]*repository.Session

func (s stubResolver) ResolveSession(_ context.Context, token string) (*repository.Session, error) {
	return s[token], nil
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "%s|%s|%s", c.GetString(CtxUserIDKey), c.GetString("real_ip"), c.GetString("request_id"))
	})
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuth(t *testing.T) {
	sessions := stubResolver{"good": {UserID: "user-1", SessionID: "s"}}
	r := newEngine(Auth(sessions))

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: helpers.SessionCookie, Value: "stale"})
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: helpers.SessionCookie, Value: "good"})
	rec = serve(r, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "user-1|")
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	r := newEngine(OptionalAuth(stubResolver{}))
	rec := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "||", rec.Body.String())
}

func TestRealIPPrefersProxyHeaders(t *testing.T) {
	r := newEngine(RealIP())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "|203.0.113.9|", serve(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "198.51.100.7")
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, "|198.51.100.7|", serve(r, req).Body.String())
}

func TestRequestIDReusesValidHeader(t *testing.T) {
	r := newEngine(RequestIDMiddleware())
	const id = "0b5f6d1e-8f7a-4d8e-9c2b-3a1f2e4d5c6b"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, id)
	rec := serve(r, req)
	assert.Equal(t, "||"+id, rec.Body.String())
	assert.Equal(t, id, rec.Header().Get(requestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "<script>")
	rec = serve(r, req)
	assert.NotEqual(t, "<script>", rec.Header().Get(requestIDHeader))
	assert.Len(t, rec.Header().Get(requestIDHeader), 36)
}

func TestRateLimitWithoutRedisIsPassThrough(t *testing.T) {
	r := newEngine(RateLimit(nil, 1, 0, KeyByIP(), nil))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	}
}

func TestAllowPrivateIP(t *testing.T) {
	allow := AllowPrivateIP()
	gin.SetMode(gin.TestMode)

	for ip, want := range map[string]bool{"127.0.0.1": true, "10.1.2.3": true, "8.8.8.8": false, "junk": false} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set("real_ip", ip)
		assert.Equal(t, want, allow(c), ip)
	}
}
