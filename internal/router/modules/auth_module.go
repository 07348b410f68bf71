package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/hocus-focus/internal/interface/http"
	"github.com/oksasatya/hocus-focus/internal/interface/middleware"
)

// AuthModule wires signup, login and the session routes.
// Public: POST /api/signup, POST /api/login
// Protected: POST /api/logout, GET /api/me
type AuthModule struct {
	Handler  *handlers.AuthHandler
	Sessions middleware.SessionResolver
	Redis    redis.UniversalClient
}

func NewAuthModule(h *handlers.AuthHandler, sessions middleware.SessionResolver, rdb redis.UniversalClient) *AuthModule {
	return &AuthModule{Handler: h, Sessions: sessions, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	signupLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Sessions))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/me", m.Handler.Me)
	}
}
