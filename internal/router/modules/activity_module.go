package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/hocus-focus/internal/interface/http"
	"github.com/oksasatya/hocus-focus/internal/interface/middleware"
)

// ActivityModule wires activity browsing and membership routes. Reads are
// open to anonymous visitors; writes need a session.
type ActivityModule struct {
	Activities *handlers.ActivityHandler
	Membership *handlers.MembershipHandler
	Sessions   middleware.SessionResolver
	Redis      redis.UniversalClient
}

func NewActivityModule(a *handlers.ActivityHandler, mh *handlers.MembershipHandler, sessions middleware.SessionResolver, rdb redis.UniversalClient) *ActivityModule {
	return &ActivityModule{Activities: a, Membership: mh, Sessions: sessions, Redis: rdb}
}

func (m *ActivityModule) Register(rg *gin.RouterGroup) {
	public := rg.Group("/activities")
	public.Use(middleware.OptionalAuth(m.Sessions))
	{
		public.GET("", m.Activities.List)
		public.GET("/categories", m.Activities.Categories)
		public.GET("/:id", m.Activities.Get)
		public.GET("/:id/membership", m.Membership.View)
	}

	auth := rg.Group("/activities")
	auth.Use(
		middleware.Auth(m.Sessions),
		middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.POST("", m.Activities.Create)
		auth.PUT("/:id/status", m.Activities.UpdateStatus)
		auth.DELETE("/:id", m.Activities.Delete)
		auth.POST("/:id/join", m.Membership.Join)
		auth.DELETE("/:id/join", m.Membership.Leave)
		auth.POST("/:id/toggle", m.Membership.Toggle)
	}
}
