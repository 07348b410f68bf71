package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oksasatya/hocus-focus/internal/application"
	"github.com/oksasatya/hocus-focus/internal/container"
	handlers "github.com/oksasatya/hocus-focus/internal/interface/http"
	"github.com/oksasatya/hocus-focus/internal/router/modules"
)

type Services struct {
	Users      *application.UserService
	Activities *application.ActivityService
	Membership *application.MembershipService
}

func buildServices() Services {
	cfg := container.GetConfig()
	st := container.GetStore()
	logger := container.GetLogger()
	return Services{
		Users: application.NewUserService(st.Users, st.Activities, st.Participants,
			container.GetSessions(), container.GetJWT(), cfg.SessionTTL, logger),
		Activities: application.NewActivityService(st.Users, st.Activities, st.Participants, logger),
		Membership: application.NewMembershipService(st.Users, st.Activities, st.Participants, container.GetEvents(), logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	rdb := container.GetRedis()
	svc := buildServices()

	r.Add(modules.NewAuthModule(
		handlers.NewAuthHandler(svc.Users, logger, cfg.CookieDomain, cfg.CookieSecure),
		svc.Users, rdb,
	))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, logger)))
	r.Add(modules.NewActivityModule(
		handlers.NewActivityHandler(svc.Activities, svc.Membership, logger),
		handlers.NewMembershipHandler(svc.Membership, logger),
		svc.Users, rdb,
	))
	if cfg.DevRoutesEnabled {
		r.Add(modules.NewDevModule(handlers.NewDevHandler(container.GetStore(), logger), rdb))
	}
	if cfg.MetricsEnabled {
		r.Engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}
