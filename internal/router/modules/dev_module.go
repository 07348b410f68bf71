package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/hocus-focus/internal/interface/http"
	"github.com/oksasatya/hocus-focus/internal/interface/middleware"
)

// DevModule exposes demo-data controls under /api/dev. Register it only when
// dev routes are enabled.
type DevModule struct {
	Handler *handlers.DevHandler
	Redis   redis.UniversalClient
}

func NewDevModule(h *handlers.DevHandler, rdb redis.UniversalClient) *DevModule {
	return &DevModule{Handler: h, Redis: rdb}
}

func (m *DevModule) Register(rg *gin.RouterGroup) {
	dev := rg.Group("/dev")
	dev.Use(middleware.RateLimit(m.Redis, 30, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()))
	{
		dev.GET("/stats", m.Handler.Stats)
		dev.POST("/seed", m.Handler.Seed)
		dev.POST("/reset", m.Handler.Reset)
		dev.DELETE("/data", m.Handler.Clear)
	}
}
