package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/hocus-focus/internal/interface/http"
)

// UserModule serves public profile pages: GET /api/users/:id
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.GET("/users/:id", m.Handler.Profile)
}
