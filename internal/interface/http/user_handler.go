package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hocus-focus/internal/application"
	"github.com/oksasatya/hocus-focus/internal/domain/entity"
	"github.com/oksasatya/hocus-focus/pkg/response"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type profileView struct {
	User    *userView         `json:"user"`
	Created []entity.Activity `json:"created"`
	Joined  []entity.Activity `json:"joined"`
}

// Profile GET /api/users/:id
func (h *UserHandler) Profile(c *gin.Context) {
	p, err := h.Svc.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, profileView{
		User:    toUserView(p.User),
		Created: nonNil(p.Created),
		Joined:  nonNil(p.Joined),
	}, "profile", nil)
}
