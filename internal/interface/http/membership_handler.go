package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hocus-focus/internal/application"
	"github.com/oksasatya/hocus-focus/internal/interface/middleware"
	"github.com/oksasatya/hocus-focus/pkg/response"
)

type MembershipHandler struct {
	Svc    *application.MembershipService
	Logger *logrus.Logger
}

func NewMembershipHandler(svc *application.MembershipService, logger *logrus.Logger) *MembershipHandler {
	return &MembershipHandler{Svc: svc, Logger: logger}
}

type membershipView struct {
	ActivityID string                      `json:"activityId"`
	State      application.MembershipState `json:"state"`
}

type toggleView struct {
	ActivityID   string                      `json:"activityId"`
	State        application.MembershipState `json:"state"`
	Participants []userView                  `json:"participants"`
}

// View GET /api/activities/:id/membership
func (h *MembershipHandler) View(c *gin.Context) {
	id := c.Param("id")
	state, err := h.Svc.View(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, membershipView{ActivityID: id, State: state}, "membership", nil)
}

// Join POST /api/activities/:id/join
func (h *MembershipHandler) Join(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Join(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), id); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, membershipView{ActivityID: id, State: application.StateMember}, "joined", nil)
}

// Leave DELETE /api/activities/:id/join
func (h *MembershipHandler) Leave(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Leave(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), id); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, membershipView{ActivityID: id, State: application.StateNotMember}, "left", nil)
}

// Toggle POST /api/activities/:id/toggle
func (h *MembershipHandler) Toggle(c *gin.Context) {
	id := c.Param("id")
	res, err := h.Svc.Toggle(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toggleView{
		ActivityID:   id,
		State:        res.State,
		Participants: toUserViews(res.Participants),
	}, "membership updated", nil)
}
