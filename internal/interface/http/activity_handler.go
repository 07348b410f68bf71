package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hocus-focus/internal/application"
	"github.com/oksasatya/hocus-focus/internal/domain/entity"
	"github.com/oksasatya/hocus-focus/internal/interface/middleware"
	"github.com/oksasatya/hocus-focus/pkg/response"
)

type ActivityHandler struct {
	Svc        *application.ActivityService
	Membership *application.MembershipService
	Logger     *logrus.Logger
}

func NewActivityHandler(svc *application.ActivityService, membership *application.MembershipService, logger *logrus.Logger) *ActivityHandler {
	return &ActivityHandler{Svc: svc, Membership: membership, Logger: logger}
}

type listQuery struct {
	Category string `form:"category"`
	Status   string `form:"status" binding:"omitempty,activitystatus"`
	Creator  string `form:"creator"`
	Date     string `form:"date" binding:"omitempty,ymd"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required,activitystatus"`
}

type detailView struct {
	Activity     *entity.Activity            `json:"activity"`
	Creator      *userView                   `json:"creator"`
	Participants []userView                  `json:"participants"`
	Membership   application.MembershipState `json:"membership"`
}

// List GET /api/activities
func (h *ActivityHandler) List(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	list, err := h.Svc.List(c.Request.Context(), application.ActivityFilter{
		Category:  q.Category,
		Status:    entity.ActivityStatus(q.Status),
		CreatorID: q.Creator,
		Date:      q.Date,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, nonNil(list), "activities", map[string]any{"count": len(list)})
}

// Categories GET /api/activities/categories
func (h *ActivityHandler) Categories(c *gin.Context) {
	groups, err := h.Svc.GroupByCategory(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toCategoryViews(groups), "activities by category", nil)
}

// Get GET /api/activities/:id
func (h *ActivityHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	d, err := h.Svc.Detail(ctx, c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	state, err := h.Membership.View(ctx, c.GetString(middleware.CtxUserIDKey), d.Activity.ID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, detailView{
		Activity:     d.Activity,
		Creator:      toUserView(d.Creator),
		Participants: toUserViews(d.Participants),
		Membership:   state,
	}, "activity", nil)
}

// Create POST /api/activities
func (h *ActivityHandler) Create(c *gin.Context) {
	var req application.CreateActivityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	a, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), req)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, a, "activity created", nil)
}

// UpdateStatus PUT /api/activities/:id/status
func (h *ActivityHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	a, err := h.Svc.UpdateStatus(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id"), entity.ActivityStatus(req.Status))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, a, "status updated", nil)
}

// Delete DELETE /api/activities/:id
func (h *ActivityHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "activity deleted", nil)
}
