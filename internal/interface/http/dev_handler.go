package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hocus-focus/internal/infrastructure/store"
	"github.com/oksasatya/hocus-focus/pkg/response"
)

// DevHandler exposes the demo-data controls. Only routed when dev routes are
// enabled.
type DevHandler struct {
	Store  *store.Store
	Logger *logrus.Logger
}

func NewDevHandler(s *store.Store, logger *logrus.Logger) *DevHandler {
	return &DevHandler{Store: s, Logger: logger}
}

func (h *DevHandler) respondStats(c *gin.Context, message string) {
	st, err := h.Store.Stats(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, st, message, nil)
}

// Stats GET /api/dev/stats
func (h *DevHandler) Stats(c *gin.Context) {
	h.respondStats(c, "stats")
}

// Seed POST /api/dev/seed
func (h *DevHandler) Seed(c *gin.Context) {
	if err := h.Store.SeedAll(c.Request.Context()); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.respondStats(c, "seeded")
}

// Reset POST /api/dev/reset
func (h *DevHandler) Reset(c *gin.Context) {
	if err := h.Store.ResetAll(c.Request.Context()); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.respondStats(c, "reset to demo data")
}

// Clear DELETE /api/dev/data
func (h *DevHandler) Clear(c *gin.Context) {
	if err := h.Store.ClearAll(c.Request.Context()); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.respondStats(c, "cleared")
}
