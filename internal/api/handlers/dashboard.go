package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coordinator-portal-backend/internal/dashboard"
)

// DashboardHandler handles the summary endpoint
type DashboardHandler struct {
	service dashboard.ServiceInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service dashboard.ServiceInterface) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary handles GET /api/v1/dashboard/summary
// @Summary Dashboard summary
// @Description Get the coordinator's headline statistics and recent activity
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dashboard.Summary
// @Failure 401 {object} ErrorResponse "Missing or invalid session"
// @Failure 502 {object} ErrorResponse "Upstream data unavailable"
// @Router /api/v1/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	email, ok := requireEmail(c)
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
