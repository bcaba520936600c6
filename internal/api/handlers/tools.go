package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"coordinator-portal-backend/internal/dashboard"
	apperrors "coordinator-portal-backend/internal/errors"
	"coordinator-portal-backend/internal/notify"
	"coordinator-portal-backend/internal/table"
)

// ToolsHandler handles the tool list, detail, responses and stop endpoints
type ToolsHandler struct {
	service dashboard.ServiceInterface
	notify  *notify.Service
}

// NewToolsHandler creates a new tools handler
func NewToolsHandler(service dashboard.ServiceInterface, notifier *notify.Service) *ToolsHandler {
	return &ToolsHandler{service: service, notify: notifier}
}

// List handles GET /api/v1/tools
// @Summary List tools
// @Description List the coordinator's tools with status and response counts
// @Tags tools
// @Produce json
// @Security BearerAuth
// @Param q query string false "Free-text search over id, name and coordinator"
// @Param page query int false "Page number, 1-indexed"
// @Success 200 {object} dashboard.ToolList
// @Failure 400 {object} ErrorResponse "Invalid pagination parameters"
// @Failure 401 {object} ErrorResponse "Missing or invalid session"
// @Failure 502 {object} ErrorResponse "Upstream data unavailable"
// @Router /api/v1/tools [get]
func (h *ToolsHandler) List(c *gin.Context) {
	email, ok := requireEmail(c)
	if !ok {
		return
	}

	page, err := parsePage(c.DefaultQuery("page", "1"))
	if err != nil {
		respondError(c, err)
		return
	}

	list, err := h.service.Tools(c.Request.Context(), email, c.Query("q"), page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Detail handles GET /api/v1/tools/:id
// @Summary Tool detail
// @Description Get one of the coordinator's tools with appointment and submission timing
// @Tags tools
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tool id"
// @Success 200 {object} dashboard.ToolDetail
// @Failure 401 {object} ErrorResponse "Missing or invalid session"
// @Failure 404 {object} ErrorResponse "Tool not found"
// @Failure 502 {object} ErrorResponse "Upstream data unavailable"
// @Router /api/v1/tools/{id} [get]
func (h *ToolsHandler) Detail(c *gin.Context) {
	email, ok := requireEmail(c)
	if !ok {
		return
	}

	detail, err := h.service.ToolDetail(c.Request.Context(), email, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Responses handles GET /api/v1/tools/:id/responses
// @Summary Tool responses
// @Description Get the tabular view of one evaluation form's submissions for a tool
// @Tags tools
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tool id"
// @Param form query string true "Submission category (ut3 or ut4)"
// @Param q query string false "Free-text search over displayed cells"
// @Param sort query string false "Column key to sort by"
// @Param dir query string false "Sort direction (asc or desc)"
// @Param page query int false "Page number, 1-indexed"
// @Param start query string false "Start date filter (YYYY-MM-DD)"
// @Param end query string false "End date filter (YYYY-MM-DD)"
// @Success 200 {object} table.View
// @Failure 400 {object} ErrorResponse "Unknown category or invalid parameters"
// @Failure 401 {object} ErrorResponse "Missing or invalid session"
// @Failure 404 {object} ErrorResponse "Tool not found"
// @Failure 502 {object} ErrorResponse "Upstream data unavailable"
// @Router /api/v1/tools/{id}/responses [get]
func (h *ToolsHandler) Responses(c *gin.Context) {
	email, ok := requireEmail(c)
	if !ok {
		return
	}

	page, err := parsePage(c.DefaultQuery("page", "1"))
	if err != nil {
		respondError(c, err)
		return
	}

	query := table.Query{
		Search:     c.Query("q"),
		SortColumn: c.Query("sort"),
		SortDesc:   c.Query("dir") == "desc",
		Page:       page,
		DateStart:  c.Query("start"),
		DateEnd:    c.Query("end"),
	}

	view, err := h.service.Responses(c.Request.Context(), email, c.Param("id"), c.Query("form"), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Stop handles POST /api/v1/tools/:id/stop
// @Summary Stop evaluation
// @Description Close a tool's evaluation: trigger score calculation and schedule the follow-up notification
// @Tags tools
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tool id"
// @Success 202 {object} map[string]string "Stop flow started"
// @Failure 401 {object} ErrorResponse "Missing or invalid session"
// @Failure 404 {object} ErrorResponse "Tool not found"
// @Failure 502 {object} ErrorResponse "Scoring trigger unavailable"
// @Router /api/v1/tools/{id}/stop [post]
func (h *ToolsHandler) Stop(c *gin.Context) {
	email, ok := requireEmail(c)
	if !ok {
		return
	}

	detail, err := h.service.ToolDetail(c.Request.Context(), email, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	err = h.notify.StopEvaluation(c.Request.Context(), notify.StopRequest{
		ToolID:      detail.ID,
		ToolName:    detail.Name,
		Maturity:    detail.Maturity,
		Coordinator: email,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Evaluation stop started"})
}

func parsePage(raw string) (int, error) {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, apperrors.ErrInvalidPaginationParams
	}
	return page, nil
}
