package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coordinator-portal-backend/internal/notify"
)

// FeedbackHandler handles feedback submissions
type FeedbackHandler struct {
	notify *notify.Service
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(notifier *notify.Service) *FeedbackHandler {
	return &FeedbackHandler{notify: notifier}
}

// Submit handles POST /api/v1/feedback
// @Summary Submit feedback
// @Description Forward user feedback to the feedback flow, stamped with the coordinator and time
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body notify.FeedbackRequest true "Feedback"
// @Success 202 {object} map[string]string "Feedback accepted"
// @Failure 400 {object} ErrorResponse "Invalid feedback payload"
// @Failure 401 {object} ErrorResponse "Missing or invalid session"
// @Failure 502 {object} ErrorResponse "Feedback flow unavailable"
// @Router /api/v1/feedback [post]
func (h *FeedbackHandler) Submit(c *gin.Context) {
	email, ok := requireEmail(c)
	if !ok {
		return
	}

	var req notify.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.notify.SubmitFeedback(c.Request.Context(), email, req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Feedback accepted"})
}
