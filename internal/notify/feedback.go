package notify

import (
	"context"
	"time"

	apperrors "coordinator-portal-backend/internal/errors"
	"coordinator-portal-backend/internal/logger"
)

const (
	maxFeedbackBodyLength = 2000
	maxScreenshots        = 2
)

// Screenshot is one attached image, base64-encoded with its metadata.
type Screenshot struct {
	Name        string `json:"name" binding:"required" validate:"required"`
	ContentType string `json:"content_type" binding:"required" validate:"required"`
	Size        int64  `json:"size" binding:"omitempty,min=0" validate:"omitempty,min=0"`
	Data        string `json:"data" binding:"required" validate:"required"`
}

// FeedbackRequest is the user-facing feedback submission. The tags are
// duplicated so the request validates identically whether it arrives
// through gin binding or straight into the service.
type FeedbackRequest struct {
	Subject     string       `json:"subject" binding:"required,max=200" validate:"required,max=200"`
	Body        string       `json:"body" binding:"required" validate:"required"`
	Category    string       `json:"category" binding:"required,oneof=bug idea question other" validate:"required,oneof=bug idea question other"`
	Priority    string       `json:"priority" binding:"omitempty,oneof=low medium high" validate:"omitempty,oneof=low medium high"`
	Screenshots []Screenshot `json:"screenshots" binding:"omitempty,max=2,dive" validate:"omitempty,max=2,dive"`
}

// feedbackPayload is the flow-facing shape of a feedback submission.
type feedbackPayload struct {
	Subject     string       `json:"subject"`
	Body        string       `json:"body"`
	Category    string       `json:"category"`
	Priority    string       `json:"priority"`
	Screenshots []Screenshot `json:"screenshots,omitempty"`
	Email       string       `json:"email"`
	SubmittedAt string       `json:"submitted_at"`
}

// SubmitFeedback validates and forwards one feedback entry to the feedback
// flow, stamped with the submitting coordinator and time.
func (s *Service) SubmitFeedback(ctx context.Context, email string, req FeedbackRequest) error {
	if s.cfg.FeedbackFlowURL == "" {
		return apperrors.ErrFeedbackConfigMissing
	}
	if err := s.validate.Struct(req); err != nil {
		return apperrors.NewValidationError("feedback", err.Error())
	}
	if len(req.Body) > maxFeedbackBodyLength {
		return apperrors.NewValidationError("body", "exceeds maximum length")
	}
	if len(req.Screenshots) > maxScreenshots {
		return apperrors.NewValidationError("screenshots", "at most two screenshots are allowed")
	}

	log := logger.WithContext(ctx).WithField("category", req.Category)

	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}
	payload := feedbackPayload{
		Subject:     req.Subject,
		Body:        req.Body,
		Category:    req.Category,
		Priority:    priority,
		Screenshots: req.Screenshots,
		Email:       email,
		SubmittedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.post(ctx, s.cfg.FeedbackFlowURL, payload); err != nil {
		log.Errorf("Feedback submission failed: %v", err)
		return err
	}
	log.Infof("Feedback forwarded")
	return nil
}
