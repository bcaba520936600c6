package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-retryablehttp"

	"coordinator-portal-backend/internal/config"
	apperrors "coordinator-portal-backend/internal/errors"
	"coordinator-portal-backend/internal/logger"
)

// Service sends outbound notifications: the stop-evaluation flow and user
// feedback. Both go to externally hosted automation flows over plain JSON
// POSTs.
type Service struct {
	cfg        *config.Config
	httpClient *retryablehttp.Client
	validate   *validator.Validate
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = log.New(io.Discard, "", 0)
	retryClient.RetryMax = 2
	retryClient.HTTPClient.Timeout = 30 * time.Second

	return &Service{cfg: cfg, httpClient: retryClient, validate: validator.New()}
}

// StopRequest describes the tool whose evaluation is being closed.
type StopRequest struct {
	ToolID      string
	ToolName    string
	Maturity    string
	Coordinator string
}

// scoringPayload triggers score calculation for a stopped evaluation.
type scoringPayload struct {
	ToolID     string `json:"tool_id"`
	ToolName   string `json:"tool_name"`
	CalcMethod string `json:"calc_method"`
	StoppedAt  string `json:"stopped_at"`
	StoppedBy  string `json:"stopped_by"`
}

// stopNotificationPayload announces the stop to the follow-up flow.
type stopNotificationPayload struct {
	ToolID     string `json:"tool_id"`
	ToolName   string `json:"tool_name"`
	Maturity   string `json:"maturity"`
	StoppedAt  string `json:"stopped_at"`
	ReportLink string `json:"report_link"`
}

// StopEvaluation runs the two-step stop flow: trigger score calculation
// immediately, then announce the stop to the notification flow after a
// grace delay so the scoring run has time to finish. The second step runs
// detached from the request; its failure is logged but never rolls back
// the first.
func (s *Service) StopEvaluation(ctx context.Context, req StopRequest) error {
	if s.cfg.ScoringTriggerURL == "" {
		return apperrors.ErrScoringConfigMissing
	}

	log := logger.WithContext(ctx).WithFields(map[string]interface{}{
		"toolId":   req.ToolID,
		"maturity": req.Maturity,
	})

	stoppedAt := time.Now().UTC().Format(time.RFC3339)
	payload := scoringPayload{
		ToolID:     req.ToolID,
		ToolName:   req.ToolName,
		CalcMethod: calcMethod(req.Maturity),
		StoppedAt:  stoppedAt,
		StoppedBy:  req.Coordinator,
	}
	if err := s.post(ctx, s.cfg.ScoringTriggerURL, payload); err != nil {
		log.Errorf("Scoring trigger failed: %v", err)
		return err
	}
	log.Infof("Scoring triggered, notification follows in %s", s.cfg.StopNotifyDelay)

	go s.sendStopNotification(req, stoppedAt)
	return nil
}

func (s *Service) sendStopNotification(req StopRequest, stoppedAt string) {
	time.Sleep(s.cfg.StopNotifyDelay)

	log := logger.New().WithField("toolId", req.ToolID)
	if s.cfg.NotifyFlowURL == "" {
		log.Warnf("Stop notification skipped: flow URL not configured")
		return
	}

	payload := stopNotificationPayload{
		ToolID:     req.ToolID,
		ToolName:   req.ToolName,
		Maturity:   req.Maturity,
		StoppedAt:  stoppedAt,
		ReportLink: fmt.Sprintf("%s/%s", s.cfg.ReportBaseURL, req.ToolID),
	}
	if err := s.post(context.Background(), s.cfg.NotifyFlowURL, payload); err != nil {
		log.Errorf("Stop notification failed: %v", err)
		return
	}
	log.Infof("Stop notification sent")
}

// calcMethod maps the maturity variant to the label the scoring flow
// expects.
func calcMethod(maturity string) string {
	if maturity == "early" {
		return "Early Stage"
	}
	return "Advanced Stage"
}

func (s *Service) post(ctx context.Context, url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return apperrors.NewUpstreamError(url, 0, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return apperrors.NewUpstreamError(url, resp.StatusCode, string(respBody))
	}
	return nil
}
