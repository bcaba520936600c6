package kobo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"coordinator-portal-backend/internal/config"
	apperrors "coordinator-portal-backend/internal/errors"
)

// Client fetches form data and form definitions from the form-collection
// service. It is the only component that talks to the upstream; everything
// downstream works on the snapshots it returns.
type Client struct {
	cfg        *config.Config
	httpClient *retryablehttp.Client
}

// NewClient creates a new form-collection client
func NewClient(cfg *config.Config) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = log.New(io.Discard, "", 0)
	retryClient.RetryMax = cfg.KoboRetryMax
	retryClient.HTTPClient.Timeout = 30 * time.Second

	return &Client{
		cfg:        cfg,
		httpClient: retryClient,
	}
}

// dataResponse is the envelope of the form-data endpoint.
type dataResponse struct {
	Count   int      `json:"count"`
	Results []Record `json:"results"`
}

// FetchSubmissions returns all submission records of one form.
func (c *Client) FetchSubmissions(ctx context.Context, formID string) ([]Record, error) {
	body, err := c.get(ctx, formID, fmt.Sprintf("%s/assets/%s/data.json", c.cfg.KoboBaseURL, formID))
	if err != nil {
		return nil, err
	}

	var parsed dataResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode form %s data: %w", formID, err)
	}
	if parsed.Results == nil {
		return []Record{}, nil
	}
	return parsed.Results, nil
}

// FetchFormDefinition returns the question schema of one form.
func (c *Client) FetchFormDefinition(ctx context.Context, formID string) ([]Question, error) {
	body, err := c.get(ctx, formID, fmt.Sprintf("%s/assets/%s.json", c.cfg.KoboBaseURL, formID))
	if err != nil {
		return nil, err
	}
	return parseFormDefinition(body), nil
}

func (c *Client) get(ctx context.Context, formID, url string) ([]byte, error) {
	if c.cfg.KoboBaseURL == "" {
		return nil, apperrors.ErrKoboConfigMissing
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for form %s: %w", formID, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.KoboAPIToken != "" {
		req.Header.Set("Authorization", "Token "+c.cfg.KoboAPIToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError(formID, 0, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewUpstreamError(formID, resp.StatusCode, err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewUpstreamError(formID, resp.StatusCode, string(body))
	}

	return body, nil
}
