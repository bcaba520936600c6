package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "coordinator-portal-backend/internal/errors"
	"coordinator-portal-backend/internal/testutils"
)

// capture collects JSON bodies posted to a test endpoint.
type capture struct {
	mu     sync.Mutex
	bodies []map[string]interface{}
}

func (c *capture) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		c.mu.Lock()
		c.bodies = append(c.bodies, body)
		c.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}
}

func (c *capture) wait(t *testing.T, n int) []map[string]interface{} {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		got := len(c.bodies)
		c.mu.Unlock()
		if got >= n {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	require.GreaterOrEqual(t, len(c.bodies), n)
	return append([]map[string]interface{}(nil), c.bodies...)
}

func TestStopEvaluationTriggersScoringThenNotifies(t *testing.T) {
	scoring := &capture{}
	scoringServer := httptest.NewServer(scoring.handler())
	defer scoringServer.Close()

	flow := &capture{}
	flowServer := httptest.NewServer(flow.handler())
	defer flowServer.Close()

	cfg := testutils.TestConfig()
	cfg.ScoringTriggerURL = scoringServer.URL
	cfg.NotifyFlowURL = flowServer.URL

	svc := NewService(cfg)
	err := svc.StopEvaluation(context.Background(), StopRequest{
		ToolID:      "T-001",
		ToolName:    "Maize Sheller",
		Maturity:    "early",
		Coordinator: "b@x.com",
	})
	require.NoError(t, err)

	scoringBodies := scoring.wait(t, 1)
	assert.Equal(t, "T-001", scoringBodies[0]["tool_id"])
	assert.Equal(t, "Early Stage", scoringBodies[0]["calc_method"])
	assert.Equal(t, "b@x.com", scoringBodies[0]["stopped_by"])

	flowBodies := flow.wait(t, 1)
	assert.Equal(t, "T-001", flowBodies[0]["tool_id"])
	assert.Equal(t, "early", flowBodies[0]["maturity"])
	assert.Equal(t, "https://reports.test/T-001", flowBodies[0]["report_link"])
}

func TestStopEvaluationAdvancedCalcMethod(t *testing.T) {
	scoring := &capture{}
	scoringServer := httptest.NewServer(scoring.handler())
	defer scoringServer.Close()

	cfg := testutils.TestConfig()
	cfg.ScoringTriggerURL = scoringServer.URL

	svc := NewService(cfg)
	err := svc.StopEvaluation(context.Background(), StopRequest{ToolID: "T-002", Maturity: "advanced"})
	require.NoError(t, err)

	bodies := scoring.wait(t, 1)
	assert.Equal(t, "Advanced Stage", bodies[0]["calc_method"])
}

func TestStopEvaluationScoringFailureSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	cfg := testutils.TestConfig()
	cfg.ScoringTriggerURL = server.URL

	svc := NewService(cfg)
	err := svc.StopEvaluation(context.Background(), StopRequest{ToolID: "T-001", Maturity: "early"})

	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
}

func TestStopEvaluationUnconfigured(t *testing.T) {
	svc := NewService(testutils.TestConfig())

	err := svc.StopEvaluation(context.Background(), StopRequest{ToolID: "T-001"})

	assert.ErrorIs(t, err, apperrors.ErrScoringConfigMissing)
}

func TestSubmitFeedback(t *testing.T) {
	flow := &capture{}
	server := httptest.NewServer(flow.handler())
	defer server.Close()

	cfg := testutils.TestConfig()
	cfg.FeedbackFlowURL = server.URL

	svc := NewService(cfg)
	err := svc.SubmitFeedback(context.Background(), "b@x.com", FeedbackRequest{
		Subject:  "Table sorting",
		Body:     "Sorting resets when changing pages",
		Category: "bug",
		Screenshots: []Screenshot{
			{Name: "before.png", ContentType: "image/png", Size: 3, Data: "aGk="},
		},
	})
	require.NoError(t, err)

	bodies := flow.wait(t, 1)
	assert.Equal(t, "Table sorting", bodies[0]["subject"])
	assert.Equal(t, "bug", bodies[0]["category"])
	assert.Equal(t, "medium", bodies[0]["priority"], "priority defaults when omitted")
	assert.Equal(t, "b@x.com", bodies[0]["email"])
	assert.NotEmpty(t, bodies[0]["submitted_at"])

	shots, ok := bodies[0]["screenshots"].([]interface{})
	require.True(t, ok)
	require.Len(t, shots, 1)
	shot := shots[0].(map[string]interface{})
	assert.Equal(t, "before.png", shot["name"])
	assert.Equal(t, "image/png", shot["content_type"])
}

func TestSubmitFeedbackValidation(t *testing.T) {
	cfg := testutils.TestConfig()
	cfg.FeedbackFlowURL = "http://unused.test"
	svc := NewService(cfg)

	t.Run("body too long", func(t *testing.T) {
		long := make([]byte, maxFeedbackBodyLength+1)
		for i := range long {
			long[i] = 'a'
		}
		err := svc.SubmitFeedback(context.Background(), "b@x.com", FeedbackRequest{
			Subject:  "s",
			Body:     string(long),
			Category: "bug",
		})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("too many screenshots", func(t *testing.T) {
		err := svc.SubmitFeedback(context.Background(), "b@x.com", FeedbackRequest{
			Subject:  "s",
			Body:     "b",
			Category: "bug",
			Screenshots: []Screenshot{
				{Name: "a.png", ContentType: "image/png", Data: "aGk="},
				{Name: "b.png", ContentType: "image/png", Data: "aGk="},
				{Name: "c.png", ContentType: "image/png", Data: "aGk="},
			},
		})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("screenshot missing metadata", func(t *testing.T) {
		err := svc.SubmitFeedback(context.Background(), "b@x.com", FeedbackRequest{
			Subject:     "s",
			Body:        "b",
			Category:    "bug",
			Screenshots: []Screenshot{{Data: "aGk="}},
		})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("unconfigured flow", func(t *testing.T) {
		bare := NewService(testutils.TestConfig())
		err := bare.SubmitFeedback(context.Background(), "b@x.com", FeedbackRequest{
			Subject: "s", Body: "b", Category: "bug",
		})
		assert.ErrorIs(t, err, apperrors.ErrFeedbackConfigMissing)
	})
}
