package dashboard

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "coordinator-portal-backend/internal/errors"
	"coordinator-portal-backend/internal/kobo"
	"coordinator-portal-backend/internal/table"
	"coordinator-portal-backend/internal/testutils"
)

// fakeSource serves canned submissions per form id and can fail a form for
// the first n calls.
type fakeSource struct {
	mu          sync.Mutex
	submissions map[string][]kobo.Record
	questions   map[string][]kobo.Question
	failures    map[string]int
	calls       map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		submissions: make(map[string][]kobo.Record),
		questions:   make(map[string][]kobo.Question),
		failures:    make(map[string]int),
		calls:       make(map[string]int),
	}
}

func (f *fakeSource) FetchSubmissions(_ context.Context, formID string) ([]kobo.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[formID]++
	if f.failures[formID] > 0 {
		f.failures[formID]--
		return nil, apperrors.NewUpstreamError(formID, 500, "transient failure")
	}
	return f.submissions[formID], nil
}

func (f *fakeSource) FetchFormDefinition(_ context.Context, formID string) ([]kobo.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.questions[formID], nil
}

func seededSource() *fakeSource {
	src := newFakeSource()
	src.submissions["main-form"] = []kobo.Record{
		testutils.BaseTool("T-001", "Maize Sheller", "advanced", "b@x.com", "2024-01-01T00:00:00"),
		testutils.BaseTool("T-002", "Solar Dryer", "early", "b@x.com", "2024-01-02T00:00:00"),
		testutils.BaseTool("T-003", "Thresher", "early", "other@x.com", "2024-01-03T00:00:00"),
	}
	src.submissions["ut3-advanced"] = []kobo.Record{testutils.EvalSubmission("T-001", "2024-02-01T00:00:00")}
	src.submissions["ut4-advanced"] = []kobo.Record{testutils.EvalSubmission("T-001", "2024-02-02T00:00:00")}
	return src
}

func TestSummary(t *testing.T) {
	svc := NewService(testutils.TestConfig(), seededSource())

	summary, err := svc.Summary(context.Background(), "b@x.com")

	require.NoError(t, err)
	assert.Equal(t, 3, summary.Stats.TotalTools)
	assert.Equal(t, 2, summary.Stats.AppointedTools)
	assert.Equal(t, 1, summary.Stats.EvaluatedTools)
	assert.Equal(t, 50, summary.Stats.CompletionRate)
	assert.Len(t, summary.RecentActivity, 2)
}

func TestSummaryRetriesOnceAfterFailure(t *testing.T) {
	src := seededSource()
	src.failures["main-form"] = 1

	svc := NewService(testutils.TestConfig(), src)

	summary, err := svc.Summary(context.Background(), "b@x.com")

	require.NoError(t, err)
	assert.Equal(t, 3, summary.Stats.TotalTools)
	assert.Equal(t, 2, src.calls["main-form"])
}

func TestSummaryFailsAfterSecondFailure(t *testing.T) {
	src := seededSource()
	src.failures["main-form"] = 2

	svc := NewService(testutils.TestConfig(), src)

	_, err := svc.Summary(context.Background(), "b@x.com")

	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
	assert.Equal(t, 2, src.calls["main-form"])
}

func TestToolsPartialFetchFailureFailsWhole(t *testing.T) {
	src := seededSource()
	src.failures["ut4-early"] = 1

	svc := NewService(testutils.TestConfig(), src)

	_, err := svc.Tools(context.Background(), "b@x.com", "", 1)

	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
}

func TestToolsListScopedToOwner(t *testing.T) {
	svc := NewService(testutils.TestConfig(), seededSource())

	list, err := svc.Tools(context.Background(), "b@x.com", "", 1)

	require.NoError(t, err)
	require.Len(t, list.Tools, 2)
	assert.Equal(t, "T-001", list.Tools[0].ID)
	assert.Equal(t, StatusCompleted, list.Tools[0].Status)
	assert.Equal(t, 1, list.Tools[0].UT3Responses)
	assert.Equal(t, "T-002", list.Tools[1].ID)
	assert.Equal(t, StatusPending, list.Tools[1].Status)
}

func TestToolsSearch(t *testing.T) {
	svc := NewService(testutils.TestConfig(), seededSource())

	list, err := svc.Tools(context.Background(), "b@x.com", "maize", 1)

	require.NoError(t, err)
	require.Len(t, list.Tools, 1)
	assert.Equal(t, "Maize Sheller", list.Tools[0].Name)
}

func TestToolsPagination(t *testing.T) {
	src := newFakeSource()
	for i := 1; i <= 25; i++ {
		src.submissions["main-form"] = append(src.submissions["main-form"],
			testutils.BaseTool(fmt.Sprintf("T-%03d", i), "Tool", "early", "b@x.com", "2024-01-01T00:00:00"))
	}

	svc := NewService(testutils.TestConfig(), src)

	var all []string
	seen := make(map[string]bool)
	for page := 1; page <= 3; page++ {
		list, err := svc.Tools(context.Background(), "b@x.com", "", page)
		require.NoError(t, err)
		assert.Equal(t, 3, list.TotalPages)
		assert.Equal(t, 25, list.Total)
		for _, tool := range list.Tools {
			assert.False(t, seen[tool.ID], "tool %s appeared on two pages", tool.ID)
			seen[tool.ID] = true
			all = append(all, tool.ID)
		}
	}
	assert.Len(t, all, 25)

	// Out-of-range pages clamp instead of erroring.
	list, err := svc.Tools(context.Background(), "b@x.com", "", 99)
	require.NoError(t, err)
	assert.Equal(t, 3, list.Page)
	assert.Len(t, list.Tools, 5)
}

func TestToolsIncludesChangeLogOnlyTools(t *testing.T) {
	src := seededSource()
	src.submissions["changes-form"] = []kobo.Record{
		testutils.ChangeEvent("T-900", "b@x.com", "2024-03-01T00:00:00"),
	}

	svc := NewService(testutils.TestConfig(), src)

	list, err := svc.Tools(context.Background(), "b@x.com", "", 1)

	require.NoError(t, err)
	require.Len(t, list.Tools, 3)
	assert.Equal(t, "T-900", list.Tools[2].ID)
	assert.Equal(t, StatusPending, list.Tools[2].Status)
}

func TestToolDetail(t *testing.T) {
	svc := NewService(testutils.TestConfig(), seededSource())

	detail, err := svc.ToolDetail(context.Background(), "b@x.com", "T-001")

	require.NoError(t, err)
	assert.Equal(t, "Maize Sheller", detail.Name)
	assert.Equal(t, "2024-01-01", detail.AppointedAt)
	assert.Equal(t, "2024-02-02", detail.LastSubmissionAt)
	require.Len(t, detail.Submissions["ut3"], 1)
	require.Len(t, detail.Submissions["ut4"], 1)
	assert.Equal(t, "2024-02-01", detail.Submissions["ut3"][0].SubmittedAt)
}

func TestToolDetailDecodesAnswers(t *testing.T) {
	src := seededSource()
	src.submissions["ut3-advanced"] = []kobo.Record{{
		"group_intro/Q_13110000": "T-001",
		"Q_21000000":             "yes",
		"_submission_time":       "2024-02-01T00:00:00",
	}}
	src.questions["ut3-advanced"] = []kobo.Question{
		{Name: "Q_13110000", Label: "Tool ID", Type: "text"},
		{Name: "Q_21000000", Label: "Does it work?", Type: "select_one", Choices: []kobo.Choice{
			{Name: "yes", Label: "Yes"},
		}},
	}

	svc := NewService(testutils.TestConfig(), src)

	detail, err := svc.ToolDetail(context.Background(), "b@x.com", "T-001")

	require.NoError(t, err)
	require.Len(t, detail.Submissions["ut3"], 1)
	answers := detail.Submissions["ut3"][0].Answers
	require.Len(t, answers, 2)
	assert.Equal(t, QA{Question: "Tool ID", Answer: "T-001"}, answers[0])
	assert.Equal(t, QA{Question: "Does it work?", Answer: "Yes"}, answers[1])
}

func TestToolDetailNotOwned(t *testing.T) {
	svc := NewService(testutils.TestConfig(), seededSource())

	_, err := svc.ToolDetail(context.Background(), "b@x.com", "T-003")

	assert.True(t, apperrors.IsNotFound(err))
}

func TestToolDetailUnknownID(t *testing.T) {
	svc := NewService(testutils.TestConfig(), seededSource())

	_, err := svc.ToolDetail(context.Background(), "b@x.com", "T-999")

	assert.True(t, apperrors.IsNotFound(err))
}

func TestResponsesInvalidCategory(t *testing.T) {
	svc := NewService(testutils.TestConfig(), seededSource())

	_, err := svc.Responses(context.Background(), "b@x.com", "T-001", "ut9", table.Query{Page: 1})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCategory)
}

func TestResponsesBuildsView(t *testing.T) {
	src := seededSource()
	src.submissions["ut3-advanced"] = []kobo.Record{
		{
			"group_intro/Q_13110000": "T-001",
			"Q_21000000":             "yes",
			"_submission_time":       "2024-02-01T00:00:00",
		},
		{
			"group_intro/Q_13110000": "T-002", // different tool, must be filtered out
			"Q_21000000":             "no",
			"_submission_time":       "2024-02-02T00:00:00",
		},
	}
	src.questions["ut3-advanced"] = []kobo.Question{
		{Name: "Q_13110000", Label: "Tool ID", Type: "text"},
		{Name: "Q_21000000", Label: "Does it work?", Type: "select_one", Choices: []kobo.Choice{
			{Name: "yes", Label: "Yes"},
			{Name: "no", Label: "No"},
		}},
	}

	svc := NewService(testutils.TestConfig(), src)

	view, err := svc.Responses(context.Background(), "b@x.com", "T-001", "ut3", table.Query{Page: 1})

	require.NoError(t, err)
	assert.Equal(t, 1, view.TotalRows)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "Yes", view.Rows[0]["Q_21000000"])
	// Tool-id column leads the layout.
	require.NotEmpty(t, view.Columns)
	assert.Equal(t, "group_intro/Q_13110000", view.Columns[0].Key)
}

func TestResponsesToolNotOwned(t *testing.T) {
	svc := NewService(testutils.TestConfig(), seededSource())

	_, err := svc.Responses(context.Background(), "b@x.com", "T-003", "ut3", table.Query{Page: 1})

	assert.True(t, apperrors.IsNotFound(err))
}

func TestCoordinatorsSet(t *testing.T) {
	svc := NewService(testutils.TestConfig(), seededSource())

	set, err := svc.Coordinators(context.Background())

	require.NoError(t, err)
	assert.True(t, set["b@x.com"])
	assert.True(t, set["other@x.com"])
	assert.False(t, set["nobody@x.com"])
}
