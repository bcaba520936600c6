package kobo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coordinator-portal-backend/internal/config"
	apperrors "coordinator-portal-backend/internal/errors"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		KoboBaseURL:  baseURL,
		KoboAPIToken: "secret-token",
		KoboRetryMax: 0,
	}
}

func TestFetchSubmissions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/assets/main-form/data.json", r.URL.Path)
		assert.Equal(t, "Token secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"count": 2,
			"results": [
				{"ID": "T-001", "tool_name": "Maize Sheller", "_submission_time": "2024-01-10T08:00:00"},
				{"ID": "T-002", "tool_name": "Solar Dryer", "_submission_time": "2024-01-11T08:00:00"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	records, err := client.FetchSubmissions(context.Background(), "main-form")

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "T-001", records[0].String("ID"))
	assert.Equal(t, "Solar Dryer", records[1].String("tool_name"))
}

func TestFetchSubmissionsEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count": 0, "results": null}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	records, err := client.FetchSubmissions(context.Background(), "main-form")

	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestFetchSubmissionsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail": "Invalid token"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.FetchSubmissions(context.Background(), "main-form")

	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
}

func TestFetchSubmissionsMissingBaseURL(t *testing.T) {
	client := NewClient(testConfig(""))
	_, err := client.FetchSubmissions(context.Background(), "main-form")

	assert.ErrorIs(t, err, apperrors.ErrKoboConfigMissing)
}

func TestFetchFormDefinition(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/assets/ut3-advanced.json", r.URL.Path)
		w.Write([]byte(`{
			"content": {
				"choices": [
					{"list_name": "yesno", "name": "yes", "label": ["Yes"]},
					{"list_name": "yesno", "name": "no", "label": ["No"]}
				],
				"survey": [
					{"type": "start", "name": "start"},
					{"type": "begin_group", "name": "group_intro", "label": ["Intro"]},
					{"type": "text", "name": "Q_13110000", "label": ["Tool ID"]},
					{"type": "select_one", "$autoname": "Q_21000000", "label": ["Does it work?"], "select_from_list_name": "yesno"},
					{"type": "end_group"}
				]
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	questions, err := client.FetchFormDefinition(context.Background(), "ut3-advanced")

	require.NoError(t, err)
	require.Len(t, questions, 3)

	assert.Equal(t, "start", questions[0].Name)

	assert.Equal(t, "Q_13110000", questions[1].Name)
	assert.Equal(t, "Tool ID", questions[1].Label)
	assert.Empty(t, questions[1].Choices)

	assert.Equal(t, "Q_21000000", questions[2].Name)
	assert.Equal(t, "select_one", questions[2].Type)
	require.Len(t, questions[2].Choices, 2)
	assert.Equal(t, Choice{Name: "yes", Label: "Yes"}, questions[2].Choices[0])
}
