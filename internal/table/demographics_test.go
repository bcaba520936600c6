package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coordinator-portal-backend/internal/kobo"
	"coordinator-portal-backend/internal/testutils"
)

func genderQuestions() []kobo.Question {
	return []kobo.Question{
		{Name: "Q_32120000", Label: "Gender", Type: "select_one", Choices: []kobo.Choice{
			{Name: "f", Label: "Female"},
			{Name: "m", Label: "Male"},
		}},
		{Name: "Q_32110000", Label: "Age", Type: "select_one", Choices: []kobo.Choice{
			{Name: "18_35", Label: "18-35"},
			{Name: "36_60", Label: "36-60"},
		}},
	}
}

func TestBuildDemographics(t *testing.T) {
	cfg := testutils.TestConfig()
	records := []kobo.Record{
		{"group_individualinfo/Q_32120000": "f", "group_individualinfo/Q_32110000": "18_35"},
		{"group_individualinfo/Q_32120000": "f", "group_individualinfo/Q_32110000": "36_60"},
		{"group_individualinfo/Q_32120000": "m"},
		{}, // answers neither; counted in totals only
	}

	demo := BuildDemographics(cfg, records, genderQuestions())

	require.NotNil(t, demo)
	assert.Equal(t, 4, demo.Total)

	require.Len(t, demo.Gender, 2)
	assert.Equal(t, BreakdownRow{Label: "Female", Count: 2, Percent: 50}, demo.Gender[0])
	assert.Equal(t, BreakdownRow{Label: "Male", Count: 1, Percent: 25}, demo.Gender[1])

	require.Len(t, demo.Age, 2)
	assert.Equal(t, 1, demo.Age[0].Count)
}

func TestBuildDemographicsFieldFallback(t *testing.T) {
	cfg := testutils.TestConfig()
	// Answers live under the bare field name, the last candidate in order.
	records := []kobo.Record{
		{"Q_32120000": "f"},
	}

	demo := BuildDemographics(cfg, records, genderQuestions())

	require.NotNil(t, demo)
	require.Len(t, demo.Gender, 1)
	assert.Equal(t, "Female", demo.Gender[0].Label)
}

func TestBuildDemographicsPercentagesNeverExceedTotal(t *testing.T) {
	cfg := testutils.TestConfig()
	records := []kobo.Record{
		{"Q_32120000": "f"},
		{"Q_32120000": "m"},
		{"Q_32120000": "f"},
	}

	demo := BuildDemographics(cfg, records, genderQuestions())

	require.NotNil(t, demo)
	sum := 0.0
	count := 0
	for _, row := range demo.Gender {
		sum += row.Percent
		count += row.Count
	}
	assert.LessOrEqual(t, sum, 100.1)
	assert.Equal(t, len(records), count)
}

func TestBuildDemographicsNilWhenNothingToReport(t *testing.T) {
	cfg := testutils.TestConfig()

	assert.Nil(t, BuildDemographics(cfg, nil, nil))
	assert.Nil(t, BuildDemographics(cfg, []kobo.Record{{"unrelated": "x"}}, nil))
}

func TestBuildDemographicsUndeclaredAnswerKeptRaw(t *testing.T) {
	cfg := testutils.TestConfig()
	records := []kobo.Record{
		{"Q_32120000": "prefer_not_to_say"},
	}

	demo := BuildDemographics(cfg, records, genderQuestions())

	require.NotNil(t, demo)
	require.Len(t, demo.Gender, 1)
	assert.Equal(t, "prefer_not_to_say", demo.Gender[0].Label)
}
