package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coordinator-portal-backend/internal/kobo"
)

var idCandidates = []string{"group_intro/Q_13110000", "Q_13110000", "tool_id"}

func TestDeriveColumnsSkipsMetadata(t *testing.T) {
	records := []kobo.Record{{
		"_id":              42,
		"_submission_time": "2024-02-01T00:00:00",
		"formhub/uuid":     "abc",
		"meta/instanceID":  "uuid:abc",
		"__version__":      "v1",
		"Q_21000000":       "yes",
	}}
	questions := []kobo.Question{{Name: "Q_21000000", Label: "Does it work?", Type: "select_one"}}

	columns := DeriveColumns(records, questions, idCandidates)

	require.Len(t, columns, 1)
	assert.Equal(t, "Q_21000000", columns[0].Key)
	assert.Equal(t, "Does it work?", columns[0].Label)
}

func TestDeriveColumnsDropsUnmatchedFields(t *testing.T) {
	records := []kobo.Record{{
		"Q_21000000":   "yes",
		"legacy_field": "x",
	}}
	questions := []kobo.Question{{Name: "Q_21000000", Label: "Does it work?"}}

	columns := DeriveColumns(records, questions, idCandidates)

	require.Len(t, columns, 1)
	assert.Equal(t, "Q_21000000", columns[0].Key)
}

func TestDeriveColumnsSuffixMatch(t *testing.T) {
	records := []kobo.Record{{
		"group_feedback/Q_21000000": "yes",
	}}
	questions := []kobo.Question{{Name: "Q_21000000", Label: "Does it work?"}}

	columns := DeriveColumns(records, questions, idCandidates)

	require.Len(t, columns, 1)
	assert.Equal(t, "group_feedback/Q_21000000", columns[0].Key)
	assert.Equal(t, "Does it work?", columns[0].Label)
}

func TestDeriveColumnsToolIDFirst(t *testing.T) {
	records := []kobo.Record{{
		"A_first":                "x",
		"group_intro/Q_13110000": "T-001",
	}}
	questions := []kobo.Question{
		{Name: "A_first", Label: "Something"},
		{Name: "Q_13110000", Label: "Tool ID"},
	}

	columns := DeriveColumns(records, questions, idCandidates)

	require.Len(t, columns, 2)
	assert.Equal(t, "group_intro/Q_13110000", columns[0].Key)
	assert.Equal(t, "A_first", columns[1].Key)
}

func TestDeriveColumnsEmptyRecords(t *testing.T) {
	assert.Nil(t, DeriveColumns(nil, nil, idCandidates))
}

func TestDeriveColumnsFallbackLabels(t *testing.T) {
	records := []kobo.Record{{"Q_99": "x"}}
	questions := []kobo.Question{{Name: "Q_99"}}

	columns := DeriveColumns(records, questions, idCandidates)

	require.Len(t, columns, 1)
	assert.Equal(t, "Unknown Question", columns[0].Label)
	assert.Equal(t, "text", columns[0].Type)
}
