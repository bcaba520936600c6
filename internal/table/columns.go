package table

import (
	"sort"
	"strings"

	"coordinator-portal-backend/internal/kobo"
)

// Column is one displayable field of a response table, decorated with the
// matching question's label, type and choice list.
type Column struct {
	Key     string        `json:"key"`
	Label   string        `json:"label"`
	Type    string        `json:"type"`
	Choices []kobo.Choice `json:"choices,omitempty"`
}

// metadataPrefixes mark fields the collection service attaches to every
// record; they never appear as table columns.
var metadataPrefixes = []string{"_", "formhub/", "meta/"}

const versionField = "__version__"

// DeriveColumns builds the display columns from the first record's fields
// and the question schema. A field with no matching question is dropped
// rather than shown raw. The column holding the tool identifier (any of
// idCandidates) is moved to the front; the rest keep alphabetical order.
func DeriveColumns(records []kobo.Record, questions []kobo.Question, idCandidates []string) []Column {
	if len(records) == 0 {
		return nil
	}

	first := records[0]
	fields := make([]string, 0, len(first))
	for key := range first {
		if isMetadataField(key) {
			continue
		}
		fields = append(fields, key)
	}
	// Map iteration order is random; pin it before the id-first reorder so
	// the layout is stable across refreshes.
	sort.Strings(fields)

	columns := make([]Column, 0, len(fields))
	for _, field := range fields {
		q, ok := matchQuestion(field, questions)
		if !ok {
			continue
		}
		label := q.Label
		if label == "" {
			label = "Unknown Question"
		}
		qType := q.Type
		if qType == "" {
			qType = "text"
		}
		columns = append(columns, Column{Key: field, Label: label, Type: qType, Choices: q.Choices})
	}

	sort.SliceStable(columns, func(i, j int) bool {
		return isToolIDColumn(columns[i].Key, idCandidates) && !isToolIDColumn(columns[j].Key, idCandidates)
	})

	return columns
}

// matchQuestion finds the schema descriptor for a record field. Group
// prefixes on field names vary between form versions, so the lookup also
// tries the suffix after the last slash.
func matchQuestion(field string, questions []kobo.Question) (kobo.Question, bool) {
	normalized := field
	if i := strings.LastIndex(field, "/"); i >= 0 {
		normalized = field[i+1:]
	}
	for _, q := range questions {
		if q.Name == normalized || q.Name == field {
			return q, true
		}
	}
	return kobo.Question{}, false
}

func isMetadataField(key string) bool {
	for _, prefix := range metadataPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return key == versionField
}

func isToolIDColumn(key string, idCandidates []string) bool {
	normalized := key
	if i := strings.LastIndex(key, "/"); i >= 0 {
		normalized = key[i+1:]
	}
	for _, candidate := range idCandidates {
		if normalized == candidate || key == candidate {
			return true
		}
	}
	return false
}
