package table

import (
	"math"
	"sort"

	"coordinator-portal-backend/internal/config"
	"coordinator-portal-backend/internal/kobo"
)

// Demographics summarises who answered an evaluation form: gender and age
// breakdowns with counts and percentages over all responses. Responses
// whose record carries neither field contribute to totals only.
type Demographics struct {
	Total  int            `json:"total"`
	Gender []BreakdownRow `json:"gender"`
	Age    []BreakdownRow `json:"age"`
}

// BreakdownRow is one bucket of a demographic breakdown.
type BreakdownRow struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// BuildDemographics rolls up gender and age answers across the given
// records. Field names differ across form revisions, so each dimension is
// resolved from an ordered candidate list: the first candidate any record
// answers wins for that record. Answers are decoded to choice labels when
// the matching question is known.
func BuildDemographics(cfg *config.Config, records []kobo.Record, questions []kobo.Question) *Demographics {
	if len(records) == 0 {
		return nil
	}

	gender := countByCandidates(records, questions, cfg.GenderFieldOrder)
	age := countByCandidates(records, questions, cfg.AgeFieldOrder)
	if len(gender) == 0 && len(age) == 0 {
		return nil
	}

	total := len(records)
	return &Demographics{
		Total:  total,
		Gender: toBreakdown(gender, total),
		Age:    toBreakdown(age, total),
	}
}

func countByCandidates(records []kobo.Record, questions []kobo.Question, candidates []string) map[string]int {
	counts := make(map[string]int)
	for _, rec := range records {
		for _, field := range candidates {
			raw := rec.String(field)
			if raw == "" {
				continue
			}
			counts[decodeAnswer(field, raw, questions)]++
			break
		}
	}
	return counts
}

func decodeAnswer(field, raw string, questions []kobo.Question) string {
	if q, ok := matchQuestion(field, questions); ok {
		if label, ok := decodeChoice(raw, q.Choices); ok {
			return label
		}
	}
	return raw
}

// toBreakdown orders buckets by count descending, label ascending for ties,
// so the rollup reads largest-first and stays stable between refreshes.
func toBreakdown(counts map[string]int, total int) []BreakdownRow {
	if len(counts) == 0 {
		return nil
	}
	rows := make([]BreakdownRow, 0, len(counts))
	for label, count := range counts {
		percent := math.Round(float64(count)/float64(total)*1000) / 10
		rows = append(rows, BreakdownRow{Label: label, Count: count, Percent: percent})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Label < rows[j].Label
	})
	return rows
}
