package dashboard

import (
	"time"

	"coordinator-portal-backend/internal/config"
	"coordinator-portal-backend/internal/kobo"
)

// Status is the derived evaluation state of a tool. It is recomputed on
// every refresh and never stored.
type Status string

const (
	StatusPending   Status = "pending"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
)

// Maturity variants recognized by the evaluation forms. Anything else
// excludes the tool from classification entirely.
const (
	MaturityEarly    = "early"
	MaturityAdvanced = "advanced"
)

// Submission categories used for completion classification.
const (
	CategoryUT3 = "ut3"
	CategoryUT4 = "ut4"
)

// EvalSets holds the four evaluation-form snapshots, one per category and
// maturity variant.
type EvalSets struct {
	UT3Advanced []kobo.Record
	UT3Early    []kobo.Record
	UT4Advanced []kobo.Record
	UT4Early    []kobo.Record
}

// ByCategory returns the evaluation snapshot for a category and maturity
// variant, or nil for unknown combinations.
func (e EvalSets) ByCategory(category, maturity string) []kobo.Record {
	switch category + "/" + maturity {
	case CategoryUT3 + "/" + MaturityAdvanced:
		return e.UT3Advanced
	case CategoryUT3 + "/" + MaturityEarly:
		return e.UT3Early
	case CategoryUT4 + "/" + MaturityAdvanced:
		return e.UT4Advanced
	case CategoryUT4 + "/" + MaturityEarly:
		return e.UT4Early
	}
	return nil
}

// SubmissionIndex is a precomputed membership structure over the evaluation
// snapshots: which tools have at least one submission per category and
// maturity, how many, and the latest submission time per tool.
type SubmissionIndex struct {
	sets       map[string]map[string]bool // category/maturity -> tool id set
	counts     map[string]map[string]int  // category/maturity -> tool id -> n
	latestTime map[string]time.Time       // tool id -> latest submission time
}

// BuildSubmissionIndex links every evaluation record to its tool through the
// configured candidate field list and indexes the result.
func BuildSubmissionIndex(cfg *config.Config, eval EvalSets) *SubmissionIndex {
	idx := &SubmissionIndex{
		sets:       make(map[string]map[string]bool),
		counts:     make(map[string]map[string]int),
		latestTime: make(map[string]time.Time),
	}

	idx.add(cfg, CategoryUT3, MaturityAdvanced, eval.UT3Advanced)
	idx.add(cfg, CategoryUT3, MaturityEarly, eval.UT3Early)
	idx.add(cfg, CategoryUT4, MaturityAdvanced, eval.UT4Advanced)
	idx.add(cfg, CategoryUT4, MaturityEarly, eval.UT4Early)

	return idx
}

func (idx *SubmissionIndex) add(cfg *config.Config, category, maturity string, records []kobo.Record) {
	key := category + "/" + maturity
	if idx.sets[key] == nil {
		idx.sets[key] = make(map[string]bool)
		idx.counts[key] = make(map[string]int)
	}
	for _, rec := range records {
		toolID := rec.FirstNonEmpty(cfg.ToolIDCandidates...)
		if toolID == "" {
			continue
		}
		idx.sets[key][toolID] = true
		idx.counts[key][toolID]++
		if t := rec.SubmissionTime(); t.After(idx.latestTime[toolID]) {
			idx.latestTime[toolID] = t
		}
	}
}

// Has reports whether a tool has at least one submission in the given
// category for its maturity variant.
func (idx *SubmissionIndex) Has(category, maturity, toolID string) bool {
	return idx.sets[category+"/"+maturity][toolID]
}

// Count returns the number of submissions linked to a tool in the given
// category for its maturity variant.
func (idx *SubmissionIndex) Count(category, maturity, toolID string) int {
	return idx.counts[category+"/"+maturity][toolID]
}

// TotalCount returns the number of submissions linked to a tool in the
// given category across both maturity variants.
func (idx *SubmissionIndex) TotalCount(category, toolID string) int {
	return idx.counts[category+"/"+MaturityAdvanced][toolID] + idx.counts[category+"/"+MaturityEarly][toolID]
}

// LatestSubmission returns the most recent evaluation submission time linked
// to a tool across all categories, or the zero time when none exists.
func (idx *SubmissionIndex) LatestSubmission(toolID string) time.Time {
	return idx.latestTime[toolID]
}

// Classify derives a tool's status from its maturity variant and the
// submission index. It is a pure function of the current membership sets:
// both categories present means completed, exactly one means ongoing,
// neither means pending. Tools with an unrecognized maturity are excluded
// and reported through ok=false.
func (idx *SubmissionIndex) Classify(toolID, maturity string) (status Status, ok bool) {
	if maturity != MaturityEarly && maturity != MaturityAdvanced {
		return "", false
	}

	has3 := idx.Has(CategoryUT3, maturity, toolID)
	has4 := idx.Has(CategoryUT4, maturity, toolID)

	switch {
	case has3 && has4:
		return StatusCompleted, true
	case has3 || has4:
		return StatusOngoing, true
	default:
		return StatusPending, true
	}
}
