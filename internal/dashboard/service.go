package dashboard

import (
	"context"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"coordinator-portal-backend/internal/config"
	apperrors "coordinator-portal-backend/internal/errors"
	"coordinator-portal-backend/internal/kobo"
	"coordinator-portal-backend/internal/logger"
	"coordinator-portal-backend/internal/table"
)

const toolsPageSize = 10

// Service aggregates upstream form submissions into the coordinator-facing
// dashboard views. It holds no state between requests: every call fetches a
// fresh snapshot so the dashboard never shows data the upstream no longer has.
type Service struct {
	cfg    *config.Config
	source RecordSource
}

// NewService creates a new dashboard service backed by the given record source.
func NewService(cfg *config.Config, source RecordSource) *Service {
	return &Service{cfg: cfg, source: source}
}

// Summary is the dashboard landing payload: headline statistics plus the
// most recent activity entries for the coordinator.
type Summary struct {
	Stats          Stats      `json:"stats"`
	RecentActivity []Activity `json:"recent_activity"`
}

// ToolSummary is one row of the coordinator's tool list.
type ToolSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Maturity     string `json:"maturity"`
	Coordinator  string `json:"coordinator"`
	Status       Status `json:"status"`
	UT3Responses int    `json:"ut3_responses"`
	UT4Responses int    `json:"ut4_responses"`
}

// ToolList is a page of the coordinator's tools.
type ToolList struct {
	Tools      []ToolSummary `json:"tools"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	Total      int           `json:"total"`
}

// QA is one decoded question/answer pair of an evaluation submission.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SubmissionView is one evaluation submission rendered for display.
type SubmissionView struct {
	SubmittedAt string `json:"submitted_at,omitempty"`
	Answers     []QA   `json:"answers"`
}

// ToolDetail extends the list row with appointment and submission timing and
// the tool's evaluation submissions grouped by category.
type ToolDetail struct {
	ToolSummary
	AppointedAt      string                      `json:"appointed_at,omitempty"`
	LastSubmissionAt string                      `json:"last_submission_at,omitempty"`
	Submissions      map[string][]SubmissionView `json:"submissions"`
}

// snapshot is one consistent read of every upstream form. Either all six
// fetches succeed or the snapshot is unusable; serving a dashboard from a
// partial read would silently misclassify tools.
type snapshot struct {
	main      []kobo.Record
	changes   []kobo.Record
	eval      EvalSets
	ownership Ownership
	index     *SubmissionIndex
}

func (s *Service) fetchSnapshot(ctx context.Context) (*snapshot, error) {
	snap := &snapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.main, err = s.source.FetchSubmissions(gctx, s.cfg.MainFormID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.changes, err = s.source.FetchSubmissions(gctx, s.cfg.ChangeLogFormID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.eval.UT3Advanced, err = s.source.FetchSubmissions(gctx, s.cfg.UT3AdvancedFormID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.eval.UT3Early, err = s.source.FetchSubmissions(gctx, s.cfg.UT3EarlyFormID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.eval.UT4Advanced, err = s.source.FetchSubmissions(gctx, s.cfg.UT4AdvancedFormID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.eval.UT4Early, err = s.source.FetchSubmissions(gctx, s.cfg.UT4EarlyFormID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap.ownership = ResolveOwnership(s.cfg, snap.main, snap.changes)
	snap.index = BuildSubmissionIndex(s.cfg, snap.eval)
	return snap, nil
}

// Summary computes the coordinator's headline stats and recent activity.
// A failed snapshot gets one retry after a short pause: the upstream
// throttles bursts and usually recovers within seconds.
func (s *Service) Summary(ctx context.Context, owner string) (*Summary, error) {
	log := logger.WithContext(ctx).WithField("owner", owner)

	snap, err := s.fetchSnapshot(ctx)
	if err != nil {
		log.Warnf("Snapshot fetch failed, retrying in %s: %v", s.cfg.SummaryRetryDelay, err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.cfg.SummaryRetryDelay):
		}
		snap, err = s.fetchSnapshot(ctx)
		if err != nil {
			log.Errorf("Snapshot fetch failed after retry: %v", err)
			return nil, err
		}
	}

	stats, activity := Aggregate(s.cfg, snap.main, snap.ownership, snap.index, owner)
	log.Infof("Summary computed: appointed=%d evaluated=%d ongoing=%d", stats.AppointedTools, stats.EvaluatedTools, stats.OngoingTools)
	return &Summary{Stats: stats, RecentActivity: activity}, nil
}

// Tools lists the coordinator's tools, filtered by a free-text search over
// id, name and coordinator email, ten per page.
func (s *Service) Tools(ctx context.Context, owner, search string, page int) (*ToolList, error) {
	snap, err := s.fetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	rows := s.toolRows(snap, owner)
	if needle := strings.ToLower(strings.TrimSpace(search)); needle != "" {
		kept := rows[:0]
		for _, row := range rows {
			if strings.Contains(strings.ToLower(row.ID), needle) ||
				strings.Contains(strings.ToLower(row.Name), needle) ||
				strings.Contains(strings.ToLower(row.Coordinator), needle) {
				kept = append(kept, row)
			}
		}
		rows = kept
	}

	total := len(rows)
	totalPages := (total + toolsPageSize - 1) / toolsPageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * toolsPageSize
	end := start + toolsPageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &ToolList{Tools: rows[start:end], Page: page, TotalPages: totalPages, Total: total}, nil
}

// ToolDetail returns one tool owned by the coordinator. Tools owned by
// someone else are reported as not found rather than forbidden, so the
// response does not leak which ids exist.
func (s *Service) ToolDetail(ctx context.Context, owner, toolID string) (*ToolDetail, error) {
	snap, err := s.fetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	row, ok := s.findTool(snap, owner, toolID)
	if !ok {
		return nil, apperrors.ErrToolNotFound
	}

	detail := &ToolDetail{ToolSummary: row, Submissions: make(map[string][]SubmissionView)}
	if t, ok := snap.ownership.LastChange[toolID]; ok {
		detail.AppointedAt = t.Format("2006-01-02")
	}
	if t := snap.index.LatestSubmission(toolID); !t.IsZero() {
		detail.LastSubmissionAt = t.Format("2006-01-02")
	}

	for _, category := range []string{CategoryUT3, CategoryUT4} {
		views, err := s.submissionViews(ctx, snap, category, row.Maturity, toolID)
		if err != nil {
			return nil, err
		}
		detail.Submissions[category] = views
	}
	return detail, nil
}

// submissionViews renders one category's submissions for a tool as decoded
// question/answer pairs, reusing the table projection so choice answers and
// timestamps display the same way everywhere.
func (s *Service) submissionViews(ctx context.Context, snap *snapshot, category, maturity, toolID string) ([]SubmissionView, error) {
	records := filterByTool(snap.eval.ByCategory(category, maturity), toolID, s.cfg.ToolIDCandidates)
	views := make([]SubmissionView, 0, len(records))
	if len(records) == 0 {
		return views, nil
	}

	formID := s.cfg.EvalFormID(category, maturity)
	if formID == "" {
		return views, nil
	}
	questions, err := s.source.FetchFormDefinition(ctx, formID)
	if err != nil {
		return nil, err
	}

	columns := table.DeriveColumns(records, questions, s.cfg.ToolIDCandidates)
	for _, rec := range records {
		view := SubmissionView{}
		if t := rec.SubmissionTime(); !t.IsZero() {
			view.SubmittedAt = t.Format("2006-01-02")
		}
		projected := table.ProjectRow(rec, columns)
		for _, col := range columns {
			view.Answers = append(view.Answers, QA{Question: col.Label, Answer: projected[col.Key]})
		}
		views = append(views, view)
	}
	return views, nil
}

// Responses builds the tabular view of one evaluation form's submissions
// for a tool: the submissions of the form matching the requested user-type
// category and the tool's maturity, restricted to this tool's id.
func (s *Service) Responses(ctx context.Context, owner, toolID, category string, query table.Query) (*table.View, error) {
	log := logger.WithContext(ctx).WithFields(map[string]interface{}{
		"owner":    owner,
		"toolId":   toolID,
		"category": category,
	})

	if category != CategoryUT3 && category != CategoryUT4 {
		return nil, apperrors.ErrInvalidCategory
	}

	snap, err := s.fetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	row, ok := s.findTool(snap, owner, toolID)
	if !ok {
		return nil, apperrors.ErrToolNotFound
	}

	formID := s.cfg.EvalFormID(category, row.Maturity)
	if formID == "" {
		log.Warnf("No evaluation form for maturity %q", row.Maturity)
		return nil, apperrors.ErrUnknownMaturity
	}

	questions, err := s.source.FetchFormDefinition(ctx, formID)
	if err != nil {
		return nil, err
	}

	records := filterByTool(snap.eval.ByCategory(category, row.Maturity), toolID, s.cfg.ToolIDCandidates)
	columns := table.DeriveColumns(records, questions, s.cfg.ToolIDCandidates)

	view := table.BuildView(records, columns, query)
	view.Demographics = table.BuildDemographics(s.cfg, records, questions)
	log.Infof("Response view built: rows=%d page=%d/%d", view.TotalRows, view.Page, view.TotalPages)
	return &view, nil
}

// Coordinators returns the set of emails currently owning at least one tool.
func (s *Service) Coordinators(ctx context.Context) (map[string]bool, error) {
	g, gctx := errgroup.WithContext(ctx)
	var main, changes []kobo.Record
	g.Go(func() error {
		var err error
		main, err = s.source.FetchSubmissions(gctx, s.cfg.MainFormID)
		return err
	})
	g.Go(func() error {
		var err error
		changes, err = s.source.FetchSubmissions(gctx, s.cfg.ChangeLogFormID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ownership := ResolveOwnership(s.cfg, main, changes)
	return ownership.Coordinators(), nil
}

func (s *Service) toolRows(snap *snapshot, owner string) []ToolSummary {
	rows := make([]ToolSummary, 0)
	for _, rec := range snap.main {
		id := rec.String(s.cfg.ToolIDField)
		if id == "" || snap.ownership.CurrentOwner[id] != owner {
			continue
		}
		maturity := strings.ToLower(rec.String(s.cfg.MaturityField))
		status, ok := snap.index.Classify(id, maturity)
		if !ok {
			status = StatusPending
		}
		rows = append(rows, ToolSummary{
			ID:           id,
			Name:         rec.String(s.cfg.ToolNameField),
			Maturity:     maturity,
			Coordinator:  owner,
			Status:       status,
			UT3Responses: snap.index.TotalCount(CategoryUT3, id),
			UT4Responses: snap.index.TotalCount(CategoryUT4, id),
		})
	}
	// Tools acquired through the change log alone have no base record to
	// carry a name or maturity; they still belong in the list.
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		seen[row.ID] = true
	}
	for _, id := range snap.ownership.OwnedBy(owner) {
		if seen[id] {
			continue
		}
		rows = append(rows, ToolSummary{
			ID:           id,
			Name:         "",
			Coordinator:  owner,
			Status:       StatusPending,
			UT3Responses: snap.index.TotalCount(CategoryUT3, id),
			UT4Responses: snap.index.TotalCount(CategoryUT4, id),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

func (s *Service) findTool(snap *snapshot, owner, toolID string) (ToolSummary, bool) {
	for _, row := range s.toolRows(snap, owner) {
		if row.ID == toolID {
			return row, true
		}
	}
	return ToolSummary{}, false
}

func filterByTool(records []kobo.Record, toolID string, idCandidates []string) []kobo.Record {
	kept := make([]kobo.Record, 0, len(records))
	for _, rec := range records {
		if rec.FirstNonEmpty(idCandidates...) == toolID {
			kept = append(kept, rec)
		}
	}
	return kept
}
