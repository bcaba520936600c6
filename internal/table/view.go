package table

import (
	"sort"
	"strings"
	"time"

	"coordinator-portal-backend/internal/kobo"
)

const (
	pageSize         = 10
	emptyPlaceholder = "-"
	displayTimestamp = "01/02/2006, 15:04"
)

// Query carries the view parameters of a single table request. Page is
// 1-indexed; zero means first page. SortColumn empty means source order.
type Query struct {
	Search     string
	SortColumn string
	SortDesc   bool
	Page       int
	DateStart  string
	DateEnd    string
}

// View is one page of a response table plus enough shape information for
// a client to render headers and pagination.
type View struct {
	Columns      []Column            `json:"columns"`
	Rows         []map[string]string `json:"rows"`
	Page         int                 `json:"page"`
	TotalPages   int                 `json:"total_pages"`
	TotalRows    int                 `json:"total_rows"`
	Demographics *Demographics       `json:"demographics,omitempty"`
}

// BuildView runs the full table pipeline over raw submissions: date
// filtering, projection against the derived columns, free-text search,
// sorting and pagination.
func BuildView(records []kobo.Record, columns []Column, query Query) View {
	filtered := filterByDate(records, query.DateStart, query.DateEnd)

	rows := make([]map[string]string, 0, len(filtered))
	for _, rec := range filtered {
		rows = append(rows, ProjectRow(rec, columns))
	}

	if search := strings.TrimSpace(query.Search); search != "" {
		rows = searchRows(rows, columns, search)
	}

	if query.SortColumn != "" {
		sortRows(rows, query.SortColumn, query.SortDesc)
	}

	total := len(rows)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	page := query.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return View{
		Columns:    columns,
		Rows:       rows[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalRows:  total,
	}
}

// ProjectRow renders one record into display strings keyed by column:
// choice answers are replaced by their labels, timestamp-ish values are
// reformatted, and missing answers become a placeholder.
func ProjectRow(rec kobo.Record, columns []Column) map[string]string {
	row := make(map[string]string, len(columns))
	for _, col := range columns {
		raw := rec.String(col.Key)
		if raw == "" {
			row[col.Key] = emptyPlaceholder
			continue
		}
		row[col.Key] = formatCell(raw, col)
	}
	return row
}

func formatCell(raw string, col Column) string {
	if label, ok := decodeChoice(raw, col.Choices); ok {
		return label
	}
	if isTimestampColumn(col.Key) {
		if t, err := kobo.ParseTime(raw); err == nil {
			return t.Format(displayTimestamp)
		}
	}
	return raw
}

// decodeChoice maps a stored answer name to its label. Multi-select
// answers arrive space-separated and are decoded item by item.
func decodeChoice(raw string, choices []kobo.Choice) (string, bool) {
	if len(choices) == 0 {
		return "", false
	}
	byName := make(map[string]string, len(choices))
	for _, c := range choices {
		byName[c.Name] = c.Label
	}

	parts := strings.Fields(raw)
	labels := make([]string, 0, len(parts))
	matched := false
	for _, part := range parts {
		if label, ok := byName[part]; ok {
			labels = append(labels, label)
			matched = true
		} else {
			labels = append(labels, part)
		}
	}
	if !matched {
		return "", false
	}
	return strings.Join(labels, ", "), true
}

func isTimestampColumn(key string) bool {
	lower := strings.ToLower(key)
	return strings.Contains(lower, "start") || strings.Contains(lower, "end") || strings.Contains(lower, "time")
}

// searchRows keeps rows where any projected cell contains the term,
// case-insensitive. Searching happens after projection so users can match
// the labels they actually see.
func searchRows(rows []map[string]string, columns []Column, term string) []map[string]string {
	needle := strings.ToLower(term)
	kept := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		for _, col := range columns {
			if strings.Contains(strings.ToLower(row[col.Key]), needle) {
				kept = append(kept, row)
				break
			}
		}
	}
	return kept
}

func sortRows(rows []map[string]string, column string, desc bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i][column], rows[j][column]
		if desc {
			return a > b
		}
		return a < b
	})
}

// recordDate finds the first parseable timestamp among a record's date- and
// time-named fields, scanning in sorted key order so detection is
// deterministic. The zero time means no detectable date.
func recordDate(rec kobo.Record) time.Time {
	keys := make([]string, 0, len(rec))
	for key := range rec {
		if isDateField(key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		if t, err := kobo.ParseTime(rec.String(key)); err == nil {
			return t
		}
	}
	return time.Time{}
}

func isDateField(key string) bool {
	lower := strings.ToLower(key)
	return strings.Contains(lower, "date") || strings.Contains(lower, "time") ||
		strings.Contains(lower, "start") || strings.Contains(lower, "end")
}

// filterByDate keeps records inside the inclusive [start,end] window, dating
// each record by the first parseable date- or time-named field it carries.
// Records without a detectable date are kept, and malformed bounds disable
// their side of the window entirely.
func filterByDate(records []kobo.Record, start, end string) []kobo.Record {
	if start == "" && end == "" {
		return records
	}

	var startTime, endTime time.Time
	var hasStart, hasEnd bool
	if start != "" {
		if t, err := time.Parse("2006-01-02", start); err == nil {
			startTime, hasStart = t, true
		}
	}
	if end != "" {
		if t, err := time.Parse("2006-01-02", end); err == nil {
			// Push to end of day so the bound is inclusive.
			endTime, hasEnd = t.Add(24*time.Hour-time.Nanosecond), true
		}
	}
	if !hasStart && !hasEnd {
		return records
	}

	kept := make([]kobo.Record, 0, len(records))
	for _, rec := range records {
		t := recordDate(rec)
		if t.IsZero() {
			kept = append(kept, rec)
			continue
		}
		if hasStart && t.Before(startTime) {
			continue
		}
		if hasEnd && t.After(endTime) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}
