package kobo

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Record is one flat submission row as returned by the form-data endpoint.
// The upstream schema drifts between form variants, so values stay loosely
// typed and callers go through the accessors below.
type Record map[string]interface{}

// submissionTimeField is the metadata field KoBo stamps on every submission.
const submissionTimeField = "_submission_time"

// timeLayouts covers the timestamp shapes the service emits. Submission
// times usually carry fractional seconds without a zone; survey answers
// sometimes carry a zone offset.
var timeLayouts = []string{
	"2006-01-02T15:04:05.000000",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

// String returns the value under key stringified, or "" when absent or nil.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Has reports whether key is present with a non-nil value.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// FirstNonEmpty tries each candidate field in order and returns the first
// present, non-empty value, trimmed. Field-name candidate lists absorb the
// schema drift between form variants: the first match wins.
func (r Record) FirstNonEmpty(candidates ...string) string {
	for _, key := range candidates {
		if v := strings.TrimSpace(r.String(key)); v != "" {
			return v
		}
	}
	return ""
}

// SubmissionTime parses the submission timestamp. The zero time is returned
// when the field is missing or malformed; callers treat that as "value
// unavailable" rather than an error.
func (r Record) SubmissionTime() time.Time {
	t, _ := ParseTime(r.String(submissionTimeField))
	return t
}

// ParseTime parses a timestamp string in any of the layouts the service
// emits.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// SortBySubmissionTime orders records ascending by submission time in place,
// keeping input order for equal timestamps.
func SortBySubmissionTime(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SubmissionTime().Before(records[j].SubmissionTime())
	})
}
