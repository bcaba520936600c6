package dashboard

import (
	"math"
	"sort"
	"strings"
	"time"

	"coordinator-portal-backend/internal/config"
	"coordinator-portal-backend/internal/kobo"
)

// Stats is the dashboard summary for one coordinator.
type Stats struct {
	TotalTools     int `json:"totalTools"`
	AppointedTools int `json:"appointedTools"`
	EvaluatedTools int `json:"evaluatedTools"`
	OngoingTools   int `json:"ongoingTools"`
	CompletionRate int `json:"completionRate"`
}

// Activity is one entry of the recent-activity feed.
type Activity struct {
	ID          string `json:"id"`
	Tool        string `json:"tool"`
	Status      string `json:"status"`
	Date        string `json:"date"`
	Coordinator string `json:"coordinator"`
}

// recentActivityLimit caps the feed at the most recently changed tools.
const recentActivityLimit = 3

// Aggregate reduces the resolved ownership and classification state into the
// coordinator's summary counts and recent-activity feed.
//
// TotalTools counts every base record regardless of owner. The completion
// rate is evaluated over appointed tools and pinned to 0 when the
// coordinator owns nothing. The feed holds the three most recently changed
// owned tools, ordered by the later of appointment time and latest linked
// evaluation submission; ties keep base-record order.
func Aggregate(cfg *config.Config, base []kobo.Record, ownership Ownership, idx *SubmissionIndex, owner string) (Stats, []Activity) {
	stats := Stats{TotalTools: len(base)}

	for _, email := range ownership.CurrentOwner {
		if email == owner {
			stats.AppointedTools++
		}
	}

	type toolEntry struct {
		id       string
		name     string
		status   Status
		lastTime time.Time
	}
	var owned []toolEntry
	seen := make(map[string]bool)

	for _, sub := range base {
		toolID := sub.String(cfg.ToolIDField)
		if toolID == "" || seen[toolID] {
			continue
		}
		seen[toolID] = true

		if ownership.CurrentOwner[toolID] != owner {
			continue
		}

		lastTime := ownership.LastChange[toolID]
		if lastTime.IsZero() {
			lastTime = sub.SubmissionTime()
		}
		if evalTime := idx.LatestSubmission(toolID); evalTime.After(lastTime) {
			lastTime = evalTime
		}

		status, ok := idx.Classify(toolID, strings.ToLower(sub.String(cfg.MaturityField)))
		if !ok {
			// Unrecognized maturity: excluded from every bucket, but the
			// appointment still shows up in the feed as pending work.
			status = StatusPending
		} else {
			switch status {
			case StatusCompleted:
				stats.EvaluatedTools++
			case StatusOngoing:
				stats.OngoingTools++
			}
		}

		name := sub.String(cfg.ToolNameField)
		if name == "" {
			name = "Unknown Tool"
		}
		owned = append(owned, toolEntry{id: toolID, name: name, status: status, lastTime: lastTime})
	}

	if stats.AppointedTools > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.EvaluatedTools) / float64(stats.AppointedTools) * 100))
	}

	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].lastTime.After(owned[j].lastTime)
	})
	if len(owned) > recentActivityLimit {
		owned = owned[:recentActivityLimit]
	}

	activities := make([]Activity, 0, len(owned))
	for _, entry := range owned {
		date := ""
		if !entry.lastTime.IsZero() {
			date = entry.lastTime.Format("2006-01-02")
		}
		activities = append(activities, Activity{
			ID:          entry.id,
			Tool:        entry.name,
			Status:      string(entry.status),
			Date:        date,
			Coordinator: owner,
		})
	}

	return stats, activities
}
