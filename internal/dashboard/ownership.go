package dashboard

import (
	"time"

	"coordinator-portal-backend/internal/config"
	"coordinator-portal-backend/internal/kobo"
)

// Ownership is the resolved coordinator assignment state: the authoritative
// owner of each tool and the time that assignment last changed.
type Ownership struct {
	CurrentOwner map[string]string
	LastChange   map[string]time.Time
}

// ResolveOwnership folds the reassignment log over the base registrations.
// Reassignment events may arrive unsorted; they are ordered ascending by
// submission time first so that the latest event wins for each tool.
//
// Base records contribute an initial owner only when the owner field is
// non-empty; a tool without one stays unassigned until a reassignment names
// it. A reassignment for a tool id missing from the base set still creates
// an entry, since the tool may appear once the base form is refreshed.
func ResolveOwnership(cfg *config.Config, base, overrides []kobo.Record) Ownership {
	events := make([]kobo.Record, len(overrides))
	copy(events, overrides)
	kobo.SortBySubmissionTime(events)

	ownership := Ownership{
		CurrentOwner: make(map[string]string),
		LastChange:   make(map[string]time.Time),
	}

	for _, sub := range base {
		toolID := sub.String(cfg.ToolIDField)
		if toolID == "" {
			continue
		}
		if owner := sub.String(cfg.OwnerField); owner != "" {
			ownership.CurrentOwner[toolID] = owner
			ownership.LastChange[toolID] = sub.SubmissionTime()
		}
	}

	for _, ev := range events {
		toolID := ev.String(cfg.ChangeToolIDField)
		newOwner := ev.String(cfg.ChangeOwnerField)
		if toolID == "" || newOwner == "" {
			continue
		}
		ownership.CurrentOwner[toolID] = newOwner
		ownership.LastChange[toolID] = ev.SubmissionTime()
	}

	return ownership
}

// OwnedBy returns the ids of all tools currently assigned to owner, in no
// particular order.
func (o Ownership) OwnedBy(owner string) []string {
	var ids []string
	for id, email := range o.CurrentOwner {
		if email == owner {
			ids = append(ids, id)
		}
	}
	return ids
}

// Coordinators returns the set of every email that currently owns at least
// one tool.
func (o Ownership) Coordinators() map[string]bool {
	set := make(map[string]bool, len(o.CurrentOwner))
	for _, email := range o.CurrentOwner {
		set[email] = true
	}
	return set
}
