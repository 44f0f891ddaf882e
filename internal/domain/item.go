package domain

import (
	"fmt"
	"sort"
	"time"
)

// TimelineItem is a schedulable row on the timeline. Items are supplied by
// the host on every refresh and are treated as immutable values.
type TimelineItem struct {
	ID       string
	Seq      int // group-scoped display number assigned by storage
	Kind     ItemKind
	GroupID  string
	ParentID *string
	Name     string

	StartDate time.Time
	EndDate   time.Time

	Progress float64
	Status   ItemStatus
	Assignee string

	// OrderIndex breaks ties between siblings that start on the same day.
	OrderIndex int

	// Dependencies holds the ids this item must follow.
	Dependencies []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Parent returns the parent stage id, or "" for top-level items.
func (i TimelineItem) Parent() string {
	if i.ParentID == nil {
		return ""
	}
	return *i.ParentID
}

// IsDone reports whether the item is complete.
func (i TimelineItem) IsDone() bool {
	return i.Status == StatusDone
}

// DurationDays is the number of whole days between start and end.
func (i TimelineItem) DurationDays() int {
	return DaysBetween(i.StartDate, i.EndDate)
}

// DependsOn reports whether id is listed among the item's dependencies.
func (i TimelineItem) DependsOn(id string) bool {
	for _, d := range i.Dependencies {
		if d == id {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants of an item.
func (i TimelineItem) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("item id is required")
	}
	if !ValidItemKinds[string(i.Kind)] {
		return fmt.Errorf("item %s: invalid kind %q", i.ID, i.Kind)
	}
	if i.Status != "" && !ValidItemStatuses[string(i.Status)] {
		return fmt.Errorf("item %s: invalid status %q", i.ID, i.Status)
	}
	if i.EndDate.Before(i.StartDate) {
		return fmt.Errorf("item %s: end %s precedes start %s", i.ID, FormatDay(i.EndDate), FormatDay(i.StartDate))
	}
	if i.Kind == KindMilestone && !SameDay(i.StartDate, i.EndDate) {
		return fmt.Errorf("item %s: milestone must start and end on the same day", i.ID)
	}
	if i.Progress < 0 || i.Progress > 1 {
		return fmt.Errorf("item %s: progress %.2f outside 0..1", i.ID, i.Progress)
	}
	return nil
}

// CanBecomeMilestone is the predicate the editor uses before switching an
// item's kind to milestone.
func (i TimelineItem) CanBecomeMilestone() bool {
	return i.Kind != KindStage && SameDay(i.StartDate, i.EndDate)
}

// DependencyEdge means ToID depends on FromID.
type DependencyEdge struct {
	FromID string
	ToID   string
}

// ChangeIntent is what a completed gesture asks the host to persist. Date
// changes carry NewStart/NewEnd; re-parenting carries NewParentID.
type ChangeIntent struct {
	ItemID      string
	Kind        ChangeKind
	NewStart    time.Time
	NewEnd      time.Time
	NewParentID string
}

// IsReparent reports whether the intent moves the item under another stage.
func (c ChangeIntent) IsReparent() bool {
	return c.Kind == ChangeReparent
}

// IndexItems returns an id -> item map.
func IndexItems(items []TimelineItem) map[string]TimelineItem {
	byID := make(map[string]TimelineItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	return byID
}

// SortedIDs returns the keys of set in lexical order.
func SortedIDs[V any](set map[string]V) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
