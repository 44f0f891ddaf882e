// Package hierarchy groups timeline items into project headers, stage rows
// and nested task rows, and assigns each visible row its vertical offset.
package hierarchy

import (
	"sort"

	"github.com/alexanderramin/gantt/internal/domain"
)

type RowKind string

const (
	RowGroupHeader RowKind = "group"
	RowItem        RowKind = "item"
)

// RowHeights holds the per-kind row heights. Stage rows are usually taller
// than task rows; the header height applies once per group.
type RowHeights struct {
	Header    float64
	Stage     float64
	Task      float64
	Milestone float64
}

// DefaultRowHeights returns the heights used by the pixel renderer.
func DefaultRowHeights() RowHeights {
	return RowHeights{Header: 32, Stage: 36, Task: 28, Milestone: 28}
}

// ForKind returns the row height for an item kind.
func (h RowHeights) ForKind(k domain.ItemKind) float64 {
	switch k {
	case domain.KindStage:
		return h.Stage
	case domain.KindMilestone:
		return h.Milestone
	case domain.KindTask:
		return h.Task
	default:
		return h.Task
	}
}

// Row is one laid-out line of the chart.
type Row struct {
	Kind     RowKind
	Index    int
	GroupID  string
	ItemID   string // empty for group headers
	ItemKind domain.ItemKind
	Name     string

	// StageID is the stage that owns the row: the stage itself for a stage
	// row, the parent stage for a nested row, empty otherwise.
	StageID string
	Depth   int

	Top    float64
	Height float64

	// Set on stage rows only.
	Collapsed  bool
	ChildCount int
}

// Bottom is the y coordinate just below the row.
func (r Row) Bottom() float64 { return r.Top + r.Height }

// Layout is the computed vertical arrangement of all visible rows.
type Layout struct {
	rows   []Row
	byItem map[string]int
	height float64
}

// Build lays out items. Groups are ordered by OrderIndex as given in groups,
// then any group that only appears on items, in order of first appearance.
// Inside a group, stages and unparented items keep their source order and
// each stage is followed by its children, unless the stage is collapsed.
func Build(items []domain.TimelineItem, groups []domain.Group, exp Expansion, heights RowHeights) *Layout {
	if exp == nil {
		exp = AllExpanded
	}
	l := &Layout{byItem: make(map[string]int)}

	byGroup := make(map[string][]domain.TimelineItem)
	for _, it := range items {
		byGroup[it.GroupID] = append(byGroup[it.GroupID], it)
	}

	var y float64
	for _, g := range groupOrder(items, groups) {
		l.rows = append(l.rows, Row{
			Kind:    RowGroupHeader,
			Index:   len(l.rows),
			GroupID: g.ID,
			Name:    g.DisplayName(),
			Top:     y,
			Height:  heights.Header,
		})
		y += heights.Header

		members := byGroup[g.ID]
		stages := make(map[string]bool)
		for _, it := range members {
			if it.Kind == domain.KindStage {
				stages[it.ID] = true
			}
		}

		children := make(map[string][]domain.TimelineItem)
		var top []domain.TimelineItem
		for _, it := range members {
			if it.Kind != domain.KindStage && stages[it.Parent()] {
				children[it.Parent()] = append(children[it.Parent()], it)
				continue
			}
			top = append(top, it)
		}

		for _, it := range top {
			row := l.itemRow(it, 1, heights, y)
			switch it.Kind {
			case domain.KindStage:
				row.StageID = it.ID
				row.ChildCount = len(children[it.ID])
				row.Collapsed = !exp.IsExpanded(it.ID)
				l.add(row)
				y += row.Height
				if row.Collapsed {
					continue
				}
				for _, child := range children[it.ID] {
					cr := l.itemRow(child, 2, heights, y)
					cr.StageID = it.ID
					l.add(cr)
					y += cr.Height
				}
			case domain.KindTask, domain.KindMilestone:
				l.add(row)
				y += row.Height
			}
		}
	}
	l.height = y
	return l
}

func (l *Layout) itemRow(it domain.TimelineItem, depth int, heights RowHeights, y float64) Row {
	return Row{
		Kind:     RowItem,
		Index:    len(l.rows),
		GroupID:  it.GroupID,
		ItemID:   it.ID,
		ItemKind: it.Kind,
		Name:     it.Name,
		Depth:    depth,
		Top:      y,
		Height:   heights.ForKind(it.Kind),
	}
}

func (l *Layout) add(r Row) {
	l.byItem[r.ItemID] = len(l.rows)
	l.rows = append(l.rows, r)
}

func groupOrder(items []domain.TimelineItem, groups []domain.Group) []domain.Group {
	ordered := append([]domain.Group(nil), groups...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})

	known := make(map[string]bool, len(ordered))
	for _, g := range ordered {
		known[g.ID] = true
	}
	for _, it := range items {
		if !known[it.GroupID] {
			known[it.GroupID] = true
			ordered = append(ordered, domain.Group{ID: it.GroupID})
		}
	}
	return ordered
}

// Rows returns every visible row, headers included, top to bottom.
func (l *Layout) Rows() []Row {
	return append([]Row(nil), l.rows...)
}

// Len is the number of visible rows.
func (l *Layout) Len() int { return len(l.rows) }

// ContentHeight is the sum of all visible row heights.
func (l *Layout) ContentHeight() float64 { return l.height }

// Row returns the row of a visible item.
func (l *Layout) Row(itemID string) (Row, bool) {
	i, ok := l.byItem[itemID]
	if !ok {
		return Row{}, false
	}
	return l.rows[i], true
}

// VisibleItemIDs lists the items that have a row, top to bottom.
func (l *Layout) VisibleItemIDs() []string {
	ids := make([]string, 0, len(l.byItem))
	for _, r := range l.rows {
		if r.Kind == RowItem {
			ids = append(ids, r.ItemID)
		}
	}
	return ids
}

// RowAt returns the row containing y.
func (l *Layout) RowAt(y float64) (Row, bool) {
	if y < 0 || y >= l.height {
		return Row{}, false
	}
	i := sort.Search(len(l.rows), func(i int) bool {
		return l.rows[i].Bottom() > y
	})
	if i == len(l.rows) {
		return Row{}, false
	}
	return l.rows[i], true
}

// StageAt hit-tests y against the rows owned by stages: a stage row or any
// visible row nested under one. Group headers and top-level tasks miss.
func (l *Layout) StageAt(y float64) (stageID, groupID string, ok bool) {
	r, found := l.RowAt(y)
	if !found || r.StageID == "" {
		return "", "", false
	}
	return r.StageID, r.GroupID, true
}
