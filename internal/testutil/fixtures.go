package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// Day is a shorthand for domain.Date used throughout test tables.
func Day(year int, month time.Month, day int) time.Time {
	return domain.Date(year, month, day)
}

// Group options
type GroupOption func(*domain.Group)

func WithShortID(id string) GroupOption {
	return func(g *domain.Group) {
		g.ShortID = id
	}
}

func WithGroupStatus(s domain.GroupStatus) GroupOption {
	return func(g *domain.Group) {
		g.Status = s
	}
}

func WithGroupOrder(i int) GroupOption {
	return func(g *domain.Group) {
		g.OrderIndex = i
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestGroup(name string, opts ...GroupOption) *domain.Group {
	now := time.Now().UTC().Truncate(time.Second)
	g := &domain.Group{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		Status:    domain.GroupActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Item options
type ItemOption func(*domain.TimelineItem)

func WithKind(k domain.ItemKind) ItemOption {
	return func(it *domain.TimelineItem) {
		it.Kind = k
	}
}

func WithParentID(id string) ItemOption {
	return func(it *domain.TimelineItem) {
		it.ParentID = &id
	}
}

func WithDates(start, end time.Time) ItemOption {
	return func(it *domain.TimelineItem) {
		it.StartDate = start
		it.EndDate = end
	}
}

func WithStatus(s domain.ItemStatus) ItemOption {
	return func(it *domain.TimelineItem) {
		it.Status = s
	}
}

func WithProgress(p float64) ItemOption {
	return func(it *domain.TimelineItem) {
		it.Progress = p
	}
}

func WithSeq(seq int) ItemOption {
	return func(it *domain.TimelineItem) {
		it.Seq = seq
	}
}

func WithAssignee(name string) ItemOption {
	return func(it *domain.TimelineItem) {
		it.Assignee = name
	}
}

func WithDependencies(ids ...string) ItemOption {
	return func(it *domain.TimelineItem) {
		it.Dependencies = append(it.Dependencies, ids...)
	}
}

// NewTestItem returns a three-day task starting 2025-01-10.
func NewTestItem(groupID, name string, opts ...ItemOption) *domain.TimelineItem {
	now := time.Now().UTC().Truncate(time.Second)
	it := &domain.TimelineItem{
		ID:        uuid.New().String(),
		Kind:      domain.KindTask,
		GroupID:   groupID,
		Name:      name,
		StartDate: Day(2025, time.January, 10),
		EndDate:   Day(2025, time.January, 12),
		Status:    domain.StatusTodo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(it)
	}
	if it.Kind == domain.KindMilestone {
		it.EndDate = it.StartDate
	}
	return it
}

// NewTestStage returns a stage spanning start..end.
func NewTestStage(groupID, name string, start, end time.Time, opts ...ItemOption) *domain.TimelineItem {
	opts = append([]ItemOption{WithKind(domain.KindStage), WithDates(start, end)}, opts...)
	return NewTestItem(groupID, name, opts...)
}
