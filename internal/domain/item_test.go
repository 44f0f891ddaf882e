package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	it := TimelineItem{
		ID:        "a",
		Kind:      KindTask,
		StartDate: Date(2025, 1, 10),
		EndDate:   Date(2025, 1, 20),
		Status:    StatusTodo,
		Progress:  0.5,
	}
	assert.NoError(t, it.Validate())
}

func TestValidate_EndBeforeStart(t *testing.T) {
	it := TimelineItem{ID: "a", Kind: KindTask, StartDate: Date(2025, 1, 10), EndDate: Date(2025, 1, 9)}
	err := it.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "precedes")
}

func TestValidate_MilestoneMustBeSameDay(t *testing.T) {
	it := TimelineItem{ID: "m", Kind: KindMilestone, StartDate: Date(2025, 1, 10), EndDate: Date(2025, 1, 11)}
	err := it.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "same day")
}

func TestValidate_InvalidKindAndStatus(t *testing.T) {
	it := TimelineItem{ID: "a", Kind: "epic", StartDate: Date(2025, 1, 10), EndDate: Date(2025, 1, 10)}
	assert.Error(t, it.Validate())

	it.Kind = KindTask
	it.Status = "waiting"
	assert.Error(t, it.Validate())
}

func TestValidate_ProgressRange(t *testing.T) {
	it := TimelineItem{ID: "a", Kind: KindTask, StartDate: Date(2025, 1, 10), EndDate: Date(2025, 1, 10), Progress: 1.5}
	assert.Error(t, it.Validate())
}

func TestCanBecomeMilestone(t *testing.T) {
	same := TimelineItem{Kind: KindTask, StartDate: Date(2025, 3, 5), EndDate: Date(2025, 3, 5)}
	assert.True(t, same.CanBecomeMilestone())

	span := TimelineItem{Kind: KindTask, StartDate: Date(2025, 3, 5), EndDate: Date(2025, 3, 6)}
	assert.False(t, span.CanBecomeMilestone())

	stage := TimelineItem{Kind: KindStage, StartDate: Date(2025, 3, 5), EndDate: Date(2025, 3, 5)}
	assert.False(t, stage.CanBecomeMilestone())
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 10, DaysBetween(Date(2025, 1, 10), Date(2025, 1, 20)))
	assert.Equal(t, -3, DaysBetween(Date(2025, 1, 10), Date(2025, 1, 7)))
	assert.Equal(t, 0, DaysBetween(Date(2025, 1, 10), Date(2025, 1, 10)))
	// Across a year boundary.
	assert.Equal(t, 2, DaysBetween(Date(2024, 12, 31), Date(2025, 1, 2)))
}

func TestDay_TruncatesToUTCMidnight(t *testing.T) {
	in := time.Date(2025, 6, 15, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, Date(2025, 6, 15), Day(in))
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2025-03-05")
	require.NoError(t, err)
	assert.Equal(t, Date(2025, 3, 5), d)

	_, err = ParseDay("05/03/2025")
	assert.Error(t, err)
}

func TestNewDateWindow_RepairsInvertedRange(t *testing.T) {
	w := NewDateWindow(Date(2025, 1, 10), Date(2025, 1, 5))
	assert.Equal(t, Date(2025, 1, 10), w.Start)
	assert.Equal(t, Date(2025, 1, 11), w.End)
	assert.Equal(t, 1, w.Days())
}

func TestDateWindow_IntersectsAndUnion(t *testing.T) {
	w := NewDateWindow(Date(2025, 1, 1), Date(2025, 1, 31))
	assert.True(t, w.Intersects(Date(2024, 12, 20), Date(2025, 1, 1)))
	assert.False(t, w.Intersects(Date(2025, 2, 1), Date(2025, 2, 3)))

	u := w.Union(Date(2025, 2, 1), Date(2025, 2, 10))
	assert.Equal(t, Date(2025, 1, 1), u.Start)
	assert.Equal(t, Date(2025, 2, 10), u.End)
}

func TestPosition_ContainsPoint(t *testing.T) {
	p := Position{Left: 10, Width: 20, Top: 5, Height: 10}
	assert.True(t, p.ContainsPoint(10, 5))
	assert.True(t, p.ContainsPoint(29.9, 14.9))
	assert.False(t, p.ContainsPoint(30, 10))
	assert.Equal(t, 10.0, p.MidY())
}

func TestGroupDisplayName(t *testing.T) {
	g := &Group{ID: "550e8400-e29b-41d4-a716-446655440000", Name: "Website"}
	assert.Equal(t, "Website", g.DisplayName())

	g.Name = ""
	assert.Equal(t, "550e8400", g.DisplayName())

	g.ShortID = "WEB01"
	assert.Equal(t, "WEB01", g.DisplayName())
}

func TestGroupValidate(t *testing.T) {
	tests := []struct {
		name    string
		group   Group
		wantErr string
	}{
		{"valid", Group{Name: "Web", ShortID: "WEB01"}, ""},
		{"empty short id allowed", Group{Name: "Web"}, ""},
		{"missing name", Group{Name: "  "}, "name is required"},
		{"bad status", Group{Name: "Web", Status: "gone"}, "invalid status"},
		{"bad short id", Group{Name: "Web", ShortID: "web1"}, "short ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.group.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSuggestShortID(t *testing.T) {
	assert.Equal(t, "WEBS01", SuggestShortID("Website", 1))
	assert.Equal(t, "OPS03", SuggestShortID("Ops", 3))
	assert.Equal(t, "XXX12", SuggestShortID("42", 12))
	assert.Equal(t, "ABX01", SuggestShortID("a-b", 1))
}
