package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTimelineService(r repos, observers ...UseCaseObserver) TimelineService {
	return NewTimelineService(r.items, r.groups, r.deps, r.holidays, testutil.NewTestUoW(r.db), observers...)
}

func TestTimelineService_Load(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	g := seedGroup(t, r, "Launch")
	a := seedItem(t, r, testutil.NewTestItem(g.ID, "Design", testutil.WithSeq(1)))
	b := seedItem(t, r, testutil.NewTestItem(g.ID, "Build", testutil.WithSeq(2),
		testutil.WithDates(testutil.Day(2025, time.January, 13), testutil.Day(2025, time.January, 20))))
	require.NoError(t, r.deps.Create(ctx, b.ID, a.ID))
	require.NoError(t, r.holidays.Add(ctx, testutil.Day(2025, time.January, 1), "New Year"))

	snap, err := newTimelineService(r).Load(ctx)
	require.NoError(t, err)

	require.Len(t, snap.Items, 2)
	byID := domain.IndexItems(snap.Items)
	assert.Equal(t, []string{a.ID}, byID[b.ID].Dependencies)
	assert.Empty(t, byID[a.ID].Dependencies)

	require.Len(t, snap.Groups, 1)
	assert.Equal(t, "Launch", snap.Groups[0].Name)
	assert.True(t, snap.Holidays.IsHoliday(testutil.Day(2025, time.January, 1)))
	assert.Equal(t, "New Year", snap.Holidays.Name(testutil.Day(2025, time.January, 1)))
}

func TestTimelineService_Load_Empty(t *testing.T) {
	r := setupRepos(t)

	snap, err := newTimelineService(r).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Items)
	assert.Empty(t, snap.Groups)
	assert.NotNil(t, snap.Holidays)
}

func TestTimelineService_ApplyChanges_Move(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	g := seedGroup(t, r, "Launch")
	it := seedItem(t, r, testutil.NewTestItem(g.ID, "Design"))
	obs := &recordingObserver{}

	updated, err := newTimelineService(r, obs).ApplyChanges(ctx, []domain.ChangeIntent{{
		ItemID:   it.ID,
		Kind:     domain.ChangeMove,
		NewStart: time.Date(2025, time.January, 15, 13, 30, 0, 0, time.UTC),
		NewEnd:   time.Date(2025, time.January, 17, 9, 0, 0, 0, time.UTC),
	}})
	require.NoError(t, err)
	require.Len(t, updated, 1)

	stored, err := r.items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-15", domain.FormatDay(stored.StartDate))
	assert.Equal(t, "2025-01-17", domain.FormatDay(stored.EndDate))

	require.Len(t, obs.events, 1)
	assert.Equal(t, "apply-changes", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, 1, obs.events[0].Fields["items"])
}

func TestTimelineService_ApplyChanges_MoveAndReparentTogether(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	g := seedGroup(t, r, "Launch")
	stage := seedItem(t, r, testutil.NewTestStage(g.ID, "Phase 1",
		testutil.Day(2025, time.February, 1), testutil.Day(2025, time.February, 28)))
	it := seedItem(t, r, testutil.NewTestItem(g.ID, "Design"))

	start, end := testutil.Day(2025, time.February, 3), testutil.Day(2025, time.February, 5)
	updated, err := newTimelineService(r).ApplyChanges(ctx, []domain.ChangeIntent{
		{ItemID: it.ID, Kind: domain.ChangeMove, NewStart: start, NewEnd: end},
		{ItemID: it.ID, Kind: domain.ChangeReparent, NewParentID: stage.ID},
	})
	require.NoError(t, err)
	require.Len(t, updated, 1, "repeated intents for one item collapse to one result")

	stored, err := r.items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, stage.ID, stored.Parent())
	assert.True(t, domain.SameDay(start, stored.StartDate))
	assert.True(t, domain.SameDay(end, stored.EndDate))
}

func TestTimelineService_ApplyChanges_ReparentToTopLevel(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	g := seedGroup(t, r, "Launch")
	stage := seedItem(t, r, testutil.NewTestStage(g.ID, "Phase 1",
		testutil.Day(2025, time.January, 1), testutil.Day(2025, time.January, 31)))
	it := seedItem(t, r, testutil.NewTestItem(g.ID, "Design", testutil.WithParentID(stage.ID)))

	_, err := newTimelineService(r).ApplyChanges(ctx, []domain.ChangeIntent{
		{ItemID: it.ID, Kind: domain.ChangeReparent},
	})
	require.NoError(t, err)

	stored, err := r.items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ParentID)
	assert.Equal(t, "2025-01-10", domain.FormatDay(stored.StartDate), "dates untouched without new dates")
}

func TestTimelineService_ApplyChanges_Rejections(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	g := seedGroup(t, r, "Launch")
	other := seedGroup(t, r, "Other")
	task := seedItem(t, r, testutil.NewTestItem(g.ID, "Design"))
	milestone := seedItem(t, r, testutil.NewTestItem(g.ID, "Ship", testutil.WithKind(domain.KindMilestone)))
	foreignStage := seedItem(t, r, testutil.NewTestStage(other.ID, "Phase X",
		testutil.Day(2025, time.January, 1), testutil.Day(2025, time.January, 31)))

	d1, d2 := testutil.Day(2025, time.March, 1), testutil.Day(2025, time.March, 4)

	tests := []struct {
		name   string
		intent domain.ChangeIntent
	}{
		{"missing dates", domain.ChangeIntent{ItemID: task.ID, Kind: domain.ChangeMove}},
		{"end before start", domain.ChangeIntent{ItemID: task.ID, Kind: domain.ChangeResizeEnd, NewStart: d2, NewEnd: d1}},
		{"milestone resize", domain.ChangeIntent{ItemID: milestone.ID, Kind: domain.ChangeResizeEnd, NewStart: d1, NewEnd: d1}},
		{"milestone spanning days", domain.ChangeIntent{ItemID: milestone.ID, Kind: domain.ChangeMove, NewStart: d1, NewEnd: d2}},
		{"reparent across groups", domain.ChangeIntent{ItemID: task.ID, Kind: domain.ChangeReparent, NewParentID: foreignStage.ID}},
		{"unknown kind", domain.ChangeIntent{ItemID: task.ID, Kind: "teleport"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newTimelineService(r).ApplyChanges(ctx, []domain.ChangeIntent{tc.intent})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidChange)
		})
	}
}

func TestTimelineService_ApplyChanges_UnknownItem(t *testing.T) {
	r := setupRepos(t)

	_, err := newTimelineService(r).ApplyChanges(context.Background(), []domain.ChangeIntent{
		{ItemID: "missing", Kind: domain.ChangeMove, NewStart: testutil.Day(2025, 1, 1), NewEnd: testutil.Day(2025, 1, 2)},
	})
	require.Error(t, err)
}

func TestTimelineService_ApplyChanges_NoIntents(t *testing.T) {
	r := setupRepos(t)

	updated, err := newTimelineService(r).ApplyChanges(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestTimelineService_ApplyChanges_RollsBackWholeGesture(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	g := seedGroup(t, r, "Launch")
	a := seedItem(t, r, testutil.NewTestItem(g.ID, "A"))
	b := seedItem(t, r, testutil.NewTestItem(g.ID, "B"))

	// Exec #1 updates A, exec #2 updates B.
	failUoW := &testutil.FailOnNthExecUoW{DB: r.db, FailOn: 2, Err: fmt.Errorf("injected update failure")}
	svc := NewTimelineService(r.items, r.groups, r.deps, r.holidays, failUoW)

	start, end := testutil.Day(2025, time.April, 1), testutil.Day(2025, time.April, 3)
	_, err := svc.ApplyChanges(ctx, []domain.ChangeIntent{
		{ItemID: a.ID, Kind: domain.ChangeMove, NewStart: start, NewEnd: end},
		{ItemID: b.ID, Kind: domain.ChangeMove, NewStart: start, NewEnd: end},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected update failure")

	stored, err := r.items.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-10", domain.FormatDay(stored.StartDate), "first update must be rolled back")
}
