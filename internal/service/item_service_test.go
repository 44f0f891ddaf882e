package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/alexanderramin/gantt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItemService(r repos) ItemService {
	return NewItemService(r.items, testutil.NewTestUoW(r.db))
}

func TestItemService_Create_AssignsSeqPerGroup(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	web := seedGroup(t, r, "Web")
	ops := seedGroup(t, r, "Ops")
	svc := newItemService(r)

	mk := func(groupID, name string) *domain.TimelineItem {
		it := &domain.TimelineItem{
			Kind:      domain.KindTask,
			GroupID:   groupID,
			Name:      name,
			StartDate: testutil.Day(2025, time.May, 1),
			EndDate:   testutil.Day(2025, time.May, 2),
		}
		require.NoError(t, svc.Create(ctx, it))
		return it
	}

	a := mk(web.ID, "A")
	b := mk(web.ID, "B")
	c := mk(ops.ID, "C")

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, domain.StatusTodo, a.Status)
	assert.Equal(t, 1, a.Seq)
	assert.Equal(t, 2, b.Seq)
	assert.Equal(t, 1, c.Seq, "seq restarts per group")

	fetched, err := svc.GetBySeq(ctx, web.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, "B", fetched.Name)
}

func TestItemService_Create_MilestoneDefaultsEnd(t *testing.T) {
	r := setupRepos(t)
	g := seedGroup(t, r, "Web")

	it := &domain.TimelineItem{
		Kind:      domain.KindMilestone,
		GroupID:   g.ID,
		Name:      "Go live",
		StartDate: time.Date(2025, time.June, 1, 15, 0, 0, 0, time.UTC),
	}
	require.NoError(t, newItemService(r).Create(context.Background(), it))
	assert.Equal(t, "2025-06-01", domain.FormatDay(it.EndDate))
}

func TestItemService_Create_Rejects(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	g := seedGroup(t, r, "Web")
	task := seedItem(t, r, testutil.NewTestItem(g.ID, "Task"))
	svc := newItemService(r)

	t.Run("end before start", func(t *testing.T) {
		err := svc.Create(ctx, &domain.TimelineItem{
			Kind: domain.KindTask, GroupID: g.ID, Name: "Bad",
			StartDate: testutil.Day(2025, 1, 5), EndDate: testutil.Day(2025, 1, 4),
		})
		assert.Error(t, err)
	})

	t.Run("parent is not a stage", func(t *testing.T) {
		pid := task.ID
		err := svc.Create(ctx, &domain.TimelineItem{
			Kind: domain.KindTask, GroupID: g.ID, Name: "Child", ParentID: &pid,
			StartDate: testutil.Day(2025, 1, 5), EndDate: testutil.Day(2025, 1, 6),
		})
		assert.ErrorIs(t, err, ErrInvalidChange)
	})

	items, err := r.items.ListByGroup(ctx, g.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestItemService_Create_RollbackReleasesSeq(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	g := seedGroup(t, r, "Web")

	// Exec #1 seeds the group sequence, exec #2 inserts the item.
	failUoW := &testutil.FailOnNthExecUoW{DB: r.db, FailOn: 2, Err: fmt.Errorf("injected insert failure")}
	failing := NewItemService(r.items, failUoW)

	it := &domain.TimelineItem{
		Kind: domain.KindTask, GroupID: g.ID, Name: "Lost",
		StartDate: testutil.Day(2025, 1, 1), EndDate: testutil.Day(2025, 1, 2),
	}
	err := failing.Create(ctx, it)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected insert failure")

	next := &domain.TimelineItem{
		Kind: domain.KindTask, GroupID: g.ID, Name: "Kept",
		StartDate: testutil.Day(2025, 1, 1), EndDate: testutil.Day(2025, 1, 2),
	}
	require.NoError(t, newItemService(r).Create(ctx, next))
	assert.Equal(t, 1, next.Seq)
}

func TestItemService_SetStatus_DoneRequiresFinishedPrerequisites(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	g := seedGroup(t, r, "Web")
	design := seedItem(t, r, testutil.NewTestItem(g.ID, "Design"))
	build := seedItem(t, r, testutil.NewTestItem(g.ID, "Build", testutil.WithProgress(0.4)))
	require.NoError(t, r.deps.Create(ctx, build.ID, design.ID))
	svc := newItemService(r)

	err := svc.SetStatus(ctx, build.ID, domain.StatusDone)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnfinishedPrerequisite)

	require.NoError(t, svc.SetStatus(ctx, design.ID, domain.StatusDone))
	require.NoError(t, svc.SetStatus(ctx, build.ID, domain.StatusDone))

	stored, err := r.items.GetByID(ctx, build.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, stored.Status)
	assert.Equal(t, 1.0, stored.Progress)
}

func TestItemService_SetStatus_Invalid(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	g := seedGroup(t, r, "Web")
	it := seedItem(t, r, testutil.NewTestItem(g.ID, "Design"))
	svc := newItemService(r)

	assert.Error(t, svc.SetStatus(ctx, it.ID, "finished"))
	assert.ErrorIs(t, svc.SetStatus(ctx, "missing", domain.StatusBlocked), repository.ErrNotFound)
}

func TestItemService_Update(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	g := seedGroup(t, r, "Web")
	it := seedItem(t, r, testutil.NewTestItem(g.ID, "Design"))
	svc := newItemService(r)

	it.Name = "Design v2"
	it.Assignee = "sam"
	require.NoError(t, svc.Update(ctx, it))

	stored, err := svc.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Design v2", stored.Name)
	assert.Equal(t, "sam", stored.Assignee)

	it.EndDate = testutil.Day(2024, 1, 1)
	assert.Error(t, svc.Update(ctx, it))
}

func TestItemService_Delete(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	g := seedGroup(t, r, "Web")
	it := seedItem(t, r, testutil.NewTestItem(g.ID, "Design"))
	svc := newItemService(r)

	require.NoError(t, svc.Delete(ctx, it.ID))
	_, err := svc.GetByID(ctx, it.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
