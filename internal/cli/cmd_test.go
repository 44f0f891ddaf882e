package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/gantt/internal/config"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/alexanderramin/gantt/internal/service"
	"github.com/alexanderramin/gantt/internal/testutil"
	"github.com/alexanderramin/gantt/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testToday is the fixed clock used by CLI and TUI tests.
var testToday = testutil.Day(2025, time.March, 12)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	itemRepo := repository.NewSQLiteItemRepo(database)
	groupRepo := repository.NewSQLiteGroupRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)
	holidayRepo := repository.NewSQLiteHolidayRepo(database)

	return &App{
		Timeline: service.NewTimelineService(itemRepo, groupRepo, depRepo, holidayRepo, uow),
		Items:    service.NewItemService(itemRepo, uow),
		Deps:     service.NewDependencyService(depRepo, uow),
		Groups:   service.NewGroupService(groupRepo, uow),
		Holidays: service.NewHolidayService(holidayRepo),
		Import:   service.NewImportService(uow),
		Clock:    func() time.Time { return testToday },
		Confirm: func(string) (bool, error) {
			t.Fatal("unexpected confirmation prompt")
			return false, nil
		},
	}
}

// seeded holds the fixture created by seedTimeline.
type seeded struct {
	group                        *domain.Group
	stage, design, build, launch *domain.TimelineItem
}

// seedTimeline creates one group with a stage holding two tasks, where
// Build depends on Design, and a top-level milestone:
//
//	WEB01#1 Phase 1  03-01..03-21
//	WEB01#2 Design   03-03..03-07
//	WEB01#3 Build    03-10..03-14
//	WEB01#4 Launch   03-24
func seedTimeline(t *testing.T, app *App) seeded {
	t.Helper()
	ctx := context.Background()

	g := &domain.Group{Name: "Website", ShortID: "WEB01"}
	require.NoError(t, app.Groups.Create(ctx, g))

	stage := &domain.TimelineItem{Kind: domain.KindStage, GroupID: g.ID, Name: "Phase 1",
		StartDate: testutil.Day(2025, time.March, 1), EndDate: testutil.Day(2025, time.March, 21)}
	require.NoError(t, app.Items.Create(ctx, stage))

	design := &domain.TimelineItem{Kind: domain.KindTask, GroupID: g.ID, ParentID: &stage.ID, Name: "Design",
		StartDate: testutil.Day(2025, time.March, 3), EndDate: testutil.Day(2025, time.March, 7)}
	require.NoError(t, app.Items.Create(ctx, design))

	build := &domain.TimelineItem{Kind: domain.KindTask, GroupID: g.ID, ParentID: &stage.ID, Name: "Build",
		StartDate: testutil.Day(2025, time.March, 10), EndDate: testutil.Day(2025, time.March, 14)}
	require.NoError(t, app.Items.Create(ctx, build))
	require.NoError(t, app.Deps.Add(ctx, build.ID, design.ID))

	launch := &domain.TimelineItem{Kind: domain.KindMilestone, GroupID: g.ID, Name: "Launch",
		StartDate: testutil.Day(2025, time.March, 24)}
	require.NoError(t, app.Items.Create(ctx, launch))

	return seeded{group: g, stage: stage, design: design, build: build, launch: launch}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func getItem(t *testing.T, app *App, id string) *domain.TimelineItem {
	t.Helper()
	it, err := app.Items.GetByID(context.Background(), id)
	require.NoError(t, err)
	return it
}

// --- Root command ---

func TestRootCmd_NonInteractiveRendersChart(t *testing.T) {
	app := testApp(t)
	seedTimeline(t, app)

	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "Phase 1")
	assert.Contains(t, out, "Launch")
	assert.NotContains(t, out, "DEPENDENCIES")
}

func TestRootCmd_LoadsConfigBeforeSubcommands(t *testing.T) {
	app := testApp(t)
	var got *config.Config
	app.Open = func(cfg *config.Config) error {
		got = cfg
		return nil
	}

	_, err := executeCmd(t, app, "--scale", "quarter", "--db", "plan.db", "group", "list")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "plan.db", got.DB)
	mode, err := got.ScaleMode()
	require.NoError(t, err)
	assert.Equal(t, window.Quarter, mode)
	assert.Same(t, got, app.Config)
}

func TestRootCmd_InvalidScale(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "--scale", "decade", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decade")
}

func TestRootCmd_OpenErrorStopsCommand(t *testing.T) {
	app := testApp(t)
	app.Open = func(*config.Config) error { return errors.New("disk on fire") }

	_, err := executeCmd(t, app, "group", "list")
	assert.EqualError(t, err, "disk on fire")
}

// --- Groups ---

func TestGroupCmd_AddAndList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "group", "add", "--name", "Website", "--id", "web01")
	require.NoError(t, err)
	assert.Contains(t, out, "Created group Website [WEB01]")

	out, err = executeCmd(t, app, "group", "add", "--name", "Operations")
	require.NoError(t, err)
	assert.Contains(t, out, "[OPER01]")

	out, err = executeCmd(t, app, "group", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "WEB01")
	assert.Contains(t, out, "Operations")
}

func TestGroupCmd_ListEmpty(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "group", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No groups found.")
}

func TestGroupCmd_Remove(t *testing.T) {
	app := testApp(t)
	s := seedTimeline(t, app)

	out, err := executeCmd(t, app, "group", "remove", "web01", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted group")

	_, err = app.Items.GetByID(context.Background(), s.design.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// --- Items ---

func TestItemCmd_AddAndList(t *testing.T) {
	app := testApp(t)
	seedTimeline(t, app)

	out, err := executeCmd(t, app, "item", "add", "--group", "WEB01", "--name", "QA",
		"--start", "2025-03-17", "--end", "2025-03-19", "--parent", "WEB01#1", "--assignee", "kim")
	require.NoError(t, err)
	assert.Contains(t, out, "Created task WEB01#5 QA")

	out, err = executeCmd(t, app, "item", "list", "--group", "web01")
	require.NoError(t, err)
	assert.Contains(t, out, "WEB01#5")
	assert.Contains(t, out, "2025-03-17 → 2025-03-19")
	assert.Contains(t, out, "kim")
}

func TestItemCmd_AddMilestoneWithoutEnd(t *testing.T) {
	app := testApp(t)
	seedTimeline(t, app)

	out, err := executeCmd(t, app, "item", "add", "-g", "WEB01", "--name", "Review",
		"--kind", "milestone", "--start", "2025-03-18")
	require.NoError(t, err)
	assert.Contains(t, out, "Created milestone WEB01#5 Review")
}

func TestItemCmd_AddRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"task without end", []string{"--name", "X", "--start", "2025-03-01"}, "--end is required"},
		{"bad kind", []string{"--name", "X", "--start", "2025-03-01", "--kind", "epic"}, "invalid --kind"},
		{"bad date", []string{"--name", "X", "--start", "03/01/2025", "--end", "2025-03-02"}, "invalid --start"},
		{"end before start", []string{"--name", "X", "--start", "2025-03-05", "--end", "2025-03-01"}, "end"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := testApp(t)
			seedTimeline(t, app)
			args := append([]string{"item", "add", "--group", "WEB01"}, tc.args...)
			_, err := executeCmd(t, app, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestItemCmd_MoveBy(t *testing.T) {
	app := testApp(t)
	s := seedTimeline(t, app)

	out, err := executeCmd(t, app, "item", "move", "WEB01#2", "--by", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated Design  2025-03-05 → 2025-03-09")

	got := getItem(t, app, s.design.ID)
	assert.Equal(t, testutil.Day(2025, time.March, 5), got.StartDate)
	assert.Equal(t, testutil.Day(2025, time.March, 9), got.EndDate)
}

func TestItemCmd_MoveResizeEnd(t *testing.T) {
	app := testApp(t)
	s := seedTimeline(t, app)

	_, err := executeCmd(t, app, "item", "move", "3", "--group", "WEB01", "--end", "2025-03-18")
	require.NoError(t, err)

	got := getItem(t, app, s.build.ID)
	assert.Equal(t, testutil.Day(2025, time.March, 10), got.StartDate)
	assert.Equal(t, testutil.Day(2025, time.March, 18), got.EndDate)
}

func TestItemCmd_MoveMilestoneKeepsSingleDay(t *testing.T) {
	app := testApp(t)
	s := seedTimeline(t, app)

	_, err := executeCmd(t, app, "item", "move", "WEB01#4", "--end", "2025-03-26")
	require.NoError(t, err)

	got := getItem(t, app, s.launch.ID)
	assert.Equal(t, testutil.Day(2025, time.March, 26), got.StartDate)
	assert.Equal(t, got.StartDate, got.EndDate)
}

func TestItemCmd_MoveReparent(t *testing.T) {
	app := testApp(t)
	s := seedTimeline(t, app)

	_, err := executeCmd(t, app, "item", "move", "WEB01#4", "--parent", "WEB01#1")
	require.NoError(t, err)
	assert.Equal(t, s.stage.ID, getItem(t, app, s.launch.ID).Parent())

	_, err = executeCmd(t, app, "item", "move", "WEB01#4", "--top-level", "--by", "1")
	require.NoError(t, err)
	got := getItem(t, app, s.launch.ID)
	assert.Empty(t, got.Parent())
	assert.Equal(t, testutil.Day(2025, time.March, 25), got.StartDate)
}

func TestItemCmd_MoveRejects(t *testing.T) {
	app := testApp(t)
	seedTimeline(t, app)

	_, err := executeCmd(t, app, "item", "move", "WEB01#2")
	assert.ErrorContains(t, err, "nothing to change")

	_, err = executeCmd(t, app, "item", "move", "WEB01#2", "--by", "1", "--start", "2025-03-04")
	assert.ErrorContains(t, err, "--by cannot be combined")

	_, err = executeCmd(t, app, "item", "move", "WEB01#1", "--parent", "WEB01#1")
	assert.ErrorIs(t, err, service.ErrInvalidChange, "a stage cannot be re-parented")

	_, err = executeCmd(t, app, "item", "move", "WEB01#2", "--end", "2025-03-01")
	assert.ErrorIs(t, err, service.ErrInvalidChange)
}

func TestItemCmd_StatusRespectsPrerequisites(t *testing.T) {
	app := testApp(t)
	s := seedTimeline(t, app)

	_, err := executeCmd(t, app, "item", "status", "WEB01#3", "done")
	assert.ErrorIs(t, err, service.ErrUnfinishedPrerequisite)

	out, err := executeCmd(t, app, "item", "status", "WEB01#2", "DONE")
	require.NoError(t, err)
	assert.Contains(t, out, "Design")

	_, err = executeCmd(t, app, "item", "status", "WEB01#3", "done")
	require.NoError(t, err)
	got := getItem(t, app, s.build.ID)
	assert.Equal(t, domain.StatusDone, got.Status)
	assert.Equal(t, 1.0, got.Progress)
}

func TestItemCmd_RemoveConfirmation(t *testing.T) {
	app := testApp(t)
	s := seedTimeline(t, app)

	var asked string
	app.Confirm = func(title string) (bool, error) {
		asked = title
		return false, nil
	}
	out, err := executeCmd(t, app, "item", "remove", "WEB01#1")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.Contains(t, asked, "Phase 1")
	assert.Contains(t, asked, "children stay")
	getItem(t, app, s.stage.ID)

	app.Confirm = func(string) (bool, error) { return true, nil }
	_, err = executeCmd(t, app, "item", "remove", "WEB01#1")
	require.NoError(t, err)

	_, err = app.Items.GetByID(context.Background(), s.stage.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Empty(t, getItem(t, app, s.design.ID).Parent(), "children are detached, not deleted")
}

func TestItemCmd_RemoveYesSkipsPrompt(t *testing.T) {
	app := testApp(t)
	s := seedTimeline(t, app)

	out, err := executeCmd(t, app, "item", "remove", s.launch.ID[:8], "-y")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted Launch")
}

// --- Dependencies ---

func TestDepCmd_AddListRemove(t *testing.T) {
	app := testApp(t)
	seedTimeline(t, app)

	out, err := executeCmd(t, app, "dep", "add", "WEB01#4", "WEB01#3")
	require.NoError(t, err)
	assert.Contains(t, out, "Build → Launch")

	out, err = executeCmd(t, app, "dep", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "WEB01#2 Design")
	assert.Contains(t, out, "WEB01#4 Launch")

	_, err = executeCmd(t, app, "dep", "remove", "WEB01#3", "WEB01#2")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "dep", "remove", "WEB01#3", "WEB01#2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDepCmd_RejectsCycle(t *testing.T) {
	app := testApp(t)
	seedTimeline(t, app)

	_, err := executeCmd(t, app, "dep", "add", "WEB01#2", "WEB01#3")
	assert.ErrorIs(t, err, service.ErrCyclicDependency)
}

func TestDepCmd_ListEmpty(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "dep", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No dependencies.")
}

// --- Holidays ---

func TestHolidayCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "holiday", "add", "2025-03-17", "St", "Patrick's", "Day")
	require.NoError(t, err)
	assert.Contains(t, out, "Added holiday 2025-03-17 St Patrick's Day")

	out, err = executeCmd(t, app, "holiday", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "St Patrick's Day")
	assert.Contains(t, out, "Mon")

	_, err = executeCmd(t, app, "holiday", "remove", "2025-03-17")
	require.NoError(t, err)
	out, err = executeCmd(t, app, "holiday", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No holidays.")

	_, err = executeCmd(t, app, "holiday", "add", "someday")
	assert.ErrorContains(t, err, "invalid date")
}

// --- Import ---

func TestImportCmd(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "plan.yaml")
	content := `groups:
  - ref: web
    short_id: WEB01
    name: Website
items:
  - ref: d
    group_ref: web
    kind: task
    name: Design
    start: "2025-03-03"
    end: "2025-03-07"
  - ref: go
    group_ref: web
    kind: milestone
    name: Launch
    start: "2025-03-14"
    depends_on: [d]
holidays:
  - day: "2025-03-10"
    name: Offsite
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported group Website [WEB01]")
	assert.Contains(t, out, "2 items, 1 dependencies, 1 holidays")

	out, err = executeCmd(t, app, "item", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "WEB01#2")
}

func TestImportCmd_MissingFile(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "import", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// --- Static views ---

func TestShowCmd(t *testing.T) {
	app := testApp(t)
	seedTimeline(t, app)

	out, err := executeCmd(t, app, "show", "--columns", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "fit_all")
	assert.Contains(t, out, "▾ Phase 1")
	assert.Contains(t, out, "◆ Launch")
	assert.Contains(t, out, "DEPENDENCIES")
	assert.Contains(t, out, "Design → Build")

	out, err = executeCmd(t, app, "show", "--no-deps")
	require.NoError(t, err)
	assert.NotContains(t, out, "DEPENDENCIES")
}

func TestShowCmd_Empty(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "show")
	require.NoError(t, err)
	assert.Contains(t, out, "(no items)")
}

func TestWindowCmd(t *testing.T) {
	app := testApp(t)
	seedTimeline(t, app)

	out, err := executeCmd(t, app, "window", "--scale", "six_weeks")
	require.NoError(t, err)
	assert.Contains(t, out, "fixed_weeks(6)")
	assert.Contains(t, out, "Px/day")
}
