package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/hierarchy"
	"github.com/alexanderramin/gantt/internal/interaction"
	"github.com/alexanderramin/gantt/internal/service"
	"github.com/alexanderramin/gantt/internal/timeline"
	"github.com/alexanderramin/gantt/internal/window"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// mousePointerID identifies the terminal mouse; a terminal has one pointer.
const mousePointerID = 1

type timelineKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Fit      key.Binding
	SixWeeks key.Binding
	Quarter  key.Binding
	HalfYear key.Binding
	Today    key.Binding
	Edges    key.Binding
	Cancel   key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultTimelineKeys() timelineKeyMap {
	return timelineKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "fold stage")),
		Fit:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "fit all")),
		SixWeeks: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "6 weeks")),
		Quarter:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "quarter")),
		HalfYear: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "half year")),
		Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "center today")),
		Edges:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dependencies")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k timelineKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Fit, k.SixWeeks, k.Quarter, k.HalfYear, k.Cancel, k.Help, k.Quit}
}

func (k timelineKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Fit, k.SixWeeks, k.Quarter, k.HalfYear, k.Today},
		{k.Edges, k.Cancel, k.Reload},
		{k.Help, k.Quit},
	}
}

type snapshotMsg struct{ snap *service.Snapshot }

type loadFailedMsg struct{ err error }

type changesSavedMsg struct{ items []*domain.TimelineItem }

type saveFailedMsg struct{ err error }

// timelineModel is the interactive chart. Mouse events drive the
// orchestrator directly; committed gestures are saved through the timeline
// service and the chart is reloaded from storage afterwards.
type timelineModel struct {
	app  *App
	orch *timeline.Orchestrator
	keys timelineKeyMap
	help help.Model

	groups    map[string]domain.Group
	cursor    string
	showEdges bool
	pending   []domain.ChangeIntent
	status    string
	err       error
}

func newTimelineModel(app *App, columns int) *timelineModel {
	m := &timelineModel{
		app:    app,
		keys:   defaultTimelineKeys(),
		help:   help.New(),
		groups: map[string]domain.Group{},
	}
	m.orch = timeline.New(terminalOptions(app.Config, columns, app), timeline.Callbacks{
		OnCommit: func(intents []domain.ChangeIntent) {
			m.pending = append(m.pending, intents...)
		},
		OnSelectionChange: func(ids []string) {
			m.status = fmt.Sprintf("%d selected", len(ids))
		},
		OnItemActivate: m.activate,
	})
	return m
}

func (m *timelineModel) Init() tea.Cmd {
	return m.load()
}

func (m *timelineModel) load() tea.Cmd {
	svc := m.app.Timeline
	return func() tea.Msg {
		snap, err := svc.Load(context.Background())
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return snapshotMsg{snap: snap}
	}
}

func (m *timelineModel) save(intents []domain.ChangeIntent) tea.Cmd {
	svc := m.app.Timeline
	return func() tea.Msg {
		items, err := svc.ApplyChanges(context.Background(), intents)
		if err != nil {
			return saveFailedMsg{err: err}
		}
		return changesSavedMsg{items: items}
	}
}

func (m *timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.orch.SetPixelWidth(float64(chartColumns(msg.Width)))
		return m, nil

	case snapshotMsg:
		m.groups = make(map[string]domain.Group, len(msg.snap.Groups))
		for _, g := range msg.snap.Groups {
			m.groups[g.ID] = g
		}
		applySnapshot(m.orch, msg.snap)
		m.ensureCursor()
		return m, nil

	case loadFailedMsg:
		m.err = msg.err
		return m, nil

	case changesSavedMsg:
		m.err = nil
		m.status = fmt.Sprintf("saved %d item(s)", len(msg.items))
		return m, m.load()

	case saveFailedMsg:
		// The chart still shows the stored dates; reload to be sure.
		m.err = fmt.Errorf("saving changes: %w", msg.err)
		return m, m.load()

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *timelineModel) chart() formatter.ChartOptions {
	f := m.orch.Frame()
	return formatter.ChartOptions{
		Title:     formatter.WindowTitle(f.Window, m.orch.Scale()),
		ShowEdges: m.showEdges,
		Cursor:    m.cursor,
	}
}

// pointer maps a terminal cell to the centre of the matching chart pixel.
func (m *timelineModel) pointer(msg tea.MouseMsg) interaction.Pointer {
	opts := m.chart()
	return interaction.Pointer{
		ID:     mousePointerID,
		X:      float64(msg.X-opts.ChartLeft()) + 0.5,
		Y:      float64(msg.Y-opts.ChartTop()) + 0.5,
		Toggle: msg.Ctrl || msg.Alt || msg.Shift,
	}
}

func (m *timelineModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	p := m.pointer(msg)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if p.X < 0 {
			// Label column: move the cursor instead of starting a gesture.
			if row, ok := m.orch.Layout().RowAt(p.Y); ok && row.ItemID != "" {
				m.cursor = row.ItemID
			}
			return nil
		}
		m.orch.PointerDown(p)
	case tea.MouseActionMotion:
		m.orch.PointerMove(p)
	case tea.MouseActionRelease:
		m.orch.PointerUp(p)
	}
	return m.flush()
}

// flush saves the intents committed since the last event.
func (m *timelineModel) flush() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	intents := m.pending
	m.pending = nil
	m.status = "saving…"
	return m.save(intents)
}

func (m *timelineModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.orch.Discard()
		m.status = ""
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Toggle):
		m.toggleAtCursor()
	case key.Matches(msg, m.keys.Fit):
		m.orch.SetScale(window.FitAll)
	case key.Matches(msg, m.keys.SixWeeks):
		m.orch.SetScale(window.SixWeeks)
	case key.Matches(msg, m.keys.Quarter):
		m.orch.SetScale(window.Quarter)
	case key.Matches(msg, m.keys.HalfYear):
		m.orch.SetScale(window.HalfYear)
	case key.Matches(msg, m.keys.Today):
		m.orch.SetScale(window.AutoCenterToday)
	case key.Matches(msg, m.keys.Edges):
		m.showEdges = !m.showEdges
	case key.Matches(msg, m.keys.Reload):
		return m, m.load()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *timelineModel) itemRows() []hierarchy.Row {
	var rows []hierarchy.Row
	for _, r := range m.orch.Frame().Rows {
		if r.ItemID != "" {
			rows = append(rows, r)
		}
	}
	return rows
}

func (m *timelineModel) moveCursor(delta int) {
	rows := m.itemRows()
	if len(rows) == 0 {
		m.cursor = ""
		return
	}
	i := -1
	for j, r := range rows {
		if r.ItemID == m.cursor {
			i = j
			break
		}
	}
	i += delta
	if i < 0 {
		i = 0
	}
	if i >= len(rows) {
		i = len(rows) - 1
	}
	m.cursor = rows[i].ItemID
}

// ensureCursor keeps the cursor on a visible row.
func (m *timelineModel) ensureCursor() {
	rows := m.itemRows()
	for _, r := range rows {
		if r.ItemID == m.cursor {
			return
		}
	}
	m.cursor = ""
	if len(rows) > 0 {
		m.cursor = rows[0].ItemID
	}
}

// toggleAtCursor folds the stage under the cursor, or the stage that owns
// the cursor row.
func (m *timelineModel) toggleAtCursor() {
	row, ok := m.orch.Layout().Row(m.cursor)
	if !ok || row.StageID == "" {
		return
	}
	m.cursor = row.StageID
	m.orch.ToggleStage(row.StageID)
}

func (m *timelineModel) activate(itemID string) {
	m.cursor = itemID
	it, ok := m.orch.Frame().Items[itemID]
	if !ok {
		return
	}
	var g *domain.Group
	if grp, ok := m.groups[it.GroupID]; ok {
		g = &grp
	}
	m.status = fmt.Sprintf("%s %s  %s  %s", formatter.ItemRef(g, &it), it.Name,
		formatter.DayRange(it.StartDate, it.EndDate), formatter.StatusPill(it.Status))
}

func (m *timelineModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.RenderChart(m.orch.Frame(), m.chart()))
	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
	case m.status != "":
		b.WriteString(formatter.Dim(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive timeline (drag bars with the mouse)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}
}

func runTUI(cmd *cobra.Command, app *App) error {
	m := newTimelineModel(app, defaultColumns)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	_, err := p.Run()
	return err
}
