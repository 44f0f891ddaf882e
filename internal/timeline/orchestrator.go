// Package timeline composes the window, layout, dependency, selection and
// interaction components into one per-frame view of a chart and routes
// pointer events between them.
package timeline

import (
	"errors"
	"time"

	"github.com/alexanderramin/gantt/internal/depgraph"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/hierarchy"
	"github.com/alexanderramin/gantt/internal/interaction"
	"github.com/alexanderramin/gantt/internal/position"
	"github.com/alexanderramin/gantt/internal/selection"
	"github.com/alexanderramin/gantt/internal/window"
)

// Options configures an Orchestrator.
type Options struct {
	Scale       window.ScaleMode
	PixelWidth  float64
	Heights     hierarchy.RowHeights
	Position    position.Options
	HandleWidth float64
	Interaction interaction.Config

	// Controlled selection and expansion are owned by the host: gestures
	// only propose changes through the callbacks.
	ControlledSelection bool
	ControlledExpansion bool

	Clock    func() time.Time
	Observer Observer
}

// DefaultOptions returns the options used by the terminal and static views.
func DefaultOptions() Options {
	return Options{
		Scale:       window.FitAll,
		PixelWidth:  1000,
		Heights:     hierarchy.DefaultRowHeights(),
		Position:    position.DefaultOptions(),
		HandleWidth: DefaultHandleWidth,
		Interaction: interaction.DefaultConfig(),
	}
}

// Callbacks are the host's hooks. Every field is optional. OnCommit is
// fire-and-forget: a rejected change is corrected by the next SetItems.
type Callbacks struct {
	OnCommit          func(intents []domain.ChangeIntent)
	OnSelectionChange func(ids []string)
	OnItemActivate    func(itemID string)
	OnToggleStage     func(stageID string)
}

// Frame is everything a surface needs to draw one state of the chart.
type Frame struct {
	Window        domain.DateWindow
	Ticks         []domain.Tick
	Rows          []hierarchy.Row
	Items         map[string]domain.TimelineItem
	Positions     map[string]domain.Position
	Edges         []depgraph.PositionedEdge
	Preview       interaction.Preview
	DropTarget    string
	Selection     []string
	ContentHeight float64
	PixelWidth    float64
	PixelsPerDay  float64
	Today         time.Time
	TodayVisible  bool
	TodayOffset   float64
}

// Selected reports whether id is in the frame's selection.
func (f Frame) Selected(id string) bool {
	for _, s := range f.Selection {
		if s == id {
			return true
		}
	}
	return false
}

// pendingClick tracks a pointer-down on an item that cannot be dragged, so
// that releasing it still counts as a click.
type pendingClick struct {
	itemID    string
	pointerID int
	x, y      float64
	moved     bool
}

// Orchestrator owns the chart state. It is not safe for concurrent use;
// callers drive it from a single event loop.
type Orchestrator struct {
	opts Options
	cb   Callbacks
	obs  Observer

	items    []domain.TimelineItem
	byID     map[string]domain.TimelineItem
	groups   []domain.Group
	holidays window.HolidayCalendar

	tracker *window.Tracker
	graph   *depgraph.Graph
	expand  *hierarchy.ExpandState
	layout  *hierarchy.Layout
	sel     *selection.Manager
	engine  *interaction.Engine
	pending *pendingClick

	win      domain.DateWindow
	ticksFor domain.DateWindow
	ticks    []domain.Tick
	frame    Frame
}

// New creates an orchestrator with no items.
func New(opts Options, cb Callbacks) *Orchestrator {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Observer == nil {
		opts.Observer = NoopObserver{}
	}
	if opts.Heights == (hierarchy.RowHeights{}) {
		opts.Heights = hierarchy.DefaultRowHeights()
	}
	if opts.Scale.Kind == "" {
		opts.Scale = window.FitAll
	}
	o := &Orchestrator{
		opts:     opts,
		cb:       cb,
		obs:      opts.Observer,
		byID:     map[string]domain.TimelineItem{},
		holidays: window.NoHolidays,
		tracker:  window.NewTracker(opts.Scale),
		graph:    depgraph.New(),
		expand:   hierarchy.NewExpandState(),
		engine:   interaction.NewEngine(opts.Interaction),
	}
	o.engine.OnTransition(o.obs.ObserveTransition)
	if opts.ControlledSelection {
		o.sel = selection.NewControlled(nil, o.selectionChanged)
	} else {
		o.sel = selection.New(o.selectionChanged)
	}
	o.relayout()
	return o
}

func (o *Orchestrator) selectionChanged(ids []string) {
	if o.cb.OnSelectionChange != nil {
		o.cb.OnSelectionChange(ids)
	}
	o.frame.Selection = o.sel.IDs()
}

// Frame returns the current frame.
func (o *Orchestrator) Frame() Frame { return o.frame }

// Engine exposes the interaction engine, mainly for state inspection.
func (o *Orchestrator) Engine() *interaction.Engine { return o.engine }

// Graph exposes the dependency graph built from the current items.
func (o *Orchestrator) Graph() *depgraph.Graph { return o.graph }

// Layout exposes the current row layout.
func (o *Orchestrator) Layout() *hierarchy.Layout { return o.layout }

// Scale returns the active scale mode.
func (o *Orchestrator) Scale() window.ScaleMode { return o.tracker.Mode() }

// SetItems replaces the item collection. An open drag session is not
// disturbed: it keeps the geometry it captured at pointer-down.
func (o *Orchestrator) SetItems(items []domain.TimelineItem) {
	o.items = append([]domain.TimelineItem(nil), items...)
	o.byID = domain.IndexItems(o.items)
	o.graph = depgraph.Build(o.items)
	if !o.sel.Controlled() {
		o.sel.Retain(func(id string) bool {
			_, ok := o.byID[id]
			return ok
		})
	}
	o.relayout()
}

// SetGroups replaces the group metadata used for header order and names.
func (o *Orchestrator) SetGroups(groups []domain.Group) {
	o.groups = append([]domain.Group(nil), groups...)
	o.relayout()
}

// SetHolidays replaces the holiday calendar used for ticks.
func (o *Orchestrator) SetHolidays(cal window.HolidayCalendar) {
	if cal == nil {
		cal = window.NoHolidays
	}
	o.holidays = cal
	o.ticks = nil
	o.relayout()
}

// SetScale changes the zoom and recomputes the window from scratch.
func (o *Orchestrator) SetScale(mode window.ScaleMode) {
	o.tracker.SetMode(mode)
	o.relayout()
}

// SetPixelWidth changes the drawing width.
func (o *Orchestrator) SetPixelWidth(width float64) {
	o.opts.PixelWidth = width
	o.relayout()
}

// ToggleStage reports the toggle to the host and, unless expansion is
// controlled, collapses or expands the stage.
func (o *Orchestrator) ToggleStage(stageID string) {
	if o.cb.OnToggleStage != nil {
		o.cb.OnToggleStage(stageID)
	}
	if o.opts.ControlledExpansion {
		return
	}
	o.expand.Toggle(stageID)
	o.relayout()
}

// SetExpanded replaces the collapsed stage set.
func (o *Orchestrator) SetExpanded(collapsed []string) {
	o.expand = hierarchy.ExpandStateFrom(collapsed)
	o.relayout()
}

// Collapsed lists the collapsed stages.
func (o *Orchestrator) Collapsed() []string { return o.expand.Collapsed() }

// SetSelection replaces the selection. In controlled mode this is how the
// host applies a proposal.
func (o *Orchestrator) SetSelection(ids []string) {
	o.sel.Replace(ids)
	o.frame.Selection = o.sel.IDs()
}

// Selection returns the selected ids.
func (o *Orchestrator) Selection() []string { return o.sel.IDs() }

// AddDependency records that itemID depends on dependsOnID, refusing edges
// that would close a cycle. The host persists accepted edges.
func (o *Orchestrator) AddDependency(itemID, dependsOnID string) bool {
	if !o.graph.AddDependency(itemID, dependsOnID) {
		o.obs.ObserveRejected("add_dependency", itemID, errors.New("would create a cycle with "+dependsOnID))
		return false
	}
	for i := range o.items {
		if o.items[i].ID == itemID && !o.items[i].DependsOn(dependsOnID) {
			o.items[i].Dependencies = append(append([]string(nil), o.items[i].Dependencies...), dependsOnID)
			o.byID[itemID] = o.items[i]
		}
	}
	o.refresh()
	return true
}

// PointerDown starts a gesture on the item under p. Pressing empty space
// clears the selection; a second pointer during a gesture is ignored.
func (o *Orchestrator) PointerDown(p interaction.Pointer) {
	if o.engine.Active() || o.pending != nil {
		return
	}
	hit, ok := o.HitTest(p.X, p.Y)
	if !ok {
		o.sel.Clear()
		return
	}
	err := o.engine.Begin(interaction.BeginRequest{
		ItemID:     hit.ItemID,
		Control:    hit.Control,
		Pointer:    p,
		Items:      o.byID,
		Selection:  o.sel.IDs(),
		Window:     o.frame.Window,
		PixelWidth: o.opts.PixelWidth,
		Stages:     o.layout,
	})
	if err != nil {
		o.obs.ObserveRejected("begin", hit.ItemID, err)
		o.pending = &pendingClick{itemID: hit.ItemID, pointerID: p.ID, x: p.X, y: p.Y}
		return
	}
	o.refresh()
}

// PointerMove updates the live preview.
func (o *Orchestrator) PointerMove(p interaction.Pointer) {
	if o.pending != nil {
		o.pending.track(p, o.engine.Config().ClickThreshold)
		return
	}
	if !o.engine.Active() {
		return
	}
	o.engine.Update(p)
	o.refresh()
}

// PointerUp finishes the gesture: a click toggles the selection (with the
// modifier) or activates the item; a drag hands its intents to OnCommit.
func (o *Orchestrator) PointerUp(p interaction.Pointer) {
	if pc := o.pending; pc != nil {
		if pc.pointerID != p.ID {
			return
		}
		o.pending = nil
		pc.track(p, o.engine.Config().ClickThreshold)
		if !pc.moved {
			o.click(pc.itemID, p.Toggle)
		}
		return
	}

	out := o.engine.End(p)
	switch out.Kind {
	case interaction.OutcomeClick:
		o.click(out.ItemID, out.Toggle)
	case interaction.OutcomeCommit:
		o.obs.ObserveCommit(out.Intents, out.Batch)
		if o.cb.OnCommit != nil {
			o.cb.OnCommit(out.Intents)
		}
		if out.Batch {
			o.sel.Clear()
		}
	case interaction.OutcomeNone:
	}
	o.refresh()
}

func (o *Orchestrator) click(itemID string, toggle bool) {
	if toggle {
		o.sel.Toggle(itemID)
		return
	}
	if o.cb.OnItemActivate != nil {
		o.cb.OnItemActivate(itemID)
	}
}

// PointerCancel abandons the gesture without emitting anything.
func (o *Orchestrator) PointerCancel() { o.Discard() }

// LoseCapture abandons the gesture when the surface loses the pointer.
func (o *Orchestrator) LoseCapture() {
	o.pending = nil
	if o.engine.LoseCapture() {
		o.refresh()
	}
}

// Discard drops any open gesture and its preview.
func (o *Orchestrator) Discard() {
	o.pending = nil
	if o.engine.Cancel() {
		o.refresh()
	}
}

func (pc *pendingClick) track(p interaction.Pointer, threshold float64) {
	if p.ID != pc.pointerID {
		return
	}
	dx, dy := p.X-pc.x, p.Y-pc.y
	if dx*dx+dy*dy > threshold*threshold {
		pc.moved = true
	}
}

// relayout recomputes the window and rows, then the frame.
func (o *Orchestrator) relayout() {
	today := domain.Day(o.opts.Clock())
	o.win, _ = o.tracker.Update(o.items, today)
	o.layout = hierarchy.Build(o.items, o.groups, o.expand, o.opts.Heights)
	o.engine.Retarget(o.layout)
	o.refresh()
}

// refresh recomputes the per-frame geometry from the current layout and the
// engine's preview.
func (o *Orchestrator) refresh() {
	w := o.win
	if o.ticks == nil || !o.ticksFor.Equal(w) {
		o.ticks = window.Ticks(w, o.holidays)
		o.ticksFor = w
	}

	pw := o.opts.PixelWidth
	preview := o.engine.Preview()
	positions := make(map[string]domain.Position, o.layout.Len())
	for _, row := range o.layout.Rows() {
		if row.Kind != hierarchy.RowItem {
			continue
		}
		it, ok := o.byID[row.ItemID]
		if !ok {
			continue
		}
		start, end := it.StartDate, it.EndDate
		if sp, ok := preview.Span(it.ID); ok {
			start, end = sp.Start, sp.End
		}
		if pos, ok := position.SpanOf(it.Kind, start, end, w, pw, row.Top, row.Height, o.opts.Position); ok {
			positions[it.ID] = pos
		}
	}

	today := domain.Day(o.opts.Clock())
	o.frame = Frame{
		Window:        w,
		Ticks:         o.ticks,
		Rows:          o.layout.Rows(),
		Items:         o.byID,
		Positions:     positions,
		Edges:         o.graph.EdgesWithPositions(positions),
		Preview:       preview,
		DropTarget:    preview.DropStageID,
		Selection:     o.sel.IDs(),
		ContentHeight: o.layout.ContentHeight(),
		PixelWidth:    pw,
		PixelsPerDay:  position.PixelsPerDay(w, pw),
		Today:         today,
		TodayVisible:  w.Contains(today),
		TodayOffset:   position.DateToOffset(today, w, pw),
	}
}
