// Package interaction implements the pointer-driven drag state machine:
// move, resize, batch move and drop onto a stage, with a live preview that is
// kept apart from the committed item data.
package interaction

import (
	"fmt"
	"math"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/position"
)

// State is the engine's lifecycle state.
type State string

const (
	StateIdle       State = "idle"
	StateDragging   State = "dragging"
	StateCommitting State = "committing"
	StateCancelled  State = "cancelled"
)

// Control is the part of a rendered item a gesture starts on.
type Control string

const (
	ControlBody        Control = "body"
	ControlLeftHandle  Control = "left-handle"
	ControlRightHandle Control = "right-handle"
)

// ChangeKind maps a control to the gesture it starts.
func (c Control) ChangeKind() (domain.ChangeKind, bool) {
	switch c {
	case ControlBody:
		return domain.ChangeMove, true
	case ControlLeftHandle:
		return domain.ChangeResizeStart, true
	case ControlRightHandle:
		return domain.ChangeResizeEnd, true
	default:
		return "", false
	}
}

// DefaultClickThreshold is the pointer travel, in pixels, below which a
// gesture is treated as a click.
const DefaultClickThreshold = 4.0

// Config tunes eligibility and click detection.
type Config struct {
	ClickThreshold float64
	AllowCompleted bool
}

func DefaultConfig() Config {
	return Config{ClickThreshold: DefaultClickThreshold}
}

// Pointer is one pointer event in surface coordinates.
type Pointer struct {
	ID     int
	X, Y   float64
	Toggle bool // selection-toggle modifier held
}

// StageLocator resolves a y coordinate to the stage owning that row.
type StageLocator interface {
	StageAt(y float64) (stageID, groupID string, ok bool)
}

// BeginRequest carries everything a session snapshots at pointer-down.
type BeginRequest struct {
	ItemID     string
	Control    Control
	Pointer    Pointer
	Items      map[string]domain.TimelineItem
	Selection  []string
	Window     domain.DateWindow
	PixelWidth float64
	Stages     StageLocator
}

// Preview is the live, uncommitted geometry of a gesture.
type Preview struct {
	Active      bool
	ItemID      string
	Kind        domain.ChangeKind
	DeltaDays   int
	Moved       bool
	Spans       map[string]Span
	DropStageID string
}

// Span returns the preview span of id, if it takes part in the gesture.
func (p Preview) Span(id string) (Span, bool) {
	s, ok := p.Spans[id]
	return s, ok
}

type OutcomeKind string

const (
	OutcomeNone   OutcomeKind = "none"
	OutcomeClick  OutcomeKind = "click"
	OutcomeCommit OutcomeKind = "commit"
)

// Outcome is what a finished gesture produced.
type Outcome struct {
	Kind    OutcomeKind
	ItemID  string
	Toggle  bool
	Batch   bool
	Intents []domain.ChangeIntent
}

// TransitionFunc observes state changes.
type TransitionFunc func(from, to State, itemID string)

// Engine runs at most one drag session at a time.
type Engine struct {
	cfg          Config
	state        State
	sess         *session
	onTransition TransitionFunc
}

// NewEngine creates an idle engine.
func NewEngine(cfg Config) *Engine {
	if cfg.ClickThreshold <= 0 {
		cfg.ClickThreshold = DefaultClickThreshold
	}
	return &Engine{cfg: cfg, state: StateIdle}
}

// OnTransition installs a transition observer.
func (e *Engine) OnTransition(fn TransitionFunc) { e.onTransition = fn }

func (e *Engine) State() State { return e.state }

// Active reports whether a drag session is open.
func (e *Engine) Active() bool { return e.sess != nil }

// ActiveItemID is the dragged item, or empty when idle.
func (e *Engine) ActiveItemID() string {
	if e.sess == nil {
		return ""
	}
	return e.sess.itemID
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Eligible reports whether item may start a gesture.
func (e *Engine) Eligible(item domain.TimelineItem) bool {
	return e.cfg.AllowCompleted || !item.IsDone()
}

// Begin opens a session. It rejects a second gesture while one is active,
// ineligible items, unrecognised controls and milestone resizes.
func (e *Engine) Begin(req BeginRequest) error {
	if e.sess != nil {
		return ErrBusy
	}
	item, ok := req.Items[req.ItemID]
	if !ok {
		return fmt.Errorf("begin %s: %w", req.ItemID, ErrUnknownItem)
	}
	if !e.Eligible(item) {
		return fmt.Errorf("begin %s: %w", req.ItemID, ErrNotEligible)
	}
	kind, ok := req.Control.ChangeKind()
	if !ok {
		return fmt.Errorf("begin %s with %q: %w", req.ItemID, req.Control, ErrUnknownControl)
	}
	if item.Kind == domain.KindMilestone && kind != domain.ChangeMove {
		return fmt.Errorf("begin %s: %w", req.ItemID, ErrResizeUnsupported)
	}
	ppd := position.PixelsPerDay(req.Window, req.PixelWidth)
	if ppd <= 0 {
		return fmt.Errorf("begin %s: empty drawing area: %w", req.ItemID, ErrNotEligible)
	}

	e.sess = newSession(req, item, kind, ppd, e.batchMembers(req, item, kind))
	e.transition(StateDragging)
	return nil
}

// batchMembers returns the other selected items that move with item.
func (e *Engine) batchMembers(req BeginRequest, item domain.TimelineItem, kind domain.ChangeKind) []domain.TimelineItem {
	if kind != domain.ChangeMove || len(req.Selection) < 2 {
		return nil
	}
	inSelection := false
	for _, id := range req.Selection {
		if id == item.ID {
			inSelection = true
			break
		}
	}
	if !inSelection {
		return nil
	}
	var out []domain.TimelineItem
	for _, id := range req.Selection {
		other, ok := req.Items[id]
		if !ok || id == item.ID || !e.Eligible(other) {
			continue
		}
		out = append(out, other)
	}
	return out
}

// Update recomputes the preview from the anchor. Events from a pointer other
// than the one that started the session are ignored.
func (e *Engine) Update(p Pointer) Preview {
	if e.sess == nil {
		return Preview{}
	}
	if p.ID == e.sess.pointerID {
		e.sess.track(p, e.cfg.ClickThreshold)
	}
	return e.sess.preview()
}

// Preview returns the current preview without processing an event.
func (e *Engine) Preview() Preview {
	if e.sess == nil {
		return Preview{}
	}
	return e.sess.preview()
}

// Retarget swaps the stage locator of the open session, used when rows are
// laid out again mid-gesture.
func (e *Engine) Retarget(stages StageLocator) {
	if e.sess != nil {
		e.sess.stages = stages
	}
}

// End finishes the session at p and reports a click, a commit or nothing.
func (e *Engine) End(p Pointer) Outcome {
	if e.sess == nil || p.ID != e.sess.pointerID {
		return Outcome{Kind: OutcomeNone}
	}
	s := e.sess
	s.track(p, e.cfg.ClickThreshold)
	e.transition(StateCommitting)

	out := s.outcome(p.Toggle)
	e.sess = nil
	e.transition(StateIdle)
	return out
}

// Cancel discards the session. It reports whether one was open.
func (e *Engine) Cancel() bool {
	if e.sess == nil {
		return false
	}
	e.transition(StateCancelled)
	e.sess = nil
	e.transition(StateIdle)
	return true
}

// LoseCapture handles the surface losing pointer capture.
func (e *Engine) LoseCapture() bool { return e.Cancel() }

func (e *Engine) transition(to State) {
	from := e.state
	e.state = to
	if e.onTransition == nil {
		return
	}
	id := ""
	if e.sess != nil {
		id = e.sess.itemID
	}
	e.onTransition(from, to, id)
}

// DeltaDays converts a pixel delta to whole days, truncating toward zero.
func DeltaDays(dx, pixelsPerDay float64) int {
	if pixelsPerDay <= 0 {
		return 0
	}
	return int(math.Trunc(dx / pixelsPerDay))
}
