package interaction

import (
	"math"

	"github.com/alexanderramin/gantt/internal/domain"
)

// session is the state of one open gesture. It snapshots the original
// geometry of every participating item at Begin and never reads the live
// item collection again, so refreshes cannot disturb it.
type session struct {
	itemID    string
	groupID   string
	itemKind  domain.ItemKind
	parentID  string
	kind      domain.ChangeKind
	pointerID int

	anchorX, anchorY float64
	window           domain.DateWindow
	pixelsPerDay     float64
	stages           StageLocator

	order     []string // dragged item first, then batch members
	originals map[string]Span

	moved bool
	delta int
	spans map[string]Span
	drop  string
}

func newSession(req BeginRequest, item domain.TimelineItem, kind domain.ChangeKind, ppd float64, batch []domain.TimelineItem) *session {
	s := &session{
		itemID:       item.ID,
		groupID:      item.GroupID,
		itemKind:     item.Kind,
		parentID:     item.Parent(),
		kind:         kind,
		pointerID:    req.Pointer.ID,
		anchorX:      req.Pointer.X,
		anchorY:      req.Pointer.Y,
		window:       req.Window,
		pixelsPerDay: ppd,
		stages:       req.Stages,
		originals:    make(map[string]Span, len(batch)+1),
	}
	s.add(item)
	for _, it := range batch {
		s.add(it)
	}
	s.spans = s.cloneOriginals()
	return s
}

func (s *session) add(it domain.TimelineItem) {
	s.order = append(s.order, it.ID)
	s.originals[it.ID] = Span{Start: it.StartDate, End: it.EndDate}
}

func (s *session) cloneOriginals() map[string]Span {
	out := make(map[string]Span, len(s.originals))
	for id, sp := range s.originals {
		out[id] = sp
	}
	return out
}

// track recomputes everything from the anchor and the originals.
func (s *session) track(p Pointer, threshold float64) {
	dx := p.X - s.anchorX
	dy := p.Y - s.anchorY
	if !s.moved && math.Hypot(dx, dy) > threshold {
		s.moved = true
	}
	if !s.moved {
		return
	}

	s.delta = DeltaDays(dx, s.pixelsPerDay)
	for _, id := range s.order {
		s.spans[id] = Apply(s.kind, s.originals[id], s.delta, s.window)
	}
	s.drop = s.dropTarget(p.Y)
}

// dropTarget hit-tests y against stage rows. Only non-stage items moved by
// their body can be dropped, and only onto a stage of their own group.
func (s *session) dropTarget(y float64) string {
	if s.stages == nil || s.kind != domain.ChangeMove || s.itemKind == domain.KindStage {
		return ""
	}
	stageID, groupID, ok := s.stages.StageAt(y)
	if !ok || groupID != s.groupID || stageID == s.itemID {
		return ""
	}
	return stageID
}

func (s *session) preview() Preview {
	spans := make(map[string]Span, len(s.spans))
	for id, sp := range s.spans {
		spans[id] = sp
	}
	return Preview{
		Active:      true,
		ItemID:      s.itemID,
		Kind:        s.kind,
		DeltaDays:   s.delta,
		Moved:       s.moved,
		Spans:       spans,
		DropStageID: s.drop,
	}
}

func (s *session) outcome(toggle bool) Outcome {
	if !s.moved {
		return Outcome{Kind: OutcomeClick, ItemID: s.itemID, Toggle: toggle}
	}

	var intents []domain.ChangeIntent
	for _, id := range s.order {
		sp := s.spans[id]
		if sp.Equal(s.originals[id]) {
			continue
		}
		intents = append(intents, domain.ChangeIntent{
			ItemID:   id,
			Kind:     s.kind,
			NewStart: sp.Start,
			NewEnd:   sp.End,
		})
	}
	if s.drop != "" && s.drop != s.parentID {
		sp := s.spans[s.itemID]
		intents = append(intents, domain.ChangeIntent{
			ItemID:      s.itemID,
			Kind:        domain.ChangeReparent,
			NewStart:    sp.Start,
			NewEnd:      sp.End,
			NewParentID: s.drop,
		})
	}
	if len(intents) == 0 {
		return Outcome{Kind: OutcomeNone, ItemID: s.itemID}
	}
	return Outcome{
		Kind:    OutcomeCommit,
		ItemID:  s.itemID,
		Batch:   len(s.order) > 1,
		Intents: intents,
	}
}
