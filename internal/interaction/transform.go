package interaction

import (
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// Span is an inclusive [Start, End] pair of days.
type Span struct {
	Start time.Time
	End   time.Time
}

// Days is End minus Start in whole days.
func (s Span) Days() int { return domain.DaysBetween(s.Start, s.End) }

// Equal compares both ends by calendar day.
func (s Span) Equal(o Span) bool {
	return domain.SameDay(s.Start, o.Start) && domain.SameDay(s.End, o.End)
}

// Move shifts both ends by delta days. The delta is clamped so the span stays
// inside w; a side that already lies outside w is not pulled in, so the span
// never jumps and its duration is always preserved.
func Move(s Span, delta int, w domain.DateWindow) Span {
	lo := min(0, domain.DaysBetween(s.Start, w.Start))
	hi := max(0, domain.DaysBetween(s.End, w.End))
	d := min(max(delta, lo), hi)
	return Span{Start: domain.AddDays(s.Start, d), End: domain.AddDays(s.End, d)}
}

// ResizeStart shifts the start by delta days. The start cannot cross
// end - 1 day and cannot leave w unless it was already outside. A span that is
// already shorter than a day keeps its start rather than growing backwards.
func ResizeStart(s Span, delta int, w domain.DateWindow) Span {
	if delta == 0 {
		return s
	}
	start := domain.AddDays(s.Start, delta)
	start = domain.MaxDay(start, domain.MinDay(w.Start, s.Start))
	start = domain.MinDay(start, domain.MaxDay(s.Start, domain.AddDays(s.End, -1)))
	return Span{Start: start, End: s.End}
}

// ResizeEnd shifts the end by delta days. The end cannot precede
// start + 1 day and cannot leave w unless it was already outside. A span that
// is already shorter than a day keeps its end rather than growing forwards.
func ResizeEnd(s Span, delta int, w domain.DateWindow) Span {
	if delta == 0 {
		return s
	}
	end := domain.AddDays(s.End, delta)
	end = domain.MinDay(end, domain.MaxDay(w.End, s.End))
	end = domain.MaxDay(end, domain.MinDay(s.End, domain.AddDays(s.Start, 1)))
	return Span{Start: s.Start, End: end}
}

// Apply dispatches to the transform for kind. Re-parenting leaves dates alone.
func Apply(kind domain.ChangeKind, s Span, delta int, w domain.DateWindow) Span {
	switch kind {
	case domain.ChangeMove:
		return Move(s, delta, w)
	case domain.ChangeResizeStart:
		return ResizeStart(s, delta, w)
	case domain.ChangeResizeEnd:
		return ResizeEnd(s, delta, w)
	case domain.ChangeReparent:
		return s
	default:
		return s
	}
}
