// Package window derives the visible date range of the timeline and the tick
// marks along its axis.
package window

import (
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

const (
	// MinPadDays is the smallest padding added on each side in fit-all mode.
	MinPadDays = 7

	// padDivisor sets padding to span/padDivisor days for long projects.
	padDivisor = 20

	// emptyHalfSpanDays is the half-width of the window shown when there
	// are no items at all.
	emptyHalfSpanDays = 21
)

// Compute returns the window for items under mode. When prev is non-nil the
// established window is only grown to admit items outside it; a fresh window
// is computed only when prev is nil (first layout or an explicit zoom).
func Compute(items []domain.TimelineItem, prev *domain.DateWindow, mode ScaleMode, today time.Time) domain.DateWindow {
	if prev != nil {
		return Grow(*prev, items)
	}
	return fresh(items, mode, domain.Day(today))
}

func fresh(items []domain.TimelineItem, mode ScaleMode, today time.Time) domain.DateWindow {
	switch mode.Kind {
	case ScaleFixedWeeks:
		return fixed(items, mode.Weeks, today)
	case ScaleAutoCenterToday:
		return centeredOnToday(items, today)
	case ScaleFitAll:
		return fitAll(items, today)
	default:
		return fitAll(items, today)
	}
}

// Padding returns the number of days added on each side of a span.
func Padding(spanDays int) int {
	return max(MinPadDays, spanDays/padDivisor)
}

// Bounds returns the earliest start and latest end across items.
func Bounds(items []domain.TimelineItem) (start, end time.Time, ok bool) {
	for _, it := range items {
		s, e := domain.Day(it.StartDate), domain.Day(it.EndDate)
		if e.Before(s) {
			s, e = e, s
		}
		if !ok {
			start, end, ok = s, e, true
			continue
		}
		start = domain.MinDay(start, s)
		end = domain.MaxDay(end, e)
	}
	return start, end, ok
}

func fitAll(items []domain.TimelineItem, today time.Time) domain.DateWindow {
	start, end, ok := Bounds(items)
	if !ok {
		return domain.NewDateWindow(domain.AddDays(today, -MinPadDays), domain.AddDays(today, MinPadDays))
	}
	pad := Padding(domain.DaysBetween(start, end))
	return domain.NewDateWindow(domain.AddDays(start, -pad), domain.AddDays(end, pad))
}

func fixed(items []domain.TimelineItem, weeks int, today time.Time) domain.DateWindow {
	length := max(weeks, 1) * 7
	start := domain.AddDays(today, -length/2)
	w := domain.NewDateWindow(start, domain.AddDays(start, length))
	if len(items) == 0 || anyIntersects(items, w) {
		return w
	}
	return fitAll(items, today)
}

func centeredOnToday(items []domain.TimelineItem, today time.Time) domain.DateWindow {
	if len(items) == 0 {
		return domain.NewDateWindow(domain.AddDays(today, -emptyHalfSpanDays), domain.AddDays(today, emptyHalfSpanDays))
	}
	fa := fitAll(items, today)
	half := max(domain.DaysBetween(fa.Start, today), domain.DaysBetween(today, fa.End), 1)
	return domain.NewDateWindow(domain.AddDays(today, -half), domain.AddDays(today, half))
}

// Grow widens w so that every item fits, padding only the sides that had to
// move. It never shrinks w.
func Grow(w domain.DateWindow, items []domain.TimelineItem) domain.DateWindow {
	start, end, ok := Bounds(items)
	if !ok {
		return w
	}
	pad := Padding(domain.DaysBetween(start, end))
	out := w
	if start.Before(w.Start) {
		out.Start = domain.AddDays(start, -pad)
	}
	if end.After(w.End) {
		out.End = domain.AddDays(end, pad)
	}
	return out
}

func anyIntersects(items []domain.TimelineItem, w domain.DateWindow) bool {
	for _, it := range items {
		if w.Intersects(domain.Day(it.StartDate), domain.Day(it.EndDate)) {
			return true
		}
	}
	return false
}
