// Package position maps between calendar dates and horizontal pixel offsets
// for a given window and drawing width. Everything here is a pure function.
package position

import (
	"math"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// DefaultMinVisibleWidth is wide enough for a milestone glyph.
const DefaultMinVisibleWidth = 6.0

// Options tunes degenerate-span handling.
type Options struct {
	MinVisibleWidth float64
}

// DefaultOptions returns Options with DefaultMinVisibleWidth.
func DefaultOptions() Options {
	return Options{MinVisibleWidth: DefaultMinVisibleWidth}
}

func (o Options) minWidth() float64 {
	if o.MinVisibleWidth <= 0 {
		return DefaultMinVisibleWidth
	}
	return o.MinVisibleWidth
}

// PixelsPerDay is the live pixel-day ratio for w drawn pixelWidth wide.
func PixelsPerDay(w domain.DateWindow, pixelWidth float64) float64 {
	days := w.Days()
	if days <= 0 {
		return 0
	}
	return pixelWidth / float64(days)
}

// DateToOffset returns the x offset of date. It is monotonically
// non-decreasing in date and unclamped, so dates outside w map outside
// [0, pixelWidth].
func DateToOffset(date time.Time, w domain.DateWindow, pixelWidth float64) float64 {
	days := w.Days()
	if days <= 0 {
		return 0
	}
	return domain.FractionalDays(w.Start, date) / float64(days) * pixelWidth
}

// PixelToDate is the inverse of DateToOffset, rounded to whole days.
func PixelToDate(offset float64, w domain.DateWindow, pixelWidth float64) time.Time {
	ppd := PixelsPerDay(w, pixelWidth)
	if ppd == 0 {
		return w.Start
	}
	return domain.AddDays(w.Start, int(math.Round(offset/ppd)))
}

// Of returns the rectangle for item in a row at rowTop of rowHeight. The
// boolean is false when the item lies entirely outside the window.
func Of(item domain.TimelineItem, w domain.DateWindow, pixelWidth, rowTop, rowHeight float64, opts Options) (domain.Position, bool) {
	return SpanOf(item.Kind, item.StartDate, item.EndDate, w, pixelWidth, rowTop, rowHeight, opts)
}

// SpanOf is Of for an explicit [start, end], used for drag previews.
//
// Left edges take the floor of the day offset and widths the ceiling of the
// inclusive day span, so adjacent-day bars never leave a one-pixel gap.
func SpanOf(kind domain.ItemKind, start, end time.Time, w domain.DateWindow, pixelWidth, rowTop, rowHeight float64, opts Options) (domain.Position, bool) {
	if pixelWidth <= 0 || w.Days() <= 0 {
		return domain.Position{}, false
	}
	if end.Before(start) {
		start, end = end, start
	}
	if !w.Intersects(start, end) {
		return domain.Position{}, false
	}

	ppd := PixelsPerDay(w, pixelWidth)
	minW := math.Min(opts.minWidth(), pixelWidth)

	var left, width float64
	switch kind {
	case domain.KindMilestone:
		left = math.Floor(domain.FractionalDays(w.Start, start)) * ppd
		width = minW
	case domain.KindTask, domain.KindStage:
		cs := domain.MaxDay(start, w.Start)
		ce := domain.MinDay(end, w.End)
		left = math.Floor(domain.FractionalDays(w.Start, cs)) * ppd
		spanDays := math.Ceil(domain.FractionalDays(cs, ce)) + 1
		right := math.Min(left+spanDays*ppd, pixelWidth)
		width = right - left
	default:
		return domain.Position{}, false
	}

	if width < minW {
		width = minW
	}
	if left+width > pixelWidth {
		left = math.Max(0, pixelWidth-width)
	}
	return domain.Position{Left: left, Width: width, Top: rowTop, Height: rowHeight}, true
}
