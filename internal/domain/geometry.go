package domain

import "time"

// DateWindow is the visible date range. Start is always strictly before End.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// NewDateWindow builds a window from two dates, repairing an empty or
// inverted range so that End is at least one day after Start.
func NewDateWindow(start, end time.Time) DateWindow {
	start, end = Day(start), Day(end)
	if !end.After(start) {
		end = AddDays(start, 1)
	}
	return DateWindow{Start: start, End: end}
}

// Days is the total window length in days.
func (w DateWindow) Days() int {
	return DaysBetween(w.Start, w.End)
}

// Contains reports whether t lies within [Start, End].
func (w DateWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Intersects reports whether [start, end] overlaps the window.
func (w DateWindow) Intersects(start, end time.Time) bool {
	return !end.Before(w.Start) && !start.After(w.End)
}

// Union returns the smallest window covering both w and [start, end].
func (w DateWindow) Union(start, end time.Time) DateWindow {
	return NewDateWindow(MinDay(w.Start, Day(start)), MaxDay(w.End, Day(end)))
}

// Equal reports whether both bounds match.
func (w DateWindow) Equal(o DateWindow) bool {
	return w.Start.Equal(o.Start) && w.End.Equal(o.End)
}

// Tick is one graduation mark on the date axis.
type Tick struct {
	Date      time.Time
	IsWeekend bool
	IsHoliday bool
	Label     string
}

// Position is the pixel rectangle an item occupies in the current frame.
type Position struct {
	Left   float64
	Width  float64
	Top    float64
	Height float64
}

// Right is the x coordinate of the rectangle's right edge.
func (p Position) Right() float64 { return p.Left + p.Width }

// Bottom is the y coordinate of the rectangle's bottom edge.
func (p Position) Bottom() float64 { return p.Top + p.Height }

// MidY is the vertical centre of the rectangle.
func (p Position) MidY() float64 { return p.Top + p.Height/2 }

// ContainsPoint reports whether (x, y) falls inside the rectangle.
func (p Position) ContainsPoint(x, y float64) bool {
	return x >= p.Left && x < p.Right() && y >= p.Top && y < p.Bottom()
}
