package formatter

import (
	"fmt"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/timeline"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func newTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(header)
	return t
}

// ItemTable lists items with their group-scoped references.
func ItemTable(items []*domain.TimelineItem, groups map[string]*domain.Group) string {
	t := newTable(table.Row{"Ref", "Kind", "Name", "Dates", "Days", "Status", "Progress", "Assignee"})
	for _, it := range items {
		t.AppendRow(table.Row{
			ItemRef(groups[it.GroupID], it),
			KindGlyph(it.Kind) + " " + string(it.Kind),
			it.Name,
			DayRange(it.StartDate, it.EndDate),
			it.DurationDays() + 1,
			StatusPill(it.Status),
			RenderProgress(it.Progress, 8),
			it.Assignee,
		})
	}
	return t.Render()
}

// GroupTable lists groups.
func GroupTable(groups []*domain.Group) string {
	t := newTable(table.Row{"ID", "Name", "Status", "Order"})
	for _, g := range groups {
		t.AppendRow(table.Row{g.ShortID, g.Name, GroupStatusPill(g.Status), g.OrderIndex})
	}
	return t.Render()
}

// DependencyTable lists edges as prerequisite → dependent.
func DependencyTable(edges []domain.DependencyEdge, label func(id string) string) string {
	t := newTable(table.Row{"Prerequisite", "", "Dependent"})
	for _, e := range edges {
		t.AppendRow(table.Row{label(e.FromID), "→", label(e.ToID)})
	}
	return t.Render()
}

// HolidayTable lists holidays.
func HolidayTable(holidays []domain.Holiday) string {
	t := newTable(table.Row{"Day", "Weekday", "Name"})
	for _, h := range holidays {
		t.AppendRow(table.Row{domain.FormatDay(h.Day), h.Day.Weekday().String()[:3], h.Name})
	}
	return t.Render()
}

// WindowTable describes the frame's window and lists its ticks with their
// x offsets at the frame's pixel width.
func WindowTable(f timeline.Frame) string {
	summary := newTable(table.Row{"Start", "End", "Days", "Width", "Px/day", "Today"})
	today := "outside"
	if f.TodayVisible {
		today = fmt.Sprintf("x=%.1f", f.TodayOffset)
	}
	summary.AppendRow(table.Row{
		domain.FormatDay(f.Window.Start),
		domain.FormatDay(f.Window.End),
		f.Window.Days(),
		fmt.Sprintf("%.0f", f.PixelWidth),
		fmt.Sprintf("%.2f", f.PixelsPerDay),
		today,
	})

	ticks := newTable(table.Row{"Tick", "Date", "X", "Weekend", "Holiday"})
	for _, tk := range f.Ticks {
		x := 0.0
		if f.Window.Days() > 0 {
			x = float64(domain.DaysBetween(f.Window.Start, tk.Date)) * f.PixelsPerDay
		}
		ticks.AppendRow(table.Row{tk.Label, domain.FormatDay(tk.Date), fmt.Sprintf("%.1f", x), yesNo(tk.IsWeekend), yesNo(tk.IsHoliday)})
	}
	return summary.Render() + "\n" + ticks.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
