package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/hierarchy"
	"github.com/alexanderramin/gantt/internal/position"
	"github.com/alexanderramin/gantt/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

// DefaultLabelWidth is the width of the row-name column.
const DefaultLabelWidth = 28

// AxisLines is the number of lines drawn between the title and the first row.
const AxisLines = 2

// ChartOptions controls the terminal rendering of a frame. The frame's pixel
// width is taken as the number of chart columns, one pixel per cell, and each
// row occupies one line.
type ChartOptions struct {
	LabelWidth int
	Title      string
	ShowEdges  bool

	// Cursor marks the row of this item as the keyboard cursor.
	Cursor string
}

// ChartTop returns the line of the first row, counted from the first line
// RenderChart emits.
func (o ChartOptions) ChartTop() int {
	if o.Title == "" {
		return AxisLines
	}
	return AxisLines + 1
}

// ChartLeft returns the column of the first chart cell.
func (o ChartOptions) ChartLeft() int {
	return o.labelWidth() + 1
}

func (o ChartOptions) labelWidth() int {
	if o.LabelWidth <= 0 {
		return DefaultLabelWidth
	}
	return o.LabelWidth
}

type cellClass int

const (
	clsBlank cellClass = iota
	clsAxis
	clsWeekend
	clsHoliday
	clsToday
	clsTodo
	clsInProgress
	clsBlocked
	clsDone
	clsStage
	clsMilestone
	clsPreview
	clsSelected
	clsDrop
)

var cellStyles = map[cellClass]lipgloss.Style{
	clsAxis:       StyleDim,
	clsWeekend:    StyleDim,
	clsHoliday:    StyleRed,
	clsToday:      StyleHeader,
	clsTodo:       StyleBlue,
	clsInProgress: StyleYellow,
	clsBlocked:    StyleRed,
	clsDone:       StyleGreen,
	clsStage:      StyleFg,
	clsMilestone:  StylePurple,
	clsPreview:    StylePurple.Bold(true),
	clsSelected:   StyleHeader.Reverse(true),
	clsDrop:       StyleGreen.Underline(true),
}

type cell struct {
	r   rune
	cls cellClass
}

type cellLine []cell

func newCellLine(n int, r rune, cls cellClass) cellLine {
	l := make(cellLine, n)
	for i := range l {
		l[i] = cell{r: r, cls: cls}
	}
	return l
}

func (l cellLine) set(i int, r rune, cls cellClass) {
	if i >= 0 && i < len(l) {
		l[i] = cell{r: r, cls: cls}
	}
}

// render joins runs of equally classed cells into single styled segments.
func (l cellLine) render() string {
	var b strings.Builder
	for i := 0; i < len(l); {
		j := i
		var run strings.Builder
		for j < len(l) && l[j].cls == l[i].cls {
			run.WriteRune(l[j].r)
			j++
		}
		if st, ok := cellStyles[l[i].cls]; ok {
			b.WriteString(st.Render(run.String()))
		} else {
			b.WriteString(run.String())
		}
		i = j
	}
	return b.String()
}

// CellSpan returns the half-open column range [from, to) a rectangle covers:
// a cell belongs to the rectangle when its centre does.
func CellSpan(pos domain.Position, cols int) (from, to int) {
	from = int(math.Ceil(pos.Left - 0.5))
	to = int(math.Ceil(pos.Right() - 0.5))
	if to <= from {
		from = int(math.Floor(pos.Left + pos.Width/2))
		to = from + 1
	}
	if from < 0 {
		from = 0
	}
	if to > cols {
		to = cols
	}
	return from, to
}

// RenderChart draws a frame as text: a date axis followed by one line per
// row, with the dependency list underneath when requested.
func RenderChart(f timeline.Frame, opts ChartOptions) string {
	cols := int(math.Round(f.PixelWidth))
	if cols < 1 {
		cols = 1
	}
	lw := opts.labelWidth()
	gutter := strings.Repeat(" ", lw)

	var lines []string
	if opts.Title != "" {
		lines = append(lines, StyleHeader.Render(opts.Title))
	}

	labels, marks := axis(f, cols)
	lines = append(lines,
		gutter+" "+labels.render(),
		gutter+StyleDim.Render("┼")+marks.render(),
	)

	if len(f.Rows) == 0 {
		lines = append(lines, gutter+" "+Dim("(no items)"))
	}
	for _, row := range f.Rows {
		lines = append(lines, fitLabel(rowLabel(row, f, opts.Cursor), lw)+StyleDim.Render("│")+rowCells(row, f, cols).render())
	}

	if opts.ShowEdges && len(f.Edges) > 0 {
		lines = append(lines, "", Header("Dependencies"))
		for _, e := range f.Edges {
			line := fmt.Sprintf("  %s → %s", f.Items[e.Edge.FromID].Name, f.Items[e.Edge.ToID].Name)
			if e.Backward() {
				line += " " + StyleYellow.Render("(overlaps)")
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

func axis(f timeline.Frame, cols int) (labels, marks cellLine) {
	labels = newCellLine(cols, ' ', clsBlank)
	marks = newCellLine(cols, '─', clsAxis)

	next := 0
	for _, t := range f.Ticks {
		x := tickColumn(f, t, cols)
		cls := clsAxis
		switch {
		case t.IsHoliday:
			cls = clsHoliday
		case t.IsWeekend:
			cls = clsWeekend
		}
		marks.set(x, '┬', cls)

		label := []rune(t.Label)
		if x < next || x+len(label) > cols {
			continue
		}
		for i, r := range label {
			labels.set(x+i, r, cls)
		}
		next = x + len(label) + 1
	}
	if f.TodayVisible {
		marks.set(todayColumn(f, cols), '▼', clsToday)
	}
	return labels, marks
}

func tickColumn(f timeline.Frame, t domain.Tick, cols int) int {
	x := int(math.Floor(position.DateToOffset(t.Date, f.Window, f.PixelWidth)))
	if x >= cols {
		x = cols - 1
	}
	return x
}

func todayColumn(f timeline.Frame, cols int) int {
	x := int(math.Floor(f.TodayOffset))
	if x >= cols {
		x = cols - 1
	}
	return x
}

func rowLabel(row hierarchy.Row, f timeline.Frame, cursor string) string {
	if row.Kind == hierarchy.RowGroupHeader {
		return StyleHeader.Render(row.Name)
	}
	indent := strings.Repeat("  ", row.Depth-1)
	name := row.Name
	switch row.ItemKind {
	case domain.KindStage:
		marker := "▾ "
		if row.Collapsed {
			marker = "▸ "
			name = fmt.Sprintf("%s (%d)", name, row.ChildCount)
		}
		name = StyleBold.Render(marker + name)
	case domain.KindMilestone:
		name = "◆ " + name
	case domain.KindTask:
		name = "  " + name
	}
	switch {
	case f.Selected(row.ItemID):
		return indent + StyleHeader.Render("•") + name
	case cursor != "" && cursor == row.ItemID:
		return indent + StyleHeader.Render("›") + name
	default:
		return indent + " " + name
	}
}

// fitLabel pads or truncates s to exactly w visible columns.
func fitLabel(s string, w int) string {
	vis := lipgloss.Width(s)
	if vis <= w {
		return s + strings.Repeat(" ", w-vis)
	}
	plain := []rune(stripStyles(s))
	if len(plain) > w-1 {
		plain = plain[:w-1]
	}
	out := string(plain) + "…"
	return out + strings.Repeat(" ", max(0, w-lipgloss.Width(out)))
}

func rowCells(row hierarchy.Row, f timeline.Frame, cols int) cellLine {
	line := newCellLine(cols, ' ', clsBlank)
	if f.TodayVisible {
		line.set(todayColumn(f, cols), '┆', clsToday)
	}
	if row.Kind != hierarchy.RowItem {
		return line
	}
	pos, ok := f.Positions[row.ItemID]
	if !ok {
		return line
	}
	it := f.Items[row.ItemID]
	from, to := CellSpan(pos, cols)

	_, previewing := f.Preview.Span(it.ID)
	override := clsBlank
	switch {
	case previewing:
		override = clsPreview
	case f.DropTarget != "" && f.DropTarget == it.ID:
		override = clsDrop
	case f.Selected(it.ID):
		override = clsSelected
	}
	pick := func(cls cellClass) cellClass {
		if override != clsBlank {
			return override
		}
		return cls
	}

	switch it.Kind {
	case domain.KindMilestone:
		line.set(from, '◆', pick(clsMilestone))
	case domain.KindStage:
		for x := from; x < to; x++ {
			line.set(x, '━', pick(clsStage))
		}
	case domain.KindTask:
		done := from + int(math.Round(clamp01(it.Progress)*float64(to-from)))
		base := statusClass(it.Status)
		for x := from; x < to; x++ {
			if x < done || it.Status == domain.StatusDone {
				line.set(x, '█', pick(base))
			} else {
				line.set(x, '▒', pick(base))
			}
		}
	}
	return line
}

func statusClass(s domain.ItemStatus) cellClass {
	switch s {
	case domain.StatusDone:
		return clsDone
	case domain.StatusInProgress:
		return clsInProgress
	case domain.StatusBlocked:
		return clsBlocked
	case domain.StatusTodo:
		return clsTodo
	default:
		return clsTodo
	}
}
