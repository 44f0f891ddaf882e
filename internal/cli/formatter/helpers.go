package formatter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripStyles removes ANSI escape codes.
func stripStyles(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// ItemRef is the human handle of an item: the group short ID and the item's
// number inside the group, e.g. WEB01#3.
func ItemRef(g *domain.Group, it *domain.TimelineItem) string {
	if g == nil || g.ShortID == "" {
		return fmt.Sprintf("#%d", it.Seq)
	}
	return fmt.Sprintf("%s#%d", g.ShortID, it.Seq)
}

// DayRange renders an inclusive span, collapsing single days.
func DayRange(start, end time.Time) string {
	if domain.SameDay(start, end) {
		return domain.FormatDay(start)
	}
	return domain.FormatDay(start) + " → " + domain.FormatDay(end)
}

// WindowTitle describes the visible window and its zoom.
func WindowTitle(w domain.DateWindow, scale fmt.Stringer) string {
	return fmt.Sprintf("%s – %s  (%d days, %s)",
		w.Start.Format("Jan 2 2006"), w.End.Format("Jan 2 2006"), w.Days(), scale)
}

// TruncID shortens a UUID to its first 8 characters.
func TruncID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
