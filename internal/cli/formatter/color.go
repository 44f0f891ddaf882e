package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle returns the bar color for an item status.
func StatusStyle(status domain.ItemStatus) lipgloss.Style {
	switch status {
	case domain.StatusDone:
		return StyleGreen
	case domain.StatusInProgress:
		return StyleYellow
	case domain.StatusBlocked:
		return StyleRed
	case domain.StatusTodo:
		return StyleBlue
	default:
		return StyleFg
	}
}

// StatusPill returns a colored status indicator such as "● in progress".
func StatusPill(status domain.ItemStatus) string {
	label := strings.ReplaceAll(string(status), "_", " ")
	if label == "" {
		label = string(domain.StatusTodo)
	}
	return StatusStyle(status).Render("● " + label)
}

// GroupStatusPill returns a colored indicator for a group status.
func GroupStatusPill(status domain.GroupStatus) string {
	switch status {
	case domain.GroupActive:
		return StyleGreen.Render("● Active")
	case domain.GroupPaused:
		return StyleYellow.Render("● Paused")
	case domain.GroupDone:
		return StyleBlue.Render("● Done")
	case domain.GroupArchived:
		return StyleDim.Render("● Archived")
	default:
		return StyleDim.Render("● " + string(status))
	}
}

// KindGlyph is the one-character marker used in lists for an item kind.
func KindGlyph(kind domain.ItemKind) string {
	switch kind {
	case domain.KindStage:
		return "▬"
	case domain.KindMilestone:
		return "◆"
	case domain.KindTask:
		return "■"
	default:
		return "?"
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len([]rune(upper)))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
