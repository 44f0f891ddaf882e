package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{3,6}[0-9]{2,4}$`)

// Group is the project-level metadata a set of items belongs to. One header
// row is laid out per group.
type Group struct {
	ID         string
	ShortID    string
	Name       string
	Status     GroupStatus
	OrderIndex int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidGroupStatuses is the canonical set of accepted group status strings.
var ValidGroupStatuses = map[string]bool{
	"active": true, "paused": true, "done": true, "archived": true,
}

// Validate checks the group's name, status and short ID. An empty ShortID
// is allowed; storage assigns one.
func (g *Group) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("group name is required")
	}
	if g.Status != "" && !ValidGroupStatuses[string(g.Status)] {
		return fmt.Errorf("group %s: invalid status %q", g.Name, g.Status)
	}
	if g.ShortID != "" && !shortIDPattern.MatchString(g.ShortID) {
		return fmt.Errorf("short ID %q must be 3-6 uppercase letters followed by 2-4 digits (e.g. WEB01)", g.ShortID)
	}
	return nil
}

// DisplayName returns the best label for a group header.
// It prefers Name, then ShortID; otherwise it truncates ID to 8 characters.
func (g *Group) DisplayName() string {
	if g.Name != "" {
		return g.Name
	}
	if g.ShortID != "" {
		return g.ShortID
	}
	if len(g.ID) >= 8 {
		return g.ID[:8]
	}
	return g.ID
}

// SuggestShortID derives a short ID from a name: up to four leading letters,
// padded with X, followed by a two-digit counter.
func SuggestShortID(name string, n int) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 4; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	return fmt.Sprintf("%s%02d", string(letters), n)
}
