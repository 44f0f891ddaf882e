package hierarchy

import "github.com/alexanderramin/gantt/internal/domain"

// Expansion answers whether a stage's children are shown.
type Expansion interface {
	IsExpanded(stageID string) bool
}

// ExpansionFunc adapts a function to Expansion.
type ExpansionFunc func(stageID string) bool

func (f ExpansionFunc) IsExpanded(stageID string) bool { return f(stageID) }

// AllExpanded shows every stage's children.
var AllExpanded Expansion = ExpansionFunc(func(string) bool { return true })

// ExpandState stores explicit collapses; stages not in the set are expanded.
type ExpandState struct {
	collapsed map[string]bool
}

// NewExpandState creates a state with every stage expanded.
func NewExpandState() *ExpandState {
	return &ExpandState{collapsed: make(map[string]bool)}
}

// ExpandStateFrom builds a state where exactly the given stages are collapsed.
func ExpandStateFrom(collapsed []string) *ExpandState {
	s := NewExpandState()
	for _, id := range collapsed {
		s.collapsed[id] = true
	}
	return s
}

func (s *ExpandState) IsExpanded(stageID string) bool {
	return !s.collapsed[stageID]
}

// Set expands or collapses a stage.
func (s *ExpandState) Set(stageID string, expanded bool) {
	if expanded {
		delete(s.collapsed, stageID)
		return
	}
	s.collapsed[stageID] = true
}

// Toggle flips a stage and returns its new expanded state.
func (s *ExpandState) Toggle(stageID string) bool {
	expanded := !s.IsExpanded(stageID)
	s.Set(stageID, expanded)
	return expanded
}

// Collapsed returns the collapsed stage ids in lexical order.
func (s *ExpandState) Collapsed() []string {
	return domain.SortedIDs(s.collapsed)
}
