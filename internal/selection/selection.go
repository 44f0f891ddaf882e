// Package selection tracks which timeline items are selected.
package selection

import "github.com/alexanderramin/gantt/internal/domain"

// ChangeFunc receives the resulting (or, in controlled mode, proposed)
// selection, sorted.
type ChangeFunc func(ids []string)

// Manager holds a set of selected item ids.
//
// In controlled mode the host owns the set: mutators only report the
// proposed selection through the change callback and the stored set moves
// only when the host calls Replace.
type Manager struct {
	ids        map[string]bool
	controlled bool
	onChange   ChangeFunc
}

// New creates an uncontrolled, empty selection.
func New(onChange ChangeFunc) *Manager {
	return &Manager{ids: make(map[string]bool), onChange: onChange}
}

// NewControlled creates a host-owned selection seeded with initial.
func NewControlled(initial []string, onChange ChangeFunc) *Manager {
	m := New(onChange)
	m.controlled = true
	for _, id := range initial {
		m.ids[id] = true
	}
	return m
}

// Controlled reports whether the host owns the selection.
func (m *Manager) Controlled() bool { return m.controlled }

// OnChange replaces the change callback.
func (m *Manager) OnChange(fn ChangeFunc) { m.onChange = fn }

func (m *Manager) Contains(id string) bool { return m.ids[id] }

func (m *Manager) Len() int { return len(m.ids) }

// IDs returns the selected ids in lexical order.
func (m *Manager) IDs() []string { return domain.SortedIDs(m.ids) }

// Select makes id the only selected item.
func (m *Manager) Select(id string) {
	m.propose(map[string]bool{id: true})
}

// Toggle flips id's membership.
func (m *Manager) Toggle(id string) {
	next := m.clone()
	if next[id] {
		delete(next, id)
	} else {
		next[id] = true
	}
	m.propose(next)
}

// Add selects id in addition to the current selection.
func (m *Manager) Add(id string) {
	next := m.clone()
	next[id] = true
	m.propose(next)
}

// Remove deselects id.
func (m *Manager) Remove(id string) {
	next := m.clone()
	delete(next, id)
	m.propose(next)
}

// Clear deselects everything.
func (m *Manager) Clear() {
	m.propose(map[string]bool{})
}

// Replace sets the selection directly. It is how a controlling host feeds
// its state back and never fires the callback in controlled mode.
func (m *Manager) Replace(ids []string) {
	next := make(map[string]bool, len(ids))
	for _, id := range ids {
		next[id] = true
	}
	if m.controlled {
		m.ids = next
		return
	}
	m.propose(next)
}

// Retain drops selected ids for which keep returns false, e.g. after items
// were deleted.
func (m *Manager) Retain(keep func(id string) bool) {
	next := make(map[string]bool, len(m.ids))
	for id := range m.ids {
		if keep(id) {
			next[id] = true
		}
	}
	m.propose(next)
}

func (m *Manager) propose(next map[string]bool) {
	if equal(m.ids, next) {
		return
	}
	if !m.controlled {
		m.ids = next
	}
	if m.onChange != nil {
		m.onChange(domain.SortedIDs(next))
	}
}

func (m *Manager) clone() map[string]bool {
	out := make(map[string]bool, len(m.ids)+1)
	for id := range m.ids {
		out[id] = true
	}
	return out
}

func equal(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if !b[id] {
			return false
		}
	}
	return true
}
