package window

import (
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// Tracker holds the established window across refreshes. Once set, the window
// only grows to admit new items; it is recomputed from scratch only after
// SetMode or Reset.
type Tracker struct {
	mode    ScaleMode
	current *domain.DateWindow
}

// NewTracker creates a Tracker for the given mode with no window yet.
func NewTracker(mode ScaleMode) *Tracker {
	return &Tracker{mode: mode}
}

// Mode returns the active scale mode.
func (t *Tracker) Mode() ScaleMode { return t.mode }

// SetMode changes the zoom. The next Update recomputes the window.
func (t *Tracker) SetMode(mode ScaleMode) {
	t.mode = mode
	t.current = nil
}

// Reset drops the established window so the next Update recomputes it.
func (t *Tracker) Reset() { t.current = nil }

// Window returns the established window, if any.
func (t *Tracker) Window() (domain.DateWindow, bool) {
	if t.current == nil {
		return domain.DateWindow{}, false
	}
	return *t.current, true
}

// Update folds items into the window and returns it. It reports whether the
// window changed. A window derived from an empty collection is returned but
// not established, so the first real items get a fresh fit.
func (t *Tracker) Update(items []domain.TimelineItem, today time.Time) (domain.DateWindow, bool) {
	next := Compute(items, t.current, t.mode, today)
	if len(items) == 0 && t.current == nil {
		return next, true
	}
	changed := t.current == nil || !t.current.Equal(next)
	t.current = &next
	return next, changed
}
