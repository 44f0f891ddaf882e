package interaction

import (
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/stretchr/testify/assert"
)

func randomSpan(rng *rand.Rand) Span {
	start := domain.AddDays(domain.Date(2024, 12, 1), rng.Intn(160))
	return Span{Start: start, End: domain.AddDays(start, rng.Intn(30))}
}

func TestResize_KeepsAtLeastOneDay(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	w := testWindow()

	for trial := 0; trial < 500; trial++ {
		s := randomSpan(rng)
		delta := rng.Intn(121) - 60
		if delta == 0 {
			continue
		}
		floor := min(1, s.Days())

		got := ResizeStart(s, delta, w)
		assert.GreaterOrEqual(t, got.Days(), floor, "trial %d resize-start", trial)
		assert.Equal(t, s.End, got.End)
		assertNotAgainst(t, delta, s.Start, got.Start, "trial %d resize-start", trial)

		got = ResizeEnd(s, delta, w)
		assert.GreaterOrEqual(t, got.Days(), floor, "trial %d resize-end", trial)
		assert.Equal(t, s.Start, got.Start)
		assertNotAgainst(t, delta, s.End, got.End, "trial %d resize-end", trial)
	}
}

// assertNotAgainst checks that an edge moved by a resize never went the
// opposite way to the drag.
func assertNotAgainst(t *testing.T, delta int, before, after time.Time, msgAndArgs ...any) {
	t.Helper()
	moved := domain.DaysBetween(before, after)
	if delta > 0 {
		assert.GreaterOrEqual(t, moved, 0, msgAndArgs...)
	} else {
		assert.LessOrEqual(t, moved, 0, msgAndArgs...)
	}
}

func TestResize_SameDaySpanStaysPut(t *testing.T) {
	w := testWindow()
	s := spanOf("2025-01-10", "2025-01-10")

	assert.Equal(t, s, ResizeStart(s, 2, w), "start dragged past the end")
	assert.Equal(t, s, ResizeEnd(s, -2, w), "end dragged past the start")
	assert.Equal(t, spanOf("2025-01-08", "2025-01-10"), ResizeStart(s, -2, w))
	assert.Equal(t, spanOf("2025-01-10", "2025-01-12"), ResizeEnd(s, 2, w))
}

func TestMove_PreservesDuration(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	w := testWindow()

	for trial := 0; trial < 500; trial++ {
		s := randomSpan(rng)
		got := Move(s, rng.Intn(241)-120, w)
		assert.Equal(t, s.Days(), got.Days(), "trial %d", trial)

		if !s.Start.Before(w.Start) && !s.End.After(w.End) {
			assert.False(t, got.Start.Before(w.Start), "trial %d", trial)
			assert.False(t, got.End.After(w.End), "trial %d", trial)
		}
	}
}

func TestMove_OutsideSideDoesNotJump(t *testing.T) {
	w := testWindow()
	s := spanOf("2024-12-20", "2025-01-05")

	assert.Equal(t, s, Move(s, 0, w))
	assert.Equal(t, s, Move(s, -5, w), "already past the left edge")
	assert.Equal(t, spanOf("2024-12-23", "2025-01-08"), Move(s, 3, w))
}

func TestApply_Dispatch(t *testing.T) {
	w := testWindow()
	s := spanOf("2025-01-10", "2025-01-14")
	assert.Equal(t, spanOf("2025-01-12", "2025-01-16"), Apply(domain.ChangeMove, s, 2, w))
	assert.Equal(t, spanOf("2025-01-12", "2025-01-14"), Apply(domain.ChangeResizeStart, s, 2, w))
	assert.Equal(t, spanOf("2025-01-10", "2025-01-16"), Apply(domain.ChangeResizeEnd, s, 2, w))
	assert.Equal(t, s, Apply(domain.ChangeReparent, s, 2, w))
}
