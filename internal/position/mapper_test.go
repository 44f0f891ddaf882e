package position

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWindow() domain.DateWindow {
	// 100 days drawn 1000px wide: 10px per day.
	return domain.NewDateWindow(domain.Date(2025, 1, 1), domain.Date(2025, 4, 11))
}

func TestPixelsPerDay(t *testing.T) {
	assert.InDelta(t, 10.0, PixelsPerDay(testWindow(), 1000), 1e-9)
}

func TestDateToOffset(t *testing.T) {
	w := testWindow()
	assert.InDelta(t, 0, DateToOffset(w.Start, w, 1000), 1e-9)
	assert.InDelta(t, 1000, DateToOffset(w.End, w, 1000), 1e-9)
	assert.InDelta(t, 90, DateToOffset(domain.Date(2025, 1, 10), w, 1000), 1e-9)
}

// TestDateToOffset_MonotonicAndInvertible property-tests that offsets never
// decrease with date and that PixelToDate recovers the date within a day.
func TestDateToOffset_MonotonicAndInvertible(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		start := domain.AddDays(domain.Date(2024, 1, 1), rng.Intn(400))
		w := domain.NewDateWindow(start, domain.AddDays(start, rng.Intn(500)+1))
		width := float64(rng.Intn(2000) + 50)

		prev := -1e18
		for d := domain.AddDays(w.Start, -5); !d.After(domain.AddDays(w.End, 5)); d = domain.AddDays(d, 1) {
			off := DateToOffset(d, w, width)
			assert.GreaterOrEqual(t, off, prev, "trial %d: offset decreased at %s", trial, domain.FormatDay(d))
			prev = off

			back := PixelToDate(off, w, width)
			diff := domain.DaysBetween(d, back)
			assert.LessOrEqual(t, diff, 1, "trial %d", trial)
			assert.GreaterOrEqual(t, diff, -1, "trial %d", trial)
		}
	}
}

func TestPixelToDate_RoundsToWholeDays(t *testing.T) {
	w := testWindow()
	assert.Equal(t, domain.Date(2025, 1, 4), PixelToDate(34, w, 1000))
	assert.Equal(t, domain.Date(2025, 1, 5), PixelToDate(36, w, 1000))
}

func TestOf_TaskInsideWindow(t *testing.T) {
	w := testWindow()
	it := domain.TimelineItem{Kind: domain.KindTask, StartDate: domain.Date(2025, 1, 11), EndDate: domain.Date(2025, 1, 13)}
	pos, ok := Of(it, w, 1000, 40, 20, DefaultOptions())
	require.True(t, ok)
	assert.InDelta(t, 100, pos.Left, 1e-9)
	assert.InDelta(t, 30, pos.Width, 1e-9)
	assert.Equal(t, 40.0, pos.Top)
	assert.Equal(t, 20.0, pos.Height)
}

func TestOf_SameDayTaskIsOneDayWide(t *testing.T) {
	w := testWindow()
	it := domain.TimelineItem{Kind: domain.KindTask, StartDate: domain.Date(2025, 1, 11), EndDate: domain.Date(2025, 1, 11)}
	pos, ok := Of(it, w, 1000, 0, 20, DefaultOptions())
	require.True(t, ok)
	assert.InDelta(t, 10, pos.Width, 1e-9)
}

func TestOf_AdjacentDaysHaveNoGap(t *testing.T) {
	w := testWindow()
	a := domain.TimelineItem{Kind: domain.KindTask, StartDate: domain.Date(2025, 1, 2), EndDate: domain.Date(2025, 1, 4)}
	b := domain.TimelineItem{Kind: domain.KindTask, StartDate: domain.Date(2025, 1, 5), EndDate: domain.Date(2025, 1, 6)}
	pa, _ := Of(a, w, 1000, 0, 20, DefaultOptions())
	pb, _ := Of(b, w, 1000, 0, 20, DefaultOptions())
	assert.InDelta(t, pa.Right(), pb.Left, 1e-9)
}

func TestOf_ClampedToWindow(t *testing.T) {
	w := testWindow()
	it := domain.TimelineItem{Kind: domain.KindStage, StartDate: domain.Date(2024, 12, 1), EndDate: domain.Date(2025, 1, 5)}
	pos, ok := Of(it, w, 1000, 0, 30, DefaultOptions())
	require.True(t, ok)
	assert.Equal(t, 0.0, pos.Left)
	assert.InDelta(t, 50, pos.Width, 1e-9)

	long := domain.TimelineItem{Kind: domain.KindTask, StartDate: domain.Date(2025, 4, 1), EndDate: domain.Date(2025, 6, 1)}
	pos, ok = Of(long, w, 1000, 0, 20, DefaultOptions())
	require.True(t, ok)
	assert.LessOrEqual(t, pos.Right(), 1000.0)
}

func TestOf_OutsideWindowIsNotRendered(t *testing.T) {
	w := testWindow()
	before := domain.TimelineItem{Kind: domain.KindTask, StartDate: domain.Date(2024, 11, 1), EndDate: domain.Date(2024, 12, 31)}
	_, ok := Of(before, w, 1000, 0, 20, DefaultOptions())
	assert.False(t, ok)

	after := domain.TimelineItem{Kind: domain.KindMilestone, StartDate: domain.Date(2025, 5, 1), EndDate: domain.Date(2025, 5, 1)}
	_, ok = Of(after, w, 1000, 0, 20, DefaultOptions())
	assert.False(t, ok)
}

func TestOf_SameDayAtWindowEdgeKeepsMinimumWidth(t *testing.T) {
	w := domain.NewDateWindow(domain.Date(2025, 2, 3), domain.Date(2025, 3, 5))
	opts := Options{MinVisibleWidth: 8}
	for _, kind := range []domain.ItemKind{domain.KindTask, domain.KindMilestone} {
		it := domain.TimelineItem{Kind: kind, StartDate: domain.Date(2025, 3, 5), EndDate: domain.Date(2025, 3, 5)}
		pos, ok := Of(it, w, 300, 0, 20, opts)
		require.True(t, ok, kind)
		assert.Equal(t, 8.0, pos.Width, kind)
		assert.InDelta(t, 300, pos.Right(), 1e-9, kind)
	}
}

func TestOf_MilestoneUsesMarkerWidth(t *testing.T) {
	w := testWindow()
	it := domain.TimelineItem{Kind: domain.KindMilestone, StartDate: domain.Date(2025, 2, 1), EndDate: domain.Date(2025, 2, 1)}
	pos, ok := Of(it, w, 1000, 0, 20, DefaultOptions())
	require.True(t, ok)
	assert.InDelta(t, 310, pos.Left, 1e-9)
	assert.Equal(t, DefaultMinVisibleWidth, pos.Width)
}

func TestOf_UnknownKindIsNotRendered(t *testing.T) {
	it := domain.TimelineItem{Kind: "epic", StartDate: domain.Date(2025, 2, 1), EndDate: domain.Date(2025, 2, 1)}
	_, ok := Of(it, testWindow(), 1000, 0, 20, DefaultOptions())
	assert.False(t, ok)
}
