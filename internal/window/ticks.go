package window

import (
	"github.com/alexanderramin/gantt/internal/domain"
)

// TickInterval returns the spacing between ticks, in days, for a window of
// spanDays so that labels stay legible.
func TickInterval(spanDays int) int {
	switch {
	case spanDays > 365:
		return 60
	case spanDays > 180:
		return 30
	case spanDays > 90:
		return 14
	case spanDays > 60:
		return 7
	case spanDays > 30:
		return 3
	default:
		return 1
	}
}

// Ticks lists the axis marks for w, starting at w.Start and never past w.End.
// A nil calendar means no holidays.
func Ticks(w domain.DateWindow, cal HolidayCalendar) []domain.Tick {
	if cal == nil {
		cal = NoHolidays
	}
	interval := TickInterval(w.Days())
	layout := "Jan 02"
	if interval >= 30 {
		layout = "Jan 2006"
	}

	ticks := make([]domain.Tick, 0, w.Days()/interval+1)
	for d := w.Start; !d.After(w.End); d = domain.AddDays(d, interval) {
		ticks = append(ticks, domain.Tick{
			Date:      d,
			IsWeekend: domain.IsWeekend(d),
			IsHoliday: cal.IsHoliday(d),
			Label:     d.Format(layout),
		})
	}
	return ticks
}
