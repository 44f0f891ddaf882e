package window

import (
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// HolidayCalendar flags non-working days. It only styles ticks and never
// alters date arithmetic.
type HolidayCalendar interface {
	IsHoliday(day time.Time) bool
}

// HolidaySet is a HolidayCalendar keyed by ISO date.
type HolidaySet map[string]string

// NewHolidaySet builds a set from the given days.
func NewHolidaySet(days ...time.Time) HolidaySet {
	s := make(HolidaySet, len(days))
	for _, d := range days {
		s.Add(d, "")
	}
	return s
}

// Add marks day as a holiday with an optional name.
func (s HolidaySet) Add(day time.Time, name string) {
	s[domain.FormatDay(day)] = name
}

func (s HolidaySet) IsHoliday(day time.Time) bool {
	_, ok := s[domain.FormatDay(day)]
	return ok
}

// Name returns the holiday's name, or "" if day is not a holiday.
func (s HolidaySet) Name(day time.Time) string {
	return s[domain.FormatDay(day)]
}

type noHolidays struct{}

func (noHolidays) IsHoliday(time.Time) bool { return false }

// NoHolidays is a calendar with no holidays.
var NoHolidays HolidayCalendar = noHolidays{}
