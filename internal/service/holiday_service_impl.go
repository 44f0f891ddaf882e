package service

import (
	"context"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/alexanderramin/gantt/internal/window"
)

type holidayService struct {
	holidays repository.HolidayRepo
	observer UseCaseObserver
}

func NewHolidayService(holidays repository.HolidayRepo, observers ...UseCaseObserver) HolidayService {
	return &holidayService{holidays: holidays, observer: combineObservers(observers)}
}

func (s *holidayService) Add(ctx context.Context, day time.Time, name string) (err error) {
	defer observe(ctx, s.observer, "add-holiday", now(), &err, map[string]any{"day": domain.FormatDay(day)})
	return s.holidays.Add(ctx, domain.Day(day), name)
}

func (s *holidayService) List(ctx context.Context) ([]domain.Holiday, error) {
	return s.holidays.List(ctx)
}

func (s *holidayService) Remove(ctx context.Context, day time.Time) (err error) {
	defer observe(ctx, s.observer, "remove-holiday", now(), &err, map[string]any{"day": domain.FormatDay(day)})
	return s.holidays.Delete(ctx, domain.Day(day))
}

// Calendar returns the stored holidays as a tick-styling calendar.
func (s *holidayService) Calendar(ctx context.Context) (window.HolidaySet, error) {
	list, err := s.holidays.List(ctx)
	if err != nil {
		return nil, err
	}
	set := window.NewHolidaySet()
	for _, h := range list {
		set.Add(h.Day, h.Name)
	}
	return set, nil
}
