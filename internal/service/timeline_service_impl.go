package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/alexanderramin/gantt/internal/window"
)

type timelineService struct {
	items    repository.ItemRepo
	groups   repository.GroupRepo
	deps     repository.DependencyRepo
	holidays repository.HolidayRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewTimelineService(
	items repository.ItemRepo,
	groups repository.GroupRepo,
	deps repository.DependencyRepo,
	holidays repository.HolidayRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) TimelineService {
	return &timelineService{
		items:    items,
		groups:   groups,
		deps:     deps,
		holidays: holidays,
		uow:      uow,
		observer: combineObservers(observers),
	}
}

func (s *timelineService) Load(ctx context.Context) (*Snapshot, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	edges, err := s.deps.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading dependencies: %w", err)
	}
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading groups: %w", err)
	}
	holidays, err := s.holidays.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading holidays: %w", err)
	}

	prereqs := make(map[string][]string)
	for _, e := range edges {
		prereqs[e.ToID] = append(prereqs[e.ToID], e.FromID)
	}

	snap := &Snapshot{
		Items:    make([]domain.TimelineItem, 0, len(items)),
		Groups:   make([]domain.Group, 0, len(groups)),
		Holidays: window.NewHolidaySet(),
	}
	for _, it := range items {
		v := *it
		v.Dependencies = prereqs[it.ID]
		snap.Items = append(snap.Items, v)
	}
	for _, g := range groups {
		snap.Groups = append(snap.Groups, *g)
	}
	for _, h := range holidays {
		snap.Holidays.Add(h.Day, h.Name)
	}
	return snap, nil
}

func (s *timelineService) ApplyChanges(ctx context.Context, intents []domain.ChangeIntent) (updated []*domain.TimelineItem, err error) {
	fields := map[string]any{"intents": len(intents)}
	defer observe(ctx, s.observer, "apply-changes", now(), &err, fields)

	if len(intents) == 0 {
		return nil, nil
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteItemRepo(tx)
		touched := make(map[string]*domain.TimelineItem)
		var order []string

		for _, in := range intents {
			it, err := txItems.GetByID(ctx, in.ItemID)
			if err != nil {
				return fmt.Errorf("loading item %s: %w", in.ItemID, err)
			}
			if err := applyIntent(ctx, txItems, it, in); err != nil {
				return err
			}
			it.UpdatedAt = now()
			if err := txItems.Update(ctx, it); err != nil {
				return err
			}
			if _, seen := touched[it.ID]; !seen {
				order = append(order, it.ID)
			}
			touched[it.ID] = it
		}

		updated = make([]*domain.TimelineItem, 0, len(order))
		for _, id := range order {
			updated = append(updated, touched[id])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["items"] = len(updated)
	return updated, nil
}

// applyIntent mutates it according to in, validating against the item's
// structural rules. Nothing is persisted here.
func applyIntent(ctx context.Context, items repository.ItemRepo, it *domain.TimelineItem, in domain.ChangeIntent) error {
	switch in.Kind {
	case domain.ChangeMove, domain.ChangeResizeStart, domain.ChangeResizeEnd:
		if it.Kind == domain.KindMilestone && in.Kind != domain.ChangeMove {
			return fmt.Errorf("milestone %s cannot be resized: %w", it.ID, ErrInvalidChange)
		}
		return applyDates(it, in)

	case domain.ChangeReparent:
		if err := checkParent(ctx, items, it, in.NewParentID); err != nil {
			return err
		}
		if in.NewParentID == "" {
			it.ParentID = nil
		} else {
			pid := in.NewParentID
			it.ParentID = &pid
		}
		if in.NewStart.IsZero() && in.NewEnd.IsZero() {
			return nil
		}
		return applyDates(it, in)

	default:
		return fmt.Errorf("unknown change kind %q: %w", in.Kind, ErrInvalidChange)
	}
}

func applyDates(it *domain.TimelineItem, in domain.ChangeIntent) error {
	if in.NewStart.IsZero() || in.NewEnd.IsZero() {
		return fmt.Errorf("item %s: change is missing dates: %w", it.ID, ErrInvalidChange)
	}
	start, end := domain.Day(in.NewStart), domain.Day(in.NewEnd)
	if end.Before(start) {
		return fmt.Errorf("item %s: end %s precedes start %s: %w",
			it.ID, domain.FormatDay(end), domain.FormatDay(start), ErrInvalidChange)
	}
	if it.Kind == domain.KindMilestone && !domain.SameDay(start, end) {
		return fmt.Errorf("milestone %s must stay on a single day: %w", it.ID, ErrInvalidChange)
	}
	it.StartDate, it.EndDate = start, end
	return nil
}
