package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/google/uuid"
)

type itemService struct {
	items    repository.ItemRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewItemService(items repository.ItemRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ItemService {
	return &itemService{items: items, uow: uow, observer: combineObservers(observers)}
}

// Create assigns an id, a group-scoped seq and timestamps, then stores the
// item once its parent checks out.
func (s *itemService) Create(ctx context.Context, it *domain.TimelineItem) (err error) {
	fields := map[string]any{"kind": string(it.Kind)}
	defer observe(ctx, s.observer, "create-item", now(), &err, fields)

	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	if it.Status == "" {
		it.Status = domain.StatusTodo
	}
	it.StartDate, it.EndDate = domain.Day(it.StartDate), domain.Day(it.EndDate)
	if it.Kind == domain.KindMilestone && it.EndDate.IsZero() {
		it.EndDate = it.StartDate
	}
	if err = it.Validate(); err != nil {
		return err
	}
	ts := now()
	it.CreatedAt, it.UpdatedAt = ts, ts

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteItemRepo(tx)
		if err := checkParent(ctx, txItems, it, it.Parent()); err != nil {
			return err
		}
		seq, err := repository.NewSQLiteGroupSequenceRepo(tx).NextGroupSeq(ctx, it.GroupID)
		if err != nil {
			return err
		}
		it.Seq = seq
		fields["seq"] = seq
		return txItems.Create(ctx, it)
	})
}

func (s *itemService) GetByID(ctx context.Context, id string) (*domain.TimelineItem, error) {
	return s.items.GetByID(ctx, id)
}

func (s *itemService) GetBySeq(ctx context.Context, groupID string, seq int) (*domain.TimelineItem, error) {
	return s.items.GetBySeq(ctx, groupID, seq)
}

func (s *itemService) List(ctx context.Context) ([]*domain.TimelineItem, error) {
	return s.items.List(ctx)
}

func (s *itemService) ListByGroup(ctx context.Context, groupID string) ([]*domain.TimelineItem, error) {
	return s.items.ListByGroup(ctx, groupID)
}

func (s *itemService) Update(ctx context.Context, it *domain.TimelineItem) (err error) {
	defer observe(ctx, s.observer, "update-item", now(), &err, map[string]any{"item": it.ID})

	if err = it.Validate(); err != nil {
		return err
	}
	it.UpdatedAt = now()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteItemRepo(tx)
		if err := checkParent(ctx, txItems, it, it.Parent()); err != nil {
			return err
		}
		return txItems.Update(ctx, it)
	})
}

// SetStatus refuses to mark an item done while any direct prerequisite is
// still open.
func (s *itemService) SetStatus(ctx context.Context, id string, status domain.ItemStatus) (err error) {
	fields := map[string]any{"item": id, "status": string(status)}
	defer observe(ctx, s.observer, "set-status", now(), &err, fields)

	if !domain.ValidItemStatuses[string(status)] {
		return fmt.Errorf("invalid status %q", status)
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteItemRepo(tx)
		g, byID, err := loadGraph(ctx, txItems, repository.NewSQLiteDependencyRepo(tx))
		if err != nil {
			return err
		}
		it, ok := byID[id]
		if !ok {
			return fmt.Errorf("item %s: %w", id, repository.ErrNotFound)
		}

		if status == domain.StatusDone {
			open := g.UnfinishedPrerequisites(id, func(pid string) domain.ItemStatus {
				return byID[pid].Status
			})
			if len(open) > 0 {
				fields["open_prerequisites"] = len(open)
				return fmt.Errorf("item %q depends on %d open item(s): %w", it.Name, len(open), ErrUnfinishedPrerequisite)
			}
			it.Progress = 1
		}
		it.Status = status
		it.UpdatedAt = now()
		return txItems.Update(ctx, it)
	})
}

func (s *itemService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-item", now(), &err, map[string]any{"item": id})
	return s.items.Delete(ctx, id)
}
