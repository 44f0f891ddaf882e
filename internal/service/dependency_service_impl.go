package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
)

type dependencyService struct {
	deps     repository.DependencyRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewDependencyService(deps repository.DependencyRepo, uow db.UnitOfWork, observers ...UseCaseObserver) DependencyService {
	return &dependencyService{deps: deps, uow: uow, observer: combineObservers(observers)}
}

// Add records that itemID depends on dependsOnID. Re-adding an existing
// edge is a no-op; an edge that would close a cycle is rejected.
func (s *dependencyService) Add(ctx context.Context, itemID, dependsOnID string) (err error) {
	defer observe(ctx, s.observer, "add-dependency", now(), &err, map[string]any{"item": itemID, "depends_on": dependsOnID})

	if itemID == dependsOnID {
		return fmt.Errorf("item %s cannot depend on itself: %w", itemID, ErrCyclicDependency)
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txDeps := repository.NewSQLiteDependencyRepo(tx)
		g, byID, err := loadGraph(ctx, repository.NewSQLiteItemRepo(tx), txDeps)
		if err != nil {
			return err
		}
		for _, id := range []string{itemID, dependsOnID} {
			if _, ok := byID[id]; !ok {
				return fmt.Errorf("item %s: %w", id, repository.ErrNotFound)
			}
		}
		if g.HasEdge(dependsOnID, itemID) {
			return nil
		}
		if !g.CanAddDependency(itemID, dependsOnID) {
			return fmt.Errorf("%q -> %q: %w", byID[itemID].Name, byID[dependsOnID].Name, ErrCyclicDependency)
		}
		return txDeps.Create(ctx, itemID, dependsOnID)
	})
}

func (s *dependencyService) Remove(ctx context.Context, itemID, dependsOnID string) (err error) {
	defer observe(ctx, s.observer, "remove-dependency", now(), &err, map[string]any{"item": itemID, "depends_on": dependsOnID})
	return s.deps.Delete(ctx, itemID, dependsOnID)
}

func (s *dependencyService) List(ctx context.Context) ([]domain.DependencyEdge, error) {
	return s.deps.ListAll(ctx)
}

func (s *dependencyService) Prerequisites(ctx context.Context, itemID string) ([]string, error) {
	return s.deps.ListPrerequisites(ctx, itemID)
}
