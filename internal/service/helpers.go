package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/depgraph"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
)

// now is the timestamp stored on created and updated rows.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// loadGraph builds the dependency graph over every stored item.
func loadGraph(ctx context.Context, items repository.ItemRepo, deps repository.DependencyRepo) (*depgraph.Graph, map[string]*domain.TimelineItem, error) {
	all, err := items.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	edges, err := deps.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	g := depgraph.New()
	byID := make(map[string]*domain.TimelineItem, len(all))
	for _, it := range all {
		g.AddNode(it.ID)
		byID[it.ID] = it
	}
	for _, e := range edges {
		g.AddEdge(e.FromID, e.ToID)
	}
	return g, byID, nil
}

// checkParent enforces that an item's parent is a stage of its own group
// and that stages are never nested.
func checkParent(ctx context.Context, items repository.ItemRepo, it *domain.TimelineItem, parentID string) error {
	if parentID == "" {
		return nil
	}
	if it.Kind == domain.KindStage {
		return fmt.Errorf("stage %s cannot have a parent: %w", it.ID, ErrInvalidChange)
	}
	if parentID == it.ID {
		return fmt.Errorf("item %s cannot be its own parent: %w", it.ID, ErrInvalidChange)
	}
	parent, err := items.GetByID(ctx, parentID)
	if err != nil {
		return fmt.Errorf("loading parent %s: %w", parentID, err)
	}
	if parent.Kind != domain.KindStage {
		return fmt.Errorf("parent %s is a %s, not a stage: %w", parentID, parent.Kind, ErrInvalidChange)
	}
	if parent.GroupID != it.GroupID {
		return fmt.Errorf("parent %s belongs to another group: %w", parentID, ErrInvalidChange)
	}
	return nil
}

// uniqueShortID picks the first free suggestion for name.
func uniqueShortID(ctx context.Context, groups repository.GroupRepo, name string) (string, error) {
	for n := 1; n < 100; n++ {
		candidate := domain.SuggestShortID(name, n)
		_, err := groups.GetByShortID(ctx, candidate)
		if errors.Is(err, repository.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking short id %s: %w", candidate, err)
		}
	}
	return "", fmt.Errorf("no free short id for %q", name)
}
