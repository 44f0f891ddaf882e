package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/google/uuid"
)

type groupService struct {
	groups   repository.GroupRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewGroupService(groups repository.GroupRepo, uow db.UnitOfWork, observers ...UseCaseObserver) GroupService {
	return &groupService{groups: groups, uow: uow, observer: combineObservers(observers)}
}

// Create stores a new group, deriving a free short ID from its name when
// none is given.
func (s *groupService) Create(ctx context.Context, g *domain.Group) (err error) {
	fields := map[string]any{"name": g.Name}
	defer observe(ctx, s.observer, "create-group", now(), &err, fields)

	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.Status == "" {
		g.Status = domain.GroupActive
	}
	g.ShortID = strings.ToUpper(strings.TrimSpace(g.ShortID))
	if err = g.Validate(); err != nil {
		return err
	}
	ts := now()
	g.CreatedAt, g.UpdatedAt = ts, ts

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txGroups := repository.NewSQLiteGroupRepo(tx)
		if g.ShortID == "" {
			id, err := uniqueShortID(ctx, txGroups, g.Name)
			if err != nil {
				return err
			}
			g.ShortID = id
		}
		fields["short_id"] = g.ShortID
		return txGroups.Create(ctx, g)
	})
}

func (s *groupService) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	return s.groups.GetByID(ctx, id)
}

func (s *groupService) GetByShortID(ctx context.Context, shortID string) (*domain.Group, error) {
	return s.groups.GetByShortID(ctx, shortID)
}

func (s *groupService) List(ctx context.Context) ([]*domain.Group, error) {
	return s.groups.List(ctx)
}

func (s *groupService) Update(ctx context.Context, g *domain.Group) (err error) {
	defer observe(ctx, s.observer, "update-group", now(), &err, map[string]any{"group": g.ID})
	if err = g.Validate(); err != nil {
		return err
	}
	g.UpdatedAt = now()
	return s.groups.Update(ctx, g)
}

// Delete removes the group together with its items.
func (s *groupService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-group", now(), &err, map[string]any{"group": id})
	return s.groups.Delete(ctx, id)
}
