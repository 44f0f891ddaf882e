package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("not found")

type GroupRepo interface {
	Create(ctx context.Context, g *domain.Group) error
	GetByID(ctx context.Context, id string) (*domain.Group, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Group, error)
	List(ctx context.Context) ([]*domain.Group, error)
	Update(ctx context.Context, g *domain.Group) error
	Delete(ctx context.Context, id string) error
}

// GroupSequenceRepo hands out group-scoped item numbers.
type GroupSequenceRepo interface {
	NextGroupSeq(ctx context.Context, groupID string) (int, error)
}

type ItemRepo interface {
	Create(ctx context.Context, it *domain.TimelineItem) error
	GetByID(ctx context.Context, id string) (*domain.TimelineItem, error)
	GetBySeq(ctx context.Context, groupID string, seq int) (*domain.TimelineItem, error)
	List(ctx context.Context) ([]*domain.TimelineItem, error)
	ListByGroup(ctx context.Context, groupID string) ([]*domain.TimelineItem, error)
	Update(ctx context.Context, it *domain.TimelineItem) error
	Delete(ctx context.Context, id string) error
}

// DependencyRepo stores edges as (item, depends-on) pairs. Edges returned
// carry FromID = prerequisite and ToID = dependent item.
type DependencyRepo interface {
	Create(ctx context.Context, itemID, dependsOnID string) error
	Delete(ctx context.Context, itemID, dependsOnID string) error
	ListAll(ctx context.Context) ([]domain.DependencyEdge, error)
	ListPrerequisites(ctx context.Context, itemID string) ([]string, error)
}

type HolidayRepo interface {
	Add(ctx context.Context, day time.Time, name string) error
	List(ctx context.Context) ([]domain.Holiday, error)
	Delete(ctx context.Context, day time.Time) error
}
