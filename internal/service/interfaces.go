package service

import (
	"context"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/importer"
	"github.com/alexanderramin/gantt/internal/window"
)

// Snapshot is everything the timeline needs for one refresh.
type Snapshot struct {
	Items    []domain.TimelineItem
	Groups   []domain.Group
	Holidays window.HolidaySet
}

type TimelineService interface {
	Load(ctx context.Context) (*Snapshot, error)
	// ApplyChanges persists the intents of one gesture atomically.
	ApplyChanges(ctx context.Context, intents []domain.ChangeIntent) ([]*domain.TimelineItem, error)
}

type ItemService interface {
	Create(ctx context.Context, it *domain.TimelineItem) error
	GetByID(ctx context.Context, id string) (*domain.TimelineItem, error)
	GetBySeq(ctx context.Context, groupID string, seq int) (*domain.TimelineItem, error)
	List(ctx context.Context) ([]*domain.TimelineItem, error)
	ListByGroup(ctx context.Context, groupID string) ([]*domain.TimelineItem, error)
	Update(ctx context.Context, it *domain.TimelineItem) error
	SetStatus(ctx context.Context, id string, status domain.ItemStatus) error
	Delete(ctx context.Context, id string) error
}

type DependencyService interface {
	Add(ctx context.Context, itemID, dependsOnID string) error
	Remove(ctx context.Context, itemID, dependsOnID string) error
	List(ctx context.Context) ([]domain.DependencyEdge, error)
	Prerequisites(ctx context.Context, itemID string) ([]string, error)
}

type GroupService interface {
	Create(ctx context.Context, g *domain.Group) error
	GetByID(ctx context.Context, id string) (*domain.Group, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Group, error)
	List(ctx context.Context) ([]*domain.Group, error)
	Update(ctx context.Context, g *domain.Group) error
	Delete(ctx context.Context, id string) error
}

type HolidayService interface {
	Add(ctx context.Context, day time.Time, name string) error
	List(ctx context.Context) ([]domain.Holiday, error)
	Remove(ctx context.Context, day time.Time) error
	Calendar(ctx context.Context) (window.HolidaySet, error)
}

// ImportResult holds the outcome of a seed import.
type ImportResult struct {
	Groups          []*domain.Group
	ItemCount       int
	DependencyCount int
	HolidayCount    int
}

type ImportService interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
