package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/importer"
	"github.com/alexanderramin/gantt/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: combineObservers(observers)}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportFromSchema(ctx, schema)
}

// ImportFromSchema validates, converts and stores a seed in one transaction.
func (s *importService) ImportFromSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "import", now(), &err, fields)

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	generated, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		groups := repository.NewSQLiteGroupRepo(tx)
		items := repository.NewSQLiteItemRepo(tx)
		deps := repository.NewSQLiteDependencyRepo(tx)
		holidays := repository.NewSQLiteHolidayRepo(tx)

		for _, g := range generated.Groups {
			if g.ShortID == "" {
				id, err := uniqueShortID(ctx, groups, g.Name)
				if err != nil {
					return err
				}
				g.ShortID = id
			}
			if err := groups.Create(ctx, g); err != nil {
				return fmt.Errorf("creating group %q: %w", g.Name, err)
			}
		}
		for _, it := range generated.Items {
			if err := items.Create(ctx, it); err != nil {
				return fmt.Errorf("creating item %q: %w", it.Name, err)
			}
		}
		for _, e := range generated.Dependencies {
			if err := deps.Create(ctx, e.ToID, e.FromID); err != nil {
				return fmt.Errorf("creating dependency: %w", err)
			}
		}
		for _, h := range generated.Holidays {
			if err := holidays.Add(ctx, h.Day, h.Name); err != nil {
				return fmt.Errorf("creating holiday: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["groups"] = len(generated.Groups)
	fields["items"] = len(generated.Items)
	return &ImportResult{
		Groups:          generated.Groups,
		ItemCount:       len(generated.Items),
		DependencyCount: len(generated.Dependencies),
		HolidayCount:    len(generated.Holidays),
	}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
