package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/gantt/internal/cli"
	"github.com/alexanderramin/gantt/internal/config"
	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/alexanderramin/gantt/internal/service"
	"github.com/alexanderramin/gantt/internal/timeline"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{}

	// Detect interactive terminal: the bare command opens the TUI only there.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Services are wired once the root command has resolved the config, so
	// --db and GANTT_DB pick the database.
	app.Open = func(cfg *config.Config) error {
		var err error
		database, err = db.OpenDB(cfg.DB)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}

		var logTo io.Writer
		if cfg.Log.Enabled {
			logTo = os.Stderr
			app.TimelineObserver = timeline.NewLogObserver(os.Stderr)
		}
		obs := service.NewLogUseCaseObserver(logTo)

		// Wire repositories
		itemRepo := repository.NewSQLiteItemRepo(database)
		groupRepo := repository.NewSQLiteGroupRepo(database)
		depRepo := repository.NewSQLiteDependencyRepo(database)
		holidayRepo := repository.NewSQLiteHolidayRepo(database)

		// Wire unit of work for transactional operations
		uow := db.NewSQLiteUnitOfWork(database)

		// Wire services
		app.Timeline = service.NewTimelineService(itemRepo, groupRepo, depRepo, holidayRepo, uow, obs)
		app.Items = service.NewItemService(itemRepo, uow, obs)
		app.Deps = service.NewDependencyService(depRepo, uow, obs)
		app.Groups = service.NewGroupService(groupRepo, uow, obs)
		app.Holidays = service.NewHolidayService(holidayRepo, obs)
		app.Import = service.NewImportService(uow, obs)
		return nil
	}

	// Execute root command
	return cli.NewRootCmd(app).Execute()
}
