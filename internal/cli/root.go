package cli

import (
	"time"

	"github.com/alexanderramin/gantt/internal/config"
	"github.com/alexanderramin/gantt/internal/service"
	"github.com/alexanderramin/gantt/internal/timeline"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Timeline service.TimelineService
	Items    service.ItemService
	Deps     service.DependencyService
	Groups   service.GroupService
	Holidays service.HolidayService
	Import   service.ImportService

	// Config is set by the root command before any subcommand runs.
	Config *config.Config

	// Open wires the services for a loaded configuration. Leave nil when the
	// services are already set, as in tests.
	Open func(cfg *config.Config) error

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// Confirm asks a yes/no question. Nil uses a huh confirmation form.
	Confirm func(title string) (bool, error)

	// TimelineObserver receives interaction events from the TUI.
	TimelineObserver timeline.Observer

	// Clock defaults to time.Now.
	Clock func() time.Time
}

func (a *App) now() time.Time {
	if a.Clock != nil {
		return a.Clock()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "gantt" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "gantt",
		Short:         "Interactive Gantt timeline for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			app.Config = cfg
			if app.Open != nil {
				return app.Open(cfg)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runTUI(cmd, app)
			}
			return renderStatic(cmd, app, defaultColumns, false)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default ./gantt.yaml)")
	pf.String("db", "", "Database path (default ~/.gantt/gantt.db)")
	pf.String("scale", "", "Zoom: fit_all, auto, six_weeks, quarter, half_year or weeks:N")
	pf.Int("weeks", 0, "Fixed window length in weeks")
	pf.Float64("width", 0, "Drawing width in pixels for window calculations")
	pf.Bool("allow-completed", false, "Allow dragging completed items")
	pf.BoolP("verbose", "v", false, "Log use cases and gestures to stderr")

	root.AddCommand(
		newShowCmd(app),
		newWindowCmd(app),
		newTUICmd(app),
		newItemCmd(app),
		newGroupCmd(app),
		newDepCmd(app),
		newHolidayCmd(app),
		newImportCmd(app),
	)

	return root
}
