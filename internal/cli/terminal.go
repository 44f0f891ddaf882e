package cli

import (
	"context"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/config"
	"github.com/alexanderramin/gantt/internal/hierarchy"
	"github.com/alexanderramin/gantt/internal/position"
	"github.com/alexanderramin/gantt/internal/service"
	"github.com/alexanderramin/gantt/internal/timeline"
)

// defaultColumns is the chart width used when the terminal size is unknown.
const defaultColumns = 100

// minColumns keeps a usable chart on very narrow terminals.
const minColumns = 10

// terminalClickThreshold is the pointer travel, in cells, that turns a press
// into a drag. One cell of travel already counts.
const terminalClickThreshold = 0.5

// terminalOptions adapts the configured timeline options to a character
// grid: one pixel per column and one line per row.
func terminalOptions(cfg *config.Config, columns int, app *App) timeline.Options {
	opts := timeline.DefaultOptions()
	if cfg != nil {
		opts = cfg.TimelineOptions()
	}
	if columns < minColumns {
		columns = minColumns
	}
	opts.PixelWidth = float64(columns)
	opts.Heights = hierarchy.RowHeights{Header: 1, Stage: 1, Task: 1, Milestone: 1}
	opts.Position = position.Options{MinVisibleWidth: 1}
	opts.HandleWidth = 1
	opts.Interaction.ClickThreshold = terminalClickThreshold
	opts.Clock = app.now
	if app.TimelineObserver != nil {
		opts.Observer = app.TimelineObserver
	}
	return opts
}

// chartColumns is the number of chart cells that fit next to the label
// column in a terminal of the given width.
func chartColumns(termWidth int) int {
	cols := termWidth - formatter.DefaultLabelWidth - 1
	if cols < minColumns {
		return minColumns
	}
	return cols
}

// applySnapshot hands a loaded snapshot to the orchestrator.
func applySnapshot(o *timeline.Orchestrator, snap *service.Snapshot) {
	o.SetGroups(snap.Groups)
	o.SetHolidays(snap.Holidays)
	o.SetItems(snap.Items)
}

// loadOrchestrator builds an orchestrator and fills it from the database.
func loadOrchestrator(ctx context.Context, app *App, opts timeline.Options, cb timeline.Callbacks) (*timeline.Orchestrator, error) {
	snap, err := app.Timeline.Load(ctx)
	if err != nil {
		return nil, err
	}
	o := timeline.New(opts, cb)
	applySnapshot(o, snap)
	return o, nil
}
