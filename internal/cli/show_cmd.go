package cli

import (
	"fmt"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/timeline"
	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	var columns int
	var noEdges bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the timeline as a static chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderStatic(cmd, app, columns, !noEdges)
		},
	}

	cmd.Flags().IntVar(&columns, "columns", defaultColumns, "Chart width in terminal columns")
	cmd.Flags().BoolVar(&noEdges, "no-deps", false, "Omit the dependency list")

	return cmd
}

func renderStatic(cmd *cobra.Command, app *App, columns int, showEdges bool) error {
	o, err := loadOrchestrator(cmd.Context(), app, terminalOptions(app.Config, columns, app), timeline.Callbacks{})
	if err != nil {
		return err
	}
	f := o.Frame()
	out := formatter.RenderChart(f, formatter.ChartOptions{
		Title:     formatter.WindowTitle(f.Window, o.Scale()),
		ShowEdges: showEdges,
	})
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func newWindowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Show the visible date window and its ticks",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.Config.TimelineOptions()
			opts.Clock = app.now
			o, err := loadOrchestrator(cmd.Context(), app, opts, timeline.Callbacks{})
			if err != nil {
				return err
			}
			f := o.Frame()
			fmt.Fprintln(cmd.OutOrStdout(), formatter.WindowTitle(f.Window, o.Scale()))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.WindowTable(f))
			return nil
		},
	}
}
