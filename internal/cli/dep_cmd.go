package cli

import (
	"fmt"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/spf13/cobra"
)

func newDepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage finish-to-start dependencies",
	}

	cmd.AddCommand(
		newDepAddCmd(app),
		newDepRemoveCmd(app),
		newDepListCmd(app),
	)

	return cmd
}

func newDepAddCmd(app *App) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "add ITEM PREREQUISITE",
		Short: "Make ITEM depend on PREREQUISITE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			it, err := resolveItem(ctx, app, args[0], group)
			if err != nil {
				return err
			}
			pre, err := resolveItem(ctx, app, args[1], group)
			if err != nil {
				return err
			}
			if err := app.Deps.Add(ctx, it.ID, pre.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s → %s\n", pre.Name, it.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "Group for numeric references")

	return cmd
}

func newDepRemoveCmd(app *App) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "remove ITEM PREREQUISITE",
		Short: "Drop a dependency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			it, err := resolveItem(ctx, app, args[0], group)
			if err != nil {
				return err
			}
			pre, err := resolveItem(ctx, app, args[1], group)
			if err != nil {
				return err
			}
			if err := app.Deps.Remove(ctx, it.ID, pre.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s → %s\n", pre.Name, it.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "Group for numeric references")

	return cmd
}

func newDepListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			edges, err := app.Deps.List(ctx)
			if err != nil {
				return err
			}
			if len(edges) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No dependencies.")
				return nil
			}

			items, err := app.Items.List(ctx)
			if err != nil {
				return err
			}
			groups, err := groupIndex(ctx, app)
			if err != nil {
				return err
			}
			byID := make(map[string]*domain.TimelineItem, len(items))
			for _, it := range items {
				byID[it.ID] = it
			}
			label := func(id string) string {
				it, ok := byID[id]
				if !ok {
					return formatter.TruncID(id)
				}
				return formatter.ItemRef(groups[it.GroupID], it) + " " + it.Name
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.DependencyTable(edges, label))
			return nil
		},
	}
}
