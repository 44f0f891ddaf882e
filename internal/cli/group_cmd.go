package cli

import (
	"fmt"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/spf13/cobra"
)

func newGroupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage swimlane groups",
	}

	cmd.AddCommand(
		newGroupAddCmd(app),
		newGroupListCmd(app),
		newGroupRemoveCmd(app),
	)

	return cmd
}

func newGroupAddCmd(app *App) *cobra.Command {
	var name, shortID string
	var order int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			g := &domain.Group{Name: name, ShortID: shortID, OrderIndex: order}
			if err := app.Groups.Create(cmd.Context(), g); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created group %s [%s]\n", g.Name, g.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Group name")
	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (3-6 letters + 2-4 digits, e.g. WEB01); generated when empty")
	cmd.Flags().IntVar(&order, "order", 0, "Display order")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newGroupListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := app.Groups.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(groups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No groups found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.GroupTable(groups))
			return nil
		},
	}
}

func newGroupRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a group and all of its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := resolveGroup(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !yes {
				ok, err := confirm(app, fmt.Sprintf("Delete group %s and all of its items?", g.DisplayName()))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := app.Groups.Delete(ctx, g.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted group %s\n", g.DisplayName())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
