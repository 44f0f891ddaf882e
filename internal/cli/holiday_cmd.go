package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/spf13/cobra"
)

func newHolidayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holiday",
		Short: "Manage non-working days shown on the axis",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add DATE [NAME...]",
			Short: "Mark a day as a holiday",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				day, err := domain.ParseDay(args[0])
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", args[0], err)
				}
				name := strings.Join(args[1:], " ")
				if err := app.Holidays.Add(cmd.Context(), day, name); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added holiday %s %s\n", domain.FormatDay(day), name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List holidays",
			RunE: func(cmd *cobra.Command, args []string) error {
				hs, err := app.Holidays.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(hs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No holidays.")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.HolidayTable(hs))
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove DATE",
			Short: "Unmark a holiday",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				day, err := domain.ParseDay(args[0])
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", args[0], err)
				}
				if err := app.Holidays.Remove(cmd.Context(), day); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed holiday %s\n", domain.FormatDay(day))
				return nil
			},
		},
	)

	return cmd
}
