package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Load groups, items, dependencies and holidays from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, g := range res.Groups {
				fmt.Fprintf(out, "Imported group %s [%s]\n", g.Name, g.ShortID)
			}
			fmt.Fprintf(out, "%d items, %d dependencies, %d holidays\n",
				res.ItemCount, res.DependencyCount, res.HolidayCount)
			return nil
		},
	}
}
