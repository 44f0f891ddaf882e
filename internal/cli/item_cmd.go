package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/spf13/cobra"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage tasks, stages and milestones",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemListCmd(app),
		newItemMoveCmd(app),
		newItemStatusCmd(app),
		newItemRemoveCmd(app),
	)

	return cmd
}

func parseDayFlag(name, value string) (time.Time, error) {
	d, err := domain.ParseDay(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: %w", name, value, err)
	}
	return d, nil
}

func newItemAddCmd(app *App) *cobra.Command {
	var group, name, kind, start, end, parent, assignee, status string
	var progress float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an item",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := resolveGroup(ctx, app, group)
			if err != nil {
				return err
			}
			if !domain.ValidItemKinds[kind] {
				return fmt.Errorf("invalid --kind %q (use task, stage or milestone)", kind)
			}

			it := &domain.TimelineItem{
				Kind:     domain.ItemKind(kind),
				GroupID:  g.ID,
				Name:     name,
				Assignee: assignee,
				Status:   domain.ItemStatus(status),
				Progress: progress,
			}
			if it.StartDate, err = parseDayFlag("start", start); err != nil {
				return err
			}
			if end != "" {
				if it.EndDate, err = parseDayFlag("end", end); err != nil {
					return err
				}
			} else if it.Kind != domain.KindMilestone {
				return fmt.Errorf("--end is required for a %s", kind)
			}
			if parent != "" {
				p, err := resolveItem(ctx, app, parent, g.ShortID)
				if err != nil {
					return err
				}
				it.ParentID = &p.ID
			}

			if err := app.Items.Create(ctx, it); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s %s\n", it.Kind, formatter.ItemRef(g, it), it.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "Group short ID or UUID")
	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&kind, "kind", string(domain.KindTask), "task, stage or milestone")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent stage reference")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee")
	cmd.Flags().StringVar(&status, "status", "", "todo, in_progress, blocked or done")
	cmd.Flags().Float64Var(&progress, "progress", 0, "Progress between 0 and 1")
	_ = cmd.MarkFlagRequired("group")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newItemListCmd(app *App) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			groups, err := groupIndex(ctx, app)
			if err != nil {
				return err
			}

			var items []*domain.TimelineItem
			if group != "" {
				g, err := resolveGroup(ctx, app, group)
				if err != nil {
					return err
				}
				items, err = app.Items.ListByGroup(ctx, g.ID)
				if err != nil {
					return err
				}
			} else {
				items, err = app.Items.List(ctx)
				if err != nil {
					return err
				}
			}

			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No items found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.ItemTable(items, groups))
			return nil
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "Only list this group")

	return cmd
}

func newItemMoveCmd(app *App) *cobra.Command {
	var group, start, end, parent string
	var by int
	var topLevel bool

	cmd := &cobra.Command{
		Use:   "move REF",
		Short: "Shift, resize or re-parent an item",
		Long: "Shift an item by --by days, set its --start and/or --end, or move it\n" +
			"under another stage with --parent (or out of one with --top-level).\n" +
			"All changes are saved together.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			it, err := resolveItem(ctx, app, args[0], group)
			if err != nil {
				return err
			}

			intents, err := moveIntents(it, by, start, end)
			if err != nil {
				return err
			}
			switch {
			case topLevel && parent != "":
				return fmt.Errorf("--parent and --top-level are mutually exclusive")
			case topLevel:
				intents = append(intents, domain.ChangeIntent{ItemID: it.ID, Kind: domain.ChangeReparent})
			case parent != "":
				p, err := resolveItem(ctx, app, parent, group)
				if err != nil {
					return err
				}
				intents = append(intents, domain.ChangeIntent{ItemID: it.ID, Kind: domain.ChangeReparent, NewParentID: p.ID})
			}
			if len(intents) == 0 {
				return fmt.Errorf("nothing to change: use --by, --start, --end, --parent or --top-level")
			}

			updated, err := app.Timeline.ApplyChanges(ctx, intents)
			if err != nil {
				return err
			}
			for _, u := range updated {
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s  %s\n", u.Name, formatter.DayRange(u.StartDate, u.EndDate))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "Group for numeric references")
	cmd.Flags().IntVar(&by, "by", 0, "Shift by this many days (negative moves earlier)")
	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "New end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&parent, "parent", "", "New parent stage reference")
	cmd.Flags().BoolVar(&topLevel, "top-level", false, "Detach from its stage")

	return cmd
}

// moveIntents translates the date flags of "item move" into change intents.
// A milestone given one date moves to it; other items given only one date
// are resized at that end.
func moveIntents(it *domain.TimelineItem, by int, start, end string) ([]domain.ChangeIntent, error) {
	if by != 0 && (start != "" || end != "") {
		return nil, fmt.Errorf("--by cannot be combined with --start or --end")
	}
	if by != 0 {
		return []domain.ChangeIntent{{
			ItemID:   it.ID,
			Kind:     domain.ChangeMove,
			NewStart: domain.AddDays(it.StartDate, by),
			NewEnd:   domain.AddDays(it.EndDate, by),
		}}, nil
	}
	if start == "" && end == "" {
		return nil, nil
	}

	in := domain.ChangeIntent{ItemID: it.ID, NewStart: it.StartDate, NewEnd: it.EndDate}
	var err error
	if start != "" {
		if in.NewStart, err = parseDayFlag("start", start); err != nil {
			return nil, err
		}
	}
	if end != "" {
		if in.NewEnd, err = parseDayFlag("end", end); err != nil {
			return nil, err
		}
	}

	switch {
	case it.Kind == domain.KindMilestone:
		in.Kind = domain.ChangeMove
		if start == "" {
			in.NewStart = in.NewEnd
		}
		in.NewEnd = in.NewStart
	case start != "" && end != "":
		in.Kind = domain.ChangeMove
	case start != "":
		in.Kind = domain.ChangeResizeStart
	default:
		in.Kind = domain.ChangeResizeEnd
	}
	return []domain.ChangeIntent{in}, nil
}

func newItemStatusCmd(app *App) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "status REF STATUS",
		Short: "Set an item's status (todo, in_progress, blocked, done)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			it, err := resolveItem(ctx, app, args[0], group)
			if err != nil {
				return err
			}
			status := domain.ItemStatus(strings.ToLower(args[1]))
			if err := app.Items.SetStatus(ctx, it.ID, status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", it.Name, formatter.StatusPill(status))
			return nil
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "Group for numeric references")

	return cmd
}

func newItemRemoveCmd(app *App) *cobra.Command {
	var group string
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove REF",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			it, err := resolveItem(ctx, app, args[0], group)
			if err != nil {
				return err
			}

			if !yes {
				title := fmt.Sprintf("Delete %s %q?", it.Kind, it.Name)
				if it.Kind == domain.KindStage {
					title += " Its children stay, without a parent."
				}
				ok, err := confirm(app, title)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Items.Delete(ctx, it.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", it.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "Group for numeric references")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
