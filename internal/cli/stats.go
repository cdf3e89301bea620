package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/qsrs/internal/core/dates"
	"github.com/example/qsrs/internal/wire"
)

// StatsCmd returns the stats command.
func StatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Log-derived summaries",
	}

	cmd.AddCommand(statsStatusCmd())
	cmd.AddCommand(statsDailyCmd())
	cmd.AddCommand(statsPopulateCmd())

	return cmd
}

func statsStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Bucket the hafiz's items by derived status",
		RunE: func(cmd *cobra.Command, args []string) error {
			hafizID, err := resolveHafizID(cmd)
			if err != nil {
				return err
			}

			counts, err := wire.StatsService().StatusCounts(cmd.Context(), hafizID)
			if err != nil {
				return err
			}

			items, pages := 0, 0.0
			fmt.Printf("\n%-24s %-8s %s\n", "STATUS", "ITEMS", "PAGES")
			fmt.Println("────────────────────────────────────────")
			for _, c := range counts {
				fmt.Printf("%-33s %-8d %.2f\n", statusLabel(c.Status), c.Items, c.Pages)
				items += c.Items
				pages += c.Pages
			}
			fmt.Println("────────────────────────────────────────")
			fmt.Printf("%-24s %-8d %.2f\n\n", "Total", items, pages)

			return nil
		},
	}
	addHafizFlag(cmd)
	return cmd
}

func statsDailyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily [from] [to]",
		Short: "Summarise revisions per day over a date range",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hafizID, err := resolveHafizID(cmd)
			if err != nil {
				return err
			}

			from, to := "", ""
			switch len(args) {
			case 2:
				from, to = args[0], args[1]
			case 1:
				from, to = args[0], args[0]
			default:
				hafiz, err := wire.HafizService().GetHafiz(cmd.Context(), hafizID)
				if err != nil {
					return err
				}
				to = hafiz.CurrentDate
				from = dates.SubDays(to, 6)
			}

			days, err := wire.StatsService().DatewiseSummary(cmd.Context(), hafizID, from, to)
			if err != nil {
				return err
			}

			if len(days) == 0 {
				fmt.Printf("No revisions between %s and %s\n", from, to)
				return nil
			}

			fmt.Printf("\n%-12s %-6s %-7s %-5s %-5s %s\n", "DATE", "REVS", "PAGES", "GOOD", "OK", "BAD")
			fmt.Println("─────────────────────────────────────────────")
			for _, d := range days {
				fmt.Printf("%-12s %-6d %-7.2f %-5d %-5d %d\n",
					d.Date, d.Revisions, d.Pages, d.Good, d.Ok, d.Bad)
			}
			fmt.Println()

			return nil
		},
	}
	addHafizFlag(cmd)
	return cmd
}

func statsPopulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "populate [item-id]",
		Short: "Rebuild stat columns from the revision log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hafizID, err := resolveHafizID(cmd)
			if err != nil {
				return err
			}

			var itemID int64
			if len(args) == 1 {
				itemID, err = strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid item id %q", args[0])
				}
			}

			if err := wire.StatsService().Populate(cmd.Context(), hafizID, itemID); err != nil {
				return err
			}

			if itemID > 0 {
				fmt.Printf("✓ Rebuilt stats for item %d\n", itemID)
			} else {
				fmt.Println("✓ Rebuilt stats for all items")
			}
			return nil
		},
	}
	addHafizFlag(cmd)
	return cmd
}
