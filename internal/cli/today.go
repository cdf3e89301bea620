package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/qsrs/internal/core/mode"
	"github.com/example/qsrs/internal/ports/primary"
	"github.com/example/qsrs/internal/wire"
)

// TodayCmd returns the today command.
func TodayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show every mode's queue for the current date",
		RunE: func(cmd *cobra.Command, args []string) error {
			hafizID, err := resolveHafizID(cmd)
			if err != nil {
				return err
			}
			date, _ := cmd.Flags().GetString("date")
			modeFlag, _ := cmd.Flags().GetString("mode")

			if modeFlag != "" {
				c := mode.Code(strings.ToUpper(modeFlag))
				items, err := wire.QueueService().ItemsForMode(cmd.Context(), hafizID, c, date)
				if err != nil {
					return err
				}
				m, _ := mode.Get(c)
				printQueue(m, items)
				return nil
			}

			queues, err := wire.QueueService().Queues(cmd.Context(), hafizID, date)
			if err != nil {
				return err
			}

			total := 0
			for _, q := range queues {
				if len(q.Items) == 0 {
					continue
				}
				printQueue(q.Mode, q.Items)
				total += len(q.Items)
			}
			if total == 0 {
				fmt.Println("Nothing due today")
			}

			return nil
		},
	}
	addHafizFlag(cmd)
	cmd.Flags().String("date", "", "queue date (YYYY-MM-DD, defaults to the hafiz clock)")
	cmd.Flags().String("mode", "", "show a single mode's queue (NM, DR, WR, FR, MR, FC, SR)")
	return cmd
}

func printQueue(m mode.Mode, items []*primary.QueueItem) {
	fmt.Printf("\n%s %s (%d)\n", m.Icon, color.New(color.Bold).Sprint(m.Name), len(items))
	if len(items) == 0 {
		fmt.Println("  (empty)")
		return
	}

	fmt.Printf("  %-6s %-22s %-12s %-12s %-8s %s\n", "ITEM", "PAGE", "DUE", "LAST", "STREAK", "STATUS")
	for _, it := range items {
		due := it.NextReview
		if due == "" {
			due = "-"
		}
		last := it.LastReview
		if last == "" {
			last = "-"
		}
		streak := fmt.Sprintf("%d/%d", it.GoodStreak, it.BadStreak)
		line := fmt.Sprintf("  %-6d %-22s %-12s %-12s %-8s %s",
			it.ItemID, itemLabel(it.PageNumber, it.PartNumber, it.SurahName), due, last, streak, statusLabel(it.Status))
		if it.ReviewedToday {
			line += color.GreenString(" ✓")
		}
		fmt.Println(line)
	}
}
