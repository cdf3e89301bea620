package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/qsrs/internal/core/mode"
	"github.com/example/qsrs/internal/ports/primary"
	"github.com/example/qsrs/internal/wire"
)

// RevisionCmd returns the revision command.
func RevisionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "revision",
		Aliases: []string{"rev"},
		Short:   "Grade reviews and maintain the revision log",
	}

	cmd.AddCommand(revisionRateCmd())
	cmd.AddCommand(revisionBulkCmd())
	cmd.AddCommand(revisionRatePageCmd())
	cmd.AddCommand(revisionEditCmd())
	cmd.AddCommand(revisionMoveCmd())
	cmd.AddCommand(revisionDeleteCmd())
	cmd.AddCommand(revisionLogCmd())

	return cmd
}

func revisionRateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate [item-id] [good|ok|bad]",
		Short: "Grade one review for an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hafizID, err := resolveHafizID(cmd)
			if err != nil {
				return err
			}
			itemID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid item id %q", args[0])
			}
			rating, err := parseRating(args[1])
			if err != nil {
				return err
			}
			modeFlag, _ := cmd.Flags().GetString("mode")
			date, _ := cmd.Flags().GetString("date")

			rev, err := wire.RevisionService().Rate(cmd.Context(), primary.RateRequest{
				HafizID: hafizID,
				ItemID:  itemID,
				Mode:    mode.Code(strings.ToUpper(modeFlag)),
				Date:    date,
				Rating:  rating,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Rated item %d %s in %s on %s (revision %d)\n",
				rev.ItemID, ratingLabel(rev.Rating), rev.Mode, rev.Date, rev.ID)
			return nil
		},
	}
	addHafizFlag(cmd)
	cmd.Flags().String("mode", "FC", "mode the review happened in")
	cmd.Flags().String("date", "", "review date (YYYY-MM-DD, defaults to the hafiz clock)")
	return cmd
}

func revisionBulkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulk [good|ok|bad] [item-id...]",
		Short: "Grade a run of items with a shared rating",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hafizID, err := resolveHafizID(cmd)
			if err != nil {
				return err
			}
			rating, err := parseRating(args[0])
			if err != nil {
				return err
			}

			itemIDs := make([]int64, 0, len(args)-1)
			for _, a := range args[1:] {
				id, err := strconv.ParseInt(a, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid item id %q", a)
				}
				itemIDs = append(itemIDs, id)
			}

			modeFlag, _ := cmd.Flags().GetString("mode")
			date, _ := cmd.Flags().GetString("date")

			n, err := wire.RevisionService().BulkRate(cmd.Context(), primary.BulkRateRequest{
				HafizID: hafizID,
				ItemIDs: itemIDs,
				Mode:    mode.Code(strings.ToUpper(modeFlag)),
				Date:    date,
				Rating:  rating,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Rated %d of %d items %s\n", n, len(itemIDs), ratingLabel(rating))
			return nil
		},
	}
	addHafizFlag(cmd)
	cmd.Flags().String("mode", "FC", "mode the reviews happened in")
	cmd.Flags().String("date", "", "review date (YYYY-MM-DD, defaults to the hafiz clock)")
	return cmd
}

func revisionRatePageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate-page [page] [good|ok|bad]",
		Short: "Grade every active item of a mushaf page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hafizID, err := resolveHafizID(cmd)
			if err != nil {
				return err
			}
			page, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid page %q", args[0])
			}
			rating, err := parseRating(args[1])
			if err != nil {
				return err
			}
			modeFlag, _ := cmd.Flags().GetString("mode")
			date, _ := cmd.Flags().GetString("date")

			n, err := wire.RevisionService().RatePage(cmd.Context(), primary.RatePageRequest{
				HafizID:    hafizID,
				PageNumber: page,
				Mode:       mode.Code(strings.ToUpper(modeFlag)),
				Date:       date,
				Rating:     rating,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Rated %d items on page %d %s\n", n, page, ratingLabel(rating))
			return nil
		},
	}
	addHafizFlag(cmd)
	cmd.Flags().String("mode", "FC", "mode the reviews happened in")
	cmd.Flags().String("date", "", "review date (YYYY-MM-DD, defaults to the hafiz clock)")
	return cmd
}

func revisionEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [revision-id] [good|ok|bad]",
		Short: "Change a revision's rating",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid revision id %q", args[0])
			}
			rating, err := parseRating(args[1])
			if err != nil {
				return err
			}

			rev, err := wire.RevisionService().EditRating(cmd.Context(), id, rating)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Revision %d is now %s\n", rev.ID, ratingLabel(rev.Rating))
			return nil
		},
	}
}

func revisionMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move [revision-id] [date]",
		Short: "Move a revision to another date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid revision id %q", args[0])
			}

			rev, err := wire.RevisionService().ChangeDate(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}

			fmt.Printf("✓ Revision %d moved to %s\n", rev.ID, rev.Date)
			return nil
		},
	}
}

func revisionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [revision-id]",
		Short: "Delete a revision and re-project the item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid revision id %q", args[0])
			}

			if err := wire.RevisionService().DeleteRevision(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Printf("✓ Deleted revision %d\n", id)
			return nil
		},
	}
}

func revisionLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log [item-id]",
		Short: "Show an item's revision log in date order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hafizID, err := resolveHafizID(cmd)
			if err != nil {
				return err
			}
			itemID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid item id %q", args[0])
			}

			revs, err := wire.RevisionService().ListByItem(cmd.Context(), hafizID, itemID)
			if err != nil {
				return err
			}

			if len(revs) == 0 {
				fmt.Println("No revisions found")
				return nil
			}

			fmt.Printf("\n%-6s %-12s %-5s %-8s %-6s %s\n", "ID", "DATE", "MODE", "RATING", "PLAN", "INTERVAL")
			fmt.Println("─────────────────────────────────────────────────")
			for _, r := range revs {
				plan := "-"
				if r.PlanID > 0 {
					plan = strconv.FormatInt(r.PlanID, 10)
				}
				interval := "-"
				if r.NextInterval > 0 {
					interval = strconv.Itoa(r.NextInterval)
				}
				fmt.Printf("%-6d %-12s %-5s %-17s %-6s %s\n",
					r.ID, r.Date, r.Mode, ratingLabel(r.Rating), plan, interval)
			}
			fmt.Println()

			return nil
		},
	}
	addHafizFlag(cmd)
	return cmd
}
