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

// ItemCmd returns the item command.
func ItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Inspect and adjust per-item memorization state",
	}

	cmd.AddCommand(itemShowCmd())
	cmd.AddCommand(itemNextCmd())
	cmd.AddCommand(itemSetStatusCmd())
	cmd.AddCommand(itemSetModeCmd())
	cmd.AddCommand(itemGraduateCmd())
	cmd.AddCommand(itemThresholdCmd())

	return cmd
}

func itemShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [item-id]",
		Short: "Show one item's state and catalog context",
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

			it, err := wire.ProfileService().GetItem(cmd.Context(), hafizID, itemID)
			if err != nil {
				return err
			}

			m, _ := mode.Get(it.Mode)

			fmt.Printf("\nItem:      %d - %s, juz %d", it.ItemID, itemLabel(it.PageNumber, it.PartNumber, it.SurahName), it.JuzNumber)
			if it.PageParts > 1 {
				fmt.Printf(" (part %d of %d)", it.PartNumber, it.PageParts)
			}
			fmt.Println()
			fmt.Printf("Status:    %s\n", statusLabel(it.Status))
			fmt.Printf("Mode:      %s %s\n", m.Icon, m.Name)
			fmt.Printf("Memorized: %t\n", it.Memorized)
			fmt.Printf("Last:      %s\n", orDash(it.LastReview))
			fmt.Printf("Next:      %s", orDash(it.NextReview))
			if it.NextInterval > 0 {
				fmt.Printf(" (interval %d)", it.NextInterval)
			}
			fmt.Println()
			if it.SRSStartDate != "" {
				fmt.Printf("SRS since: %s\n", it.SRSStartDate)
			}
			fmt.Printf("Streaks:   %d good, %d bad\n", it.GoodStreak, it.BadStreak)
			fmt.Printf("Counts:    %d good, %d bad, %d total (score %d)\n\n",
				it.GoodCount, it.BadCount, it.Count, it.Score)

			return nil
		},
	}
	addHafizFlag(cmd)
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func itemNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next [after-item-id]",
		Short: "Show the next active memorized item, for sequential entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hafizID, err := resolveHafizID(cmd)
			if err != nil {
				return err
			}

			var after int64
			if len(args) == 1 {
				after, err = strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid item id %q", args[0])
				}
			}

			it, err := wire.ProfileService().NextMemorized(cmd.Context(), hafizID, after)
			if err != nil {
				return err
			}

			fmt.Printf("Next: item %d - %s (%s)\n",
				it.ItemID, itemLabel(it.PageNumber, it.PartNumber, it.SurahName), statusLabel(it.Status))
			return nil
		},
	}
	addHafizFlag(cmd)
	return cmd
}

func itemSetStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-status [item-id] [status]",
		Short: "Jump an item to a status bucket (not-memorized, learning, reps, solid, struggling)",
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

			status := mode.Status(strings.ToLower(args[1]))
			if err := wire.ProfileService().SetStatus(cmd.Context(), primary.SetStatusRequest{
				HafizID: hafizID,
				ItemID:  itemID,
				Status:  status,
			}); err != nil {
				return err
			}

			fmt.Printf("✓ Item %d is now %s\n", itemID, statusLabel(status))
			return nil
		},
	}
	addHafizFlag(cmd)
	return cmd
}

func itemSetModeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-mode [item-id] [mode]",
		Short: "Move an item directly into a mode (NM, DR, WR, FR, MR, FC, SR)",
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

			target := mode.Code(strings.ToUpper(args[1]))
			if err := wire.ProfileService().ChangeMode(cmd.Context(), hafizID, itemID, target); err != nil {
				return err
			}

			fmt.Printf("✓ Item %d moved to %s\n", itemID, target)
			return nil
		},
	}
	addHafizFlag(cmd)
	return cmd
}

func itemGraduateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graduate [item-id]",
		Short: "Advance a rep-mode item to the next link of the chain",
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

			if err := wire.ProfileService().Graduate(cmd.Context(), hafizID, itemID); err != nil {
				return err
			}

			it, err := wire.ProfileService().GetItem(cmd.Context(), hafizID, itemID)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Item %d graduated to %s\n", itemID, it.Mode)
			return nil
		},
	}
	addHafizFlag(cmd)
	return cmd
}

func itemThresholdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "threshold [item-id] [mode=count...]",
		Short: "Override rep-mode graduation thresholds (count 0 clears)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hafizID, err := resolveHafizID(cmd)
			if err != nil {
				return err
			}
			itemID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid item id %q", args[0])
			}

			thresholds := make(map[mode.Code]int)
			for _, pair := range args[1:] {
				code, value, ok := strings.Cut(pair, "=")
				if !ok {
					return fmt.Errorf("invalid threshold %q (want mode=count)", pair)
				}
				n, err := strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("invalid threshold count %q", value)
				}
				thresholds[mode.Code(strings.ToUpper(code))] = n
			}

			if err := wire.ProfileService().ConfigureThresholds(cmd.Context(), primary.ConfigureThresholdsRequest{
				HafizID:    hafizID,
				ItemID:     itemID,
				Thresholds: thresholds,
			}); err != nil {
				return err
			}

			fmt.Printf("✓ Updated thresholds for item %d\n", itemID)
			return nil
		},
	}
	addHafizFlag(cmd)
	return cmd
}
