package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/qsrs/internal/config"
	"github.com/example/qsrs/internal/ports/primary"
	"github.com/example/qsrs/internal/wire"
)

// HafizCmd returns the hafiz command.
func HafizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hafiz",
		Short: "Manage hafizs (students and their logical clocks)",
	}

	cmd.AddCommand(hafizCreateCmd())
	cmd.AddCommand(hafizListCmd())
	cmd.AddCommand(hafizShowCmd())
	cmd.AddCommand(hafizUseCmd())
	cmd.AddCommand(hafizUpdateCmd())
	cmd.AddCommand(hafizDeleteCmd())
	cmd.AddCommand(hafizPopulateCmd())

	return cmd
}

func hafizCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a hafiz with a state row for every catalog item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			capacity, _ := cmd.Flags().GetInt("capacity")

			hafiz, err := wire.HafizService().CreateHafiz(cmd.Context(), primary.CreateHafizRequest{
				Name:          args[0],
				DailyCapacity: capacity,
			})
			if err != nil {
				return fmt.Errorf("failed to create hafiz: %w", err)
			}

			fmt.Printf("✓ Created hafiz %d: %s (clock %s)\n", hafiz.ID, hafiz.Name, hafiz.CurrentDate)
			return nil
		},
	}
	cmd.Flags().Int("capacity", 0, "daily capacity in pages (default 20)")
	return cmd
}

func hafizListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List hafizs",
		RunE: func(cmd *cobra.Command, args []string) error {
			hafizs, err := wire.HafizService().ListHafizs(cmd.Context(), 0)
			if err != nil {
				return fmt.Errorf("failed to list hafizs: %w", err)
			}

			if len(hafizs) == 0 {
				fmt.Println("No hafizs found")
				return nil
			}

			cfg, _ := config.Load()

			fmt.Printf("\n%-5s %-20s %-12s %s\n", "ID", "NAME", "DATE", "CAPACITY")
			fmt.Println("──────────────────────────────────────────────────")
			for _, h := range hafizs {
				marker := " "
				if cfg != nil && cfg.ActiveHafizID == h.ID {
					marker = "*"
				}
				fmt.Printf("%s%-4d %-20s %-12s %d\n", marker, h.ID, h.Name, h.CurrentDate, h.DailyCapacity)
			}
			fmt.Println()

			return nil
		},
	}
}

func hafizShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [hafiz-id]",
		Short: "Show hafiz details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid hafiz id %q", args[0])
			}

			hafiz, err := wire.HafizService().GetHafiz(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Printf("\nHafiz:    %d\n", hafiz.ID)
			fmt.Printf("Name:     %s\n", hafiz.Name)
			fmt.Printf("Date:     %s\n", hafiz.CurrentDate)
			fmt.Printf("Capacity: %d pages/day\n\n", hafiz.DailyCapacity)

			return nil
		},
	}
}

func hafizUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use [hafiz-id]",
		Short: "Set the active hafiz for subsequent commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid hafiz id %q", args[0])
			}

			hafiz, err := wire.HafizService().GetHafiz(cmd.Context(), id)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg.ActiveHafizID = hafiz.ID
			if err := config.Save(cfg); err != nil {
				return err
			}

			fmt.Printf("✓ Active hafiz: %d (%s)\n", hafiz.ID, hafiz.Name)
			return nil
		},
	}
}

func hafizUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [hafiz-id]",
		Short: "Update name, capacity, or clock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid hafiz id %q", args[0])
			}

			name, _ := cmd.Flags().GetString("name")
			capacity, _ := cmd.Flags().GetInt("capacity")
			date, _ := cmd.Flags().GetString("date")

			if err := wire.HafizService().UpdateHafiz(cmd.Context(), primary.UpdateHafizRequest{
				HafizID:       id,
				Name:          name,
				DailyCapacity: capacity,
				CurrentDate:   date,
			}); err != nil {
				return err
			}

			fmt.Printf("✓ Updated hafiz %d\n", id)
			return nil
		},
	}
	cmd.Flags().String("name", "", "new name")
	cmd.Flags().Int("capacity", 0, "new daily capacity")
	cmd.Flags().String("date", "", "new current date (YYYY-MM-DD)")
	return cmd
}

func hafizDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [hafiz-id]",
		Short: "Delete a hafiz and all dependent rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid hafiz id %q", args[0])
			}

			if err := wire.HafizService().DeleteHafiz(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Printf("✓ Deleted hafiz %d\n", id)
			return nil
		},
	}
}

func hafizPopulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "populate",
		Short: "Add state rows for catalog items missing from the hafiz",
		RunE: func(cmd *cobra.Command, args []string) error {
			hafizID, err := resolveHafizID(cmd)
			if err != nil {
				return err
			}

			added, err := wire.HafizService().PopulateItems(cmd.Context(), hafizID)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Added %d state rows\n", added)
			return nil
		},
	}
	addHafizFlag(cmd)
	return cmd
}
