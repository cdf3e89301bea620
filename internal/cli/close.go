package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/qsrs/internal/wire"
)

// CloseCmd returns the close command.
func CloseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close",
		Short: "Close the current date: apply revisions, sweep SRS entries, advance the clock",
		RunE: func(cmd *cobra.Command, args []string) error {
			hafizID, err := resolveHafizID(cmd)
			if err != nil {
				return err
			}
			skipTo, _ := cmd.Flags().GetString("skip-to")

			res, err := wire.ScheduleService().CloseDate(cmd.Context(), hafizID, skipTo)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Closed %s → %s\n", res.ClosedDate, res.NewCurrentDate)
			fmt.Printf("  Revisions applied: %d\n", res.RevisionsApplied)
			if res.SRSEntries > 0 {
				fmt.Printf("  SRS entries:       %d\n", res.SRSEntries)
			}
			if res.PlanCompleted {
				fmt.Printf("  Plan completed; opened plan %d\n", res.NewPlanID)
			}

			return nil
		},
	}
	addHafizFlag(cmd)
	cmd.Flags().String("skip-to", "", "jump the clock to this date instead of the next day")
	return cmd
}
