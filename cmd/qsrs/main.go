package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/qsrs/internal/cli"
	"github.com/example/qsrs/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "qsrs",
		Short:   "QSRS - revision scheduling for Qur'an memorization",
		Version: version.String(),
		Long: `QSRS schedules the daily revision of memorized Qur'an pages.
Items move through fixed-interval rep modes into the full cycle, and
struggling items drop into a spaced-repetition ladder until they recover.`,
	}

	rootCmd.AddCommand(cli.HafizCmd())
	rootCmd.AddCommand(cli.TodayCmd())
	rootCmd.AddCommand(cli.RevisionCmd())
	rootCmd.AddCommand(cli.CloseCmd())
	rootCmd.AddCommand(cli.ItemCmd())
	rootCmd.AddCommand(cli.StatsCmd())
	rootCmd.AddCommand(cli.BackupCmd())
	rootCmd.AddCommand(cli.DevCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
