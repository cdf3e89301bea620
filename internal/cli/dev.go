package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/qsrs/internal/db"
)

// DevCmd returns the dev command with local development helpers.
func DevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "dev",
		Short:  "Development helpers",
		Hidden: true,
	}

	cmd.AddCommand(devSeedCmd())
	cmd.AddCommand(devPathCmd())

	return cmd
}

func devSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert a demo user, hafiz, and a handful of state rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.GetDB()
			if err != nil {
				return err
			}
			if err := db.SeedCatalog(database); err != nil {
				return err
			}
			if err := db.SeedFixtures(database); err != nil {
				return err
			}

			fmt.Println("✓ Seeded demo data")
			return nil
		},
	}
}

func devPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the database path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := db.GetDBPath()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}
