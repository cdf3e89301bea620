package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/qsrs/internal/db"
)

// BackupCmd returns the backup command.
func BackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [path]",
		Short: "Write a consistent copy of the database to path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.GetDB()
			if err != nil {
				return err
			}

			if err := db.Backup(database, args[0]); err != nil {
				return err
			}

			fmt.Printf("✓ Backed up database to %s\n", args[0])
			return nil
		},
	}
}
