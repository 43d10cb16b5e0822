package command

import (
	"fmt"

	"yamdb/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, log, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(db, log); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✓ Schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
