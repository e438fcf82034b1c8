package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/todo/internal/config"
	"github.com/example/todo/internal/db"
	"github.com/example/todo/internal/version"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show version, config and database location",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, version.String())

			dbPath, err := db.GetDBPath()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Database: %s\n", dbPath)

			dir, err := config.DefaultDir()
			if err != nil {
				return err
			}
			cfg, err := config.LoadConfig(dir)
			if err != nil {
				fmt.Fprintln(out, "Owner:    (not configured, run `todo init`)")
				return nil
			}
			fmt.Fprintf(out, "Owner:    %s\n", cfg.OwnerID)
			fmt.Fprintf(out, "Serve on: %s\n", cfg.Addr())
			return nil
		},
	}
}
