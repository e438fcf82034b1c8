package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/todo/internal/config"
	"github.com/example/todo/internal/db"
	"github.com/example/todo/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Register an owner and write the default config",
		Long: `Register a new owner and store its ID in ~/.todo/config.json so later
commands do not need --owner. With --demo the database is also seeded
with a small example list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			demo, _ := cmd.Flags().GetBool("demo")
			if !demo && name == "" {
				return fmt.Errorf("missing display name\nHint: todo init --name you")
			}

			dir, err := config.DefaultDir()
			if err != nil {
				return err
			}
			if cfg, err := config.LoadConfig(dir); err == nil && cfg.OwnerID != "" {
				return fmt.Errorf("already initialized for owner %s\nHint: pass --owner on individual commands to act as someone else", cfg.OwnerID)
			}

			var ownerID string
			if demo {
				database, err := db.GetDB()
				if err != nil {
					return err
				}
				ownerID, err = db.SeedFixtures(database)
				if err != nil {
					return fmt.Errorf("failed to seed fixtures: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded demo list for owner %s\n", ownerID)
			} else {
				owner, err := wire.OwnerAdapter().Register(context.Background(), name)
				if err != nil {
					return err
				}
				ownerID = owner.ID
			}

			cfg := &config.Config{Version: "1", OwnerID: ownerID}
			if err := config.SaveConfig(dir, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config written, default owner is %s\n", ownerID)
			return nil
		},
	}
	cmd.Flags().String("name", "", "Display name for the new owner")
	cmd.Flags().Bool("demo", false, "Seed a demo list instead of registering a fresh owner")
	return cmd
}
