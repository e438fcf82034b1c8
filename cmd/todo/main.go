package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/todo/internal/cli"
	"github.com/example/todo/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "todo",
		Short:   "todo - ordered personal task lists",
		Version: version.String(),
		Long: `todo keeps per-owner task lists with strict ordering: every list is
numbered 1..N with no gaps, and moves, removals and batch reorders keep
it that way. Run it as a CLI or serve the same operations over HTTP.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.AddCmd())
	rootCmd.AddCommand(cli.ListCmd())
	rootCmd.AddCommand(cli.DoneCmd())
	rootCmd.AddCommand(cli.RetitleCmd())
	rootCmd.AddCommand(cli.RmCmd())
	rootCmd.AddCommand(cli.MoveCmd())
	rootCmd.AddCommand(cli.ReorderCmd())
	rootCmd.AddCommand(cli.NormalizeCmd())
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.StatusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
