package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/todo/internal/config"
	"github.com/example/todo/internal/ports/primary"
	"github.com/example/todo/internal/wire"
)

// resolveOwner returns the acting owner for a CLI invocation: the --owner
// flag if set, otherwise the default owner from config. There is no ambient
// session; every service call gets the owner explicitly.
func resolveOwner(cmd *cobra.Command) (string, error) {
	owner, _ := cmd.Flags().GetString("owner")
	if owner != "" {
		return owner, nil
	}

	dir, err := config.DefaultDir()
	if err != nil {
		return "", err
	}
	cfg, err := config.LoadConfig(dir)
	if err != nil || cfg.OwnerID == "" {
		return "", fmt.Errorf("no owner configured\nHint: run `todo init --name you` or pass --owner")
	}
	return cfg.OwnerID, nil
}

func addOwnerFlag(cmd *cobra.Command) {
	cmd.Flags().String("owner", "", "Acting owner ID (defaults to configured owner)")
}

// AddCmd returns the add command
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a todo to the end of your list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := resolveOwner(cmd)
			if err != nil {
				return err
			}
			return wire.TodoAdapter().Add(context.Background(), owner, strings.Join(args, " "))
		},
	}
	addOwnerFlag(cmd)
	return cmd
}

// ListCmd returns the list command
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your todos in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := resolveOwner(cmd)
			if err != nil {
				return err
			}
			return wire.TodoAdapter().List(context.Background(), owner)
		},
	}
	addOwnerFlag(cmd)
	return cmd
}

// DoneCmd returns the done command
func DoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done [id]",
		Short: "Mark a todo as complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := resolveOwner(cmd)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			undo, _ := cmd.Flags().GetBool("undo")
			return wire.TodoAdapter().Done(context.Background(), owner, id, !undo)
		},
	}
	cmd.Flags().Bool("undo", false, "Reopen the todo instead")
	addOwnerFlag(cmd)
	return cmd
}

// RetitleCmd returns the retitle command
func RetitleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retitle [id] [new title]",
		Short: "Change a todo's title",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := resolveOwner(cmd)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return wire.TodoAdapter().Retitle(context.Background(), owner, id, strings.Join(args[1:], " "))
		},
	}
	addOwnerFlag(cmd)
	return cmd
}

// RmCmd returns the rm command
func RmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Remove a todo (positions behind it close up)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := resolveOwner(cmd)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return wire.TodoAdapter().Remove(context.Background(), owner, id)
		},
	}
	addOwnerFlag(cmd)
	return cmd
}

// MoveCmd returns the move command
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move [id] [position]",
		Short: "Move a todo to a new position",
		Long: `Move one todo to a target position. The todo is spliced out of the list
and re-inserted, shifting everything in between by one. Targets outside
1..N are clamped.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := resolveOwner(cmd)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			target, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[1])
			}
			return wire.TodoAdapter().Move(context.Background(), owner, id, target)
		},
	}
	addOwnerFlag(cmd)
	return cmd
}

// ReorderCmd returns the reorder command
func ReorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder [id=position ...]",
		Short: "Retarget several todos in one atomic batch",
		Long: `Apply a batch of position retargets atomically, e.g.:

  todo reorder 12=1 7=2 3=2

Collisions resolve first-fit ascending: when two requests want the same
slot, the one listed with the smaller position wins and the rest shift
up, keeping their relative order. The list always ends dense 1..N.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := resolveOwner(cmd)
			if err != nil {
				return err
			}

			updates := make([]primary.PositionUpdate, 0, len(args))
			for _, arg := range args {
				id, pos, err := parseUpdate(arg)
				if err != nil {
					return err
				}
				updates = append(updates, primary.PositionUpdate{ID: id, Position: pos})
			}
			return wire.TodoAdapter().Reorder(context.Background(), owner, updates)
		},
	}
	addOwnerFlag(cmd)
	return cmd
}

// NormalizeCmd returns the normalize command
func NormalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Repair the list back to dense positions 1..N",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := resolveOwner(cmd)
			if err != nil {
				return err
			}
			return wire.TodoAdapter().Normalize(context.Background(), owner)
		},
	}
	addOwnerFlag(cmd)
	return cmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid todo id %q", arg)
	}
	return id, nil
}

func parseUpdate(arg string) (int64, int, error) {
	parts := strings.SplitN(arg, "=", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid update %q, expected id=position", arg)
	}
	id, err := parseID(parts[0])
	if err != nil {
		return 0, 0, err
	}
	pos, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid position in %q", arg)
	}
	return id, pos, nil
}
