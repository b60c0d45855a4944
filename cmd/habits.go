package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/brk3/habit-tracker/pkg/habit"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a habit to the top of the list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			return errors.New("habit text must not be blank")
		}
		return mutate(cmd, func(ctx context.Context, s habitService) (habit.State, error) {
			return s.Add(ctx, text)
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits, newest first",
	Long:  `The "list" command shows your habits and how many are done.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(ctx context.Context, s habitService) error {
			st, err := s.Snapshot(ctx)
			if err != nil {
				return err
			}
			renderState(cmd.OutOrStdout(), st)
			return nil
		})
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show how many habits are done",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(ctx context.Context, s habitService) error {
			st, err := s.Snapshot(ctx)
			if err != nil {
				return err
			}
			renderProgress(cmd.OutOrStdout(), st.Progress)
			return nil
		})
	},
}

var doneCmd = &cobra.Command{
	Use:   "done <id|number>",
	Short: "Mark a habit as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggle(cmd, args[0], true)
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo <id|number>",
	Short: "Mark a habit as not done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggle(cmd, args[0], false)
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id|number>",
	Aliases: []string{"rm"},
	Short:   "Delete a habit",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(cmd, func(ctx context.Context, s habitService) (habit.State, error) {
			habits, err := s.ListHabits(ctx)
			if err != nil {
				return habit.State{}, err
			}
			return s.Delete(ctx, resolveID(habits, args[0]))
		})
	},
}

var clearCompletedCmd = &cobra.Command{
	Use:   "clear-completed",
	Short: "Remove every habit marked done",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(cmd, func(ctx context.Context, s habitService) (habit.State, error) {
			return s.ClearCompleted(ctx)
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove all habits",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(cmd, func(ctx context.Context, s habitService) (habit.State, error) {
			return s.ResetAll(ctx)
		})
	},
}

func toggle(cmd *cobra.Command, ref string, done bool) error {
	return mutate(cmd, func(ctx context.Context, s habitService) (habit.State, error) {
		habits, err := s.ListHabits(ctx)
		if err != nil {
			return habit.State{}, err
		}
		return s.Toggle(ctx, resolveID(habits, ref), done)
	})
}

func withService(cmd *cobra.Command, fn func(context.Context, habitService) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, closeFn, err := openService(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, s)
}

// mutate runs one mutation and prints the resulting list.
func mutate(cmd *cobra.Command, fn func(context.Context, habitService) (habit.State, error)) error {
	return withService(cmd, func(ctx context.Context, s habitService) error {
		st, err := fn(ctx, s)
		if err != nil {
			return err
		}
		renderState(cmd.OutOrStdout(), st)
		return nil
	})
}

func init() {
	rootCmd.AddCommand(addCmd, listCmd, progressCmd, doneCmd, undoCmd, deleteCmd, clearCompletedCmd, resetCmd)
}
