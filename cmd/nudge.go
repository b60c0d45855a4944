package cmd

import (
	"fmt"

	"github.com/brk3/habit-tracker/internal/nudge"
	"github.com/brk3/habit-tracker/internal/nudge/resend"

	"github.com/spf13/cobra"
)

var nudgeCmd = &cobra.Command{
	Use:   "nudge",
	Short: "Email a reminder listing the habits not yet done",
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Nudge.ResendAPIKey == "" {
			return fmt.Errorf("HABITS_RESEND_API_KEY environment variable is not set")
		}
		if cfg.Nudge.Email == "" {
			return fmt.Errorf("HABITS_NOTIFY_EMAIL environment variable is not set")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		n := &resend.ResendNotifier{
			ApiKey: cfg.Nudge.ResendAPIKey,
			Email:  cfg.Nudge.Email,
			From:   cfg.Nudge.From,
		}
		ctx := cmd.Context()
		s, closeFn, err := openService(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		sent, err := nudge.Nudge(ctx, s, n)
		if err != nil {
			return err
		}
		if sent {
			cmd.Println("Reminder sent to", cfg.Nudge.Email)
		} else {
			cmd.Println("Nothing left to do, no reminder sent")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(nudgeCmd)
}
