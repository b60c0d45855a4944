package cmd

import (
	"os"

	"github.com/brk3/habit-tracker/internal/config"
	"github.com/brk3/habit-tracker/internal/logger"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	remote bool
)

var rootCmd = &cobra.Command{
	Use:   "habits",
	Short: "Track a daily list of habits",
	Long: `
	Habits keeps a short list of things you want to do, lets you tick them off,
	and remembers the list between runs. It works against a local database or,
	with --remote, against a running "habits server".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		return logger.Configure(cfg.LogLevel, cfg.LogFormat)
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&remote, "remote", false, "talk to the server at api_base_url instead of the local store")
}
