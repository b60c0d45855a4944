package cmd

import (
	"github.com/brk3/habit-tracker/internal/apiclient"
	"github.com/brk3/habit-tracker/pkg/versioninfo"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `The "version" command displays the current version info for the client,
and for the server too when run with --remote.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		version(cmd)
	},
}

func version(cmd *cobra.Command) {
	cmd.Printf("Client Version: %s\n", versioninfo.Version)
	if !remote {
		return
	}

	client := apiclient.New(cfg.APIBaseURL)
	client.AuthToken = cfg.AuthToken
	serverVersion, err := client.Version(cmd.Context())
	if err != nil {
		cmd.Println("Error fetching server version:", err)
		return
	}
	cmd.Printf("Server Version: %s\n", serverVersion.Version)
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
