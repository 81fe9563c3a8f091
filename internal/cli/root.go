// Package cli implements the onegoal command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aadilmughal786/one-goal-sub006/internal/api"
	"github.com/aadilmughal786/one-goal-sub006/internal/daemon"
)

var rootCmd = &cobra.Command{
	Use:   "onegoal",
	Short: "One-goal focus tracker service",
	Long: `onegoal runs the goal tracker backend: per-user goal documents in a
local SQLite store, exposed over an HTTP API, with JSON export/import.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", daemon.ConfigPath(), "Path to config.toml")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the onegoal version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(os.Stdout, api.Version)
	},
}

// loadConfig reads the config file named by the --config flag.
func loadConfig(cmd *cobra.Command) (daemon.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return daemon.Load(path)
}
