// Package cli implements the trackdayctl admin command line tool.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath   string
	outputFormat string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "trackdayctl",
		Short: "Admin CLI for the track-day rating engine",
		Long: `trackdayctl operates directly on the rating engine's database.

It can rebuild and inspect the player rankings, print per-track
leaderboards, predict head-to-head matchups and manage lap times.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json")

	rootCmd.AddCommand(newRankingsCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newLaptimeCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
