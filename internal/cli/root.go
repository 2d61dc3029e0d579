// Package cli provides the command-line interface for tweetherald.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tweetherald/tweetherald/internal/config"
)

// Version and Commit are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "tweetherald",
	Short: "Forward keyword-matching tweets to Discord channels",
	Long:  "tweetherald polls the Twitter recent-search API for configured keyword queries, filters matches by author attributes, and forwards unseen tweets to per-topic Discord webhooks.",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("tweetherald %s (%s)\n", Version, Commit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigFile, "path to config file")
	rootCmd.AddCommand(versionCmd)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
