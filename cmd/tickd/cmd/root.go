// Package cmd provides the CLI commands for tickd.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tickd-io/tickd/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tickd",
	Short: "tickd - todo item HTTP service",
	Long: `tickd is a small HTTP service for managing todo items.

It keeps items in memory, sanitizes and validates every write, and
appends request failures to an error log file.

Quick start:
  1. (Optional) Create a config file: tickd.yaml
  2. Run: tickd start

Configuration:
  Config is loaded from tickd.yaml in the current directory,
  $HOME/.tickd/, or /etc/tickd/.

  Environment variables can override config values with the TICKD_ prefix.
  Example: TICKD_SERVER_PORT=9090

Commands:
  start       Start the HTTP server
  stop        Stop the running server
  version     Print version information`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./tickd.yaml)")
}

func initConfig() {
	config.InitViper(cfgFile)
}
