// Command tablectl is a demo of the datatable controller over a sqlite database.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagDBPath string

	cfg    config
	logger *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tablectl",
	Short: "Page and sort the submissions table from the command line",
	Long: `tablectl drives a datatable controller over a sqlite submissions table.

Paging and sorting state round-trips through a URL query string, so the same
address always reproduces the same page.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(flagConfig, cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger = newLogger(cfg.LogFile)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.config/tablectl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db-path", "", "sqlite database file")

	rootCmd.AddCommand(seedCmd, listCmd, browseCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
