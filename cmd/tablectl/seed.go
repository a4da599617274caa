package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	seedRows  int
	seedReset bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the submissions table with generated rows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedRows < 1 {
			return fmt.Errorf("--rows must be positive, got %d", seedRows)
		}

		st, err := openStore(cmd.Context(), cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.seed(cmd.Context(), seedRows, seedReset, time.Now()); err != nil {
			return err
		}
		logger.Printf("tablectl: seeded %d submissions into %s", seedRows, cfg.DBPath)
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d submissions into %s\n", seedRows, cfg.DBPath)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedRows, "rows", 100, "number of submissions to insert")
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "delete existing submissions first")
}
