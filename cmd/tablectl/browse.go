package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nrfta/datatable-go"
	"github.com/nrfta/datatable-go/tui"
)

var browseStatus string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Page through submissions interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context(), cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		loader := datatable.NewSourceLoader[Submission](st.source(browseStatus),
			datatable.WithTimeout(cfg.QueryTimeout),
			datatable.WithLoaderLogger(logger),
			datatable.WithErrorHandler(func(err error) {
				logger.Printf("tablectl: load submissions: %v", err)
			}),
		)
		defer loader.Close()

		ctrl := datatable.NewController(submissionColumns(), loader.Fetch,
			datatable.WithConfig(cfg.tableConfig()),
			datatable.WithLogger(logger),
		)
		defer ctrl.Close()
		loader.Bind(ctrl)
		ctrl.Start()

		model := tui.New(ctrl, tui.WithTitle("Submissions"))
		defer model.Close()

		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("run browser: %w", err)
		}
		return nil
	},
}

func init() {
	browseCmd.Flags().StringVar(&browseStatus, "status", "", "only show submissions with this status")
}
