package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/nrfta/datatable-go"
	"github.com/nrfta/datatable-go/tui"
)

var (
	listURL    string
	listStatus string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the page of submissions addressed by a URL",
	Example: `  tablectl list --url "/submissions?page=2&perPage=25&orderBy=score&sortDirection=desc"
  tablectl list --url "/submissions?page=3" --status closed`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := url.Parse(listURL)
		if err != nil {
			return fmt.Errorf("parse --url: %w", err)
		}

		st, err := openStore(cmd.Context(), cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		view, canonical, err := listPage(st, u, listStatus)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), view)
		fmt.Fprintln(cmd.OutOrStdout(), canonical.String())
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listURL, "url", "/submissions", "address whose query string holds the table state")
	listCmd.Flags().StringVar(&listStatus, "status", "", "change the status filter, returning to the first page")
}

// listPage loads the page addressed by u and renders it. The status query parameter
// filters the rows; a different status replaces it and resets the table to its first
// page, the way a filter form would. The returned URL carries the resulting state.
func listPage(st *store, u *url.URL, status string) (string, *url.URL, error) {
	query := datatable.NewURLQueryStore(u)
	current := query.Values().Get("status")
	src := st.source(current)

	var fetchErr error
	loader := datatable.NewSourceLoader[Submission](src,
		datatable.WithTimeout(cfg.QueryTimeout),
		datatable.WithLoaderLogger(logger),
		datatable.WithErrorHandler(func(err error) { fetchErr = err }),
	)
	defer loader.Close()

	ctrl := datatable.NewController(submissionColumns(), loader.Fetch,
		datatable.WithConfig(cfg.tableConfig()),
		datatable.WithQueryStore(query),
		datatable.WithLogger(logger),
	)
	defer ctrl.Close()
	loader.Bind(ctrl)

	// The loading timer may be draining the controller when a result lands, so Wait
	// alone does not mean the rows are applied.
	ctrl.Start()
	loader.Wait()
	ctrl.Flush()

	if status != "" && status != current {
		values := query.Values()
		values.Set("status", status)
		query.Replace(values)

		src.SetFilters(statusFilter(status)...)
		ctrl.ResetPage()
		loader.Wait()
		ctrl.Flush()
	}
	if fetchErr != nil {
		return "", nil, fetchErr
	}

	view := tui.RenderTable(tui.TableView[Submission]{
		Columns: ctrl.Columns(),
		State:   ctrl.State(),
	})
	return view, query.URL(), nil
}
