package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/sf7293/history-compare/configs"
	"github.com/sf7293/history-compare/internal/domain"
	"github.com/sf7293/history-compare/internal/history"
	"github.com/sf7293/history-compare/internal/routes"
	"github.com/spf13/cobra"
)

var (
	noDelay  bool
	page     int
	pageSize int
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Print one page of history records as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := newService()
		if err != nil {
			return err
		}

		result, err := service.FetchHistoryPage(cmd.Context(), domain.PageRequest{Page: page, PageSize: pageSize})
		if err != nil {
			return err
		}

		return writeJSON(cmd.OutOrStdout(), result)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare <current-id> <baseline-id>",
	Short: "Create a comparison task between two records",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := newService()
		if err != nil {
			return err
		}

		task, err := service.CreateComparisonTask(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		return writeJSON(cmd.OutOrStdout(), task)
	},
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the console's page routes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := routes.Load()
		if err != nil {
			return err
		}

		return printRoutes(cmd.OutOrStdout(), table)
	},
}

func init() {
	recordsCmd.Flags().IntVar(&page, "page", history.DefaultPage, "Page number, starting at 1")
	recordsCmd.Flags().IntVar(&pageSize, "page-size", 0, "Records per page (default from HISTORY_DEFAULT_PAGE_SIZE)")
}

func newService() (*history.Service, error) {
	cfg, err := configs.LoadConfig()
	if err != nil {
		return nil, err
	}

	opts := history.Options{
		FetchDelay:      cfg.History.FetchDelay(),
		CreateDelay:     cfg.History.CreateDelay(),
		DefaultPageSize: cfg.History.DefaultPageSize,
		MaxPageSize:     cfg.History.MaxPageSize,
	}
	if noDelay {
		opts.FetchDelay, opts.CreateDelay = 0, 0
	}

	return history.NewService(history.GenerateRecords(time.Now()), opts), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printRoutes(w io.Writer, table *routes.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tNAME\tTARGET")
	for _, route := range table.Routes() {
		target := route.Page
		if route.IsRedirect() {
			target = "-> " + route.Redirect
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", route.Path, route.Name, target)
	}

	return tw.Flush()
}
