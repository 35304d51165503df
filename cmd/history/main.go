package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect build history records and comparison tasks",
	Long: `history works against the same in-memory record set the server exposes.

It prints pages of records, creates comparison tasks and lists the console's
page routes without starting the HTTP server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
	slog.SetDefault(slog.New(h))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noDelay, "no-delay", false, "Skip the simulated latency")

	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(routesCmd)
}
