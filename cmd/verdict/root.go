package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/credguard/verdict/core/domain"
	"github.com/credguard/verdict/observability"
)

// request is the on-disk shape consumed by the analyze and offline commands.
type request struct {
	Profile  domain.FinancialProfile `json:"profile"`
	Loan     domain.LoanRequest      `json:"loan"`
	Credit   domain.CreditInsight    `json:"creditInsight"`
	Language string                  `json:"language,omitempty"`
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "verdict",
		Short:         "Loan risk verdicts from a household financial profile",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
			observability.RegisterObserver("slog", observability.NewSlogObserver(logger))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newOfflineCmd())
	root.AddCommand(newServeCmd())

	return root
}

func loadRequest(path string) (*request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}

	var req request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request file: %w", err)
	}
	return &req, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
