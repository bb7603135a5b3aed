package main

import (
	"github.com/spf13/cobra"

	"github.com/credguard/verdict/offline"
)

func newOfflineCmd() *cobra.Command {
	var inputFile string

	cmd := &cobra.Command{
		Use:   "offline",
		Short: "Compute a degraded verdict locally, without stage services",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := loadRequest(inputFile)
			if err != nil {
				return err
			}

			verdict, err := offline.Estimate(req.Profile, req.Loan)
			if err != nil {
				return err
			}

			return printJSON(cmd, verdict)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "request JSON file with profile and loan (required)")
	cmd.MarkFlagRequired("input")

	return cmd
}
