package main

import (
	"github.com/spf13/cobra"

	"github.com/credguard/verdict/pipeline"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		configFile string
		inputFile  string
		language   string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute a verdict through the remote analysis pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pipeline.LoadConfig(configFile)
			if err != nil {
				return err
			}

			req, err := loadRequest(inputFile)
			if err != nil {
				return err
			}
			if language != "" {
				req.Language = language
			}

			p, err := pipeline.New(cfg)
			if err != nil {
				return err
			}

			verdict, err := p.Run(cmd.Context(), pipeline.Input{
				Profile:  req.Profile,
				Loan:     req.Loan,
				Credit:   req.Credit,
				Language: req.Language,
			})
			if err != nil {
				return err
			}

			return printJSON(cmd, verdict)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "pipeline config JSON file (required)")
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "request JSON file with profile, loan, and credit insight (required)")
	cmd.Flags().StringVarP(&language, "language", "l", "", "language code for stage responses (overrides request file)")
	cmd.MarkFlagRequired("config")
	cmd.MarkFlagRequired("input")

	return cmd
}
