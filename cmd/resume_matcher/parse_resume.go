package main

import (
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/resume"
	"github.com/spf13/cobra"
)

func newParseResumeCmd(a *app) *cobra.Command {
	var (
		inFile  string
		outFile string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "parse-resume",
		Short: "Build the structured record of a resume",
		Long:  "Parse a resume with the configured parser and fill missing fields from its text, printing the record the matcher scores.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			record := resume.Load(ctx, a.parser(ctx), inFile, a.referenceYear(), a.log)
			if verbose {
				observability.NewPrinter(cmd.ErrOrStderr()).PrintResumeRecord(record)
			}
			return writeJSON(cmd, outFile, record)
		},
	}

	cmd.Flags().StringVarP(&inFile, "in", "i", "", "Path to the resume file (required)")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write JSON to a file instead of stdout")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print a summary to stderr")
	cmd.Flags().Int("reference-year", 0, "Year that open-ended date ranges end at (default: current year)")
	cmd.Flags().String("resume-parser", "llm", "Resume parser: llm, file (sidecar JSON) or none")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
