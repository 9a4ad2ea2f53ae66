package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/spf13/cobra"
)

func newParseJobCmd(a *app) *cobra.Command {
	var (
		inFile  string
		text    string
		jobURL  string
		outFile string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "parse-job",
		Short: "Parse a job description into its structured record",
		Long:  "Parse a job description (file, text or URL) into the job title, minimum years, skills and education tokens the matcher scores against.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sources := 0
			for _, s := range []string{inFile, text, jobURL} {
				if s != "" {
					sources++
				}
			}
			if sources != 1 {
				return fmt.Errorf("provide exactly one of --in, --text or --url")
			}

			jdText := text
			switch {
			case inFile != "":
				jdText = ingestion.ExtractText(inFile)
			case jobURL != "":
				fetched, _, err := ingestion.IngestFromURL(cmd.Context(), jobURL, ingestion.URLOptions{
					UseBrowser: a.cfg.UseBrowser,
					Logger:     a.log,
				})
				if err != nil {
					return fmt.Errorf("failed to fetch job description: %w", err)
				}
				jdText = fetched
			}
			if strings.TrimSpace(jdText) == "" {
				return fmt.Errorf("job description is empty")
			}

			record := parsing.ParseJobDescription(jdText)
			if verbose {
				observability.NewPrinter(cmd.ErrOrStderr()).PrintJobRecord(record)
			}
			return writeJSON(cmd, outFile, record)
		},
	}

	cmd.Flags().StringVarP(&inFile, "in", "i", "", "Path to the job description file")
	cmd.Flags().StringVar(&text, "text", "", "Job description text")
	cmd.Flags().StringVar(&jobURL, "url", "", "Job posting URL")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write JSON to a file instead of stdout")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print a summary to stderr")
	cmd.Flags().Bool("use-browser", false, "Render thin job pages in headless Chrome")
	return cmd
}
