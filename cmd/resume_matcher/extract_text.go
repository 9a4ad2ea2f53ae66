package main

import (
	"fmt"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/spf13/cobra"
)

func newExtractTextCmd(_ *app) *cobra.Command {
	var (
		inFile string
		clean  bool
	)

	cmd := &cobra.Command{
		Use:   "extract-text",
		Short: "Print the plain text of a .txt, .docx or .pdf file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := ingestion.ReadDocument(inFile)
			if err != nil {
				return fmt.Errorf("failed to extract text: %w", err)
			}
			if clean {
				text = ingestion.CleanText(text)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringVarP(&inFile, "in", "i", "", "Path to the document (required)")
	cmd.Flags().BoolVar(&clean, "clean", false, "Normalize whitespace and blank lines")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
