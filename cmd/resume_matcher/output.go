package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/spf13/cobra"
)

// writeJSON writes v as indented JSON to outFile, or to stdout when empty
func writeJSON(cmd *cobra.Command, outFile string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')

	if outFile == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(outFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Output: %s\n", outFile)
	return nil
}

// verboseProgress prints the intermediate records of a match. Events arrive
// from concurrent steps, so printing is serialized.
func verboseProgress(printer *observability.Printer) pipeline.ProgressCallback {
	var mu sync.Mutex
	return func(e pipeline.ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		switch content := e.Content.(type) {
		case *types.ResumeRecord:
			printer.PrintResumeRecord(content)
		case *types.JobRecord:
			printer.PrintJobRecord(content)
		}
	}
}
