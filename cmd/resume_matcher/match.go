package main

import (
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/spf13/cobra"
)

type matchOptions struct {
	resumePath string
	jdPath     string
	jdText     string
	jdURL      string
	semantic   bool
	explain    bool
	verbose    bool
	outFile    string
}

func newMatchCmd(a *app) *cobra.Command {
	o := &matchOptions{}
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Score a resume against a job description",
		Long:  "Score a resume (.txt, .docx, .pdf) against a job description given as a file, inline text or a job board URL, and print the match scores as JSON.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMatch(cmd, a, o)
		},
	}

	cmd.Flags().StringVarP(&o.resumePath, "resume", "r", "", "Path to the resume file (required)")
	cmd.Flags().StringVar(&o.jdPath, "jd", "", "Path to the job description file")
	cmd.Flags().StringVar(&o.jdText, "jd-text", "", "Job description text")
	cmd.Flags().StringVar(&o.jdURL, "jd-url", "", "Job posting URL, fetched when no other job description is given")
	cmd.Flags().BoolVar(&o.semantic, "semantic", true, "Use semantic skill matching when the embedding model is available")
	cmd.Flags().BoolVar(&o.explain, "explain", false, "Include the explanation block")
	cmd.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "Print intermediate records and a score summary to stderr")
	cmd.Flags().StringVarP(&o.outFile, "out", "o", "", "Write the JSON result to a file instead of stdout")
	cmd.Flags().Float64("threshold", 0.75, "Cosine similarity needed for a semantic skill match")
	cmd.Flags().Int("reference-year", 0, "Year that open-ended date ranges end at (default: current year)")
	cmd.Flags().String("resume-parser", "llm", "Resume parser: llm, file (sidecar JSON) or none")
	cmd.Flags().Bool("use-browser", false, "Render thin job pages in headless Chrome")
	_ = cmd.MarkFlagRequired("resume")

	return cmd
}

func runMatch(cmd *cobra.Command, a *app, o *matchOptions) error {
	ctx := cmd.Context()

	// the embedding model is only probed when it may be used
	var engine *ranking.Engine
	if o.semantic {
		engine = a.engine(ctx)
	}
	matcher := pipeline.NewMatcher(engine, pipeline.Options{
		Parser:        a.parser(ctx),
		ReferenceYear: a.referenceYear(),
		UseBrowser:    a.cfg.UseBrowser,
		Logger:        a.log,
	})

	req := pipeline.Request{
		ResumePath:  o.resumePath,
		JDText:      o.jdText,
		JDPath:      o.jdPath,
		JDURL:       o.jdURL,
		UseSemantic: o.semantic,
		Explain:     o.explain,
	}
	printer := observability.NewPrinter(cmd.ErrOrStderr())
	if o.verbose {
		req.OnProgress = verboseProgress(printer)
	}

	resp, err := matcher.Match(ctx, req)
	if err != nil {
		return err
	}
	if o.verbose {
		printer.PrintMatch(resp)
	}
	return writeJSON(cmd, o.outFile, resp)
}
