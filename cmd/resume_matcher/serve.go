package main

import (
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long:  "Start an HTTP server exposing POST /match (multipart resume upload plus jd_text, jd_file or jd_url) and GET /health.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			matcher := pipeline.NewMatcher(a.engine(ctx), pipeline.Options{
				Parser:        a.parser(ctx),
				ReferenceYear: a.referenceYear(),
				UseBrowser:    a.cfg.UseBrowser,
				Logger:        a.log,
			})

			srv := server.New(matcher, server.Config{
				Port:           a.cfg.Port,
				UploadLimit:    a.cfg.UploadLimit,
				RequestTimeout: a.cfg.Timeout,
				RateLimit:      a.cfg.RateLimit.Limiter(),
				Logger:         a.log,
			})
			return srv.Start(ctx)
		},
	}

	cmd.Flags().Int("port", 5000, "Port to listen on")
	cmd.Flags().Float64("threshold", 0.75, "Cosine similarity needed for a semantic skill match")
	cmd.Flags().String("resume-parser", "llm", "Resume parser: llm, file (sidecar JSON) or none")
	cmd.Flags().String("redis-url", "", "Redis URL for the shared embedding cache")
	cmd.Flags().Bool("use-browser", false, "Render thin job pages in headless Chrome")
	return cmd
}
