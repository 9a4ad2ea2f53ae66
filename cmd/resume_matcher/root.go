package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/resume"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every subcommand needs once flags are parsed
type app struct {
	configFile string
	cfg        *config.Config
	log        *zap.Logger
	closers    []io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "resume_matcher",
		Short:         "Score resumes against job descriptions",
		Long:          "resume_matcher scores how well a resume matches a job description on skills, experience and education, and combines them into one weighted score.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (YAML or JSON)")
	root.PersistentFlags().BoolP("debug", "d", false, "Verbose/debug logging")
	root.PersistentFlags().BoolP("json", "j", false, "JSON format for logging")

	root.AddCommand(
		newMatchCmd(a),
		newParseJobCmd(a),
		newParseResumeCmd(a),
		newExtractTextCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.JSON, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.cfg = cfg
	a.log = log
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	a.closers = nil
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func (a *app) llmConfig() *llm.Config {
	return llm.DefaultConfig().WithEmbeddingModel(a.cfg.EmbeddingModel)
}

// engine builds the scoring engine. Semantic coverage is enabled only when the
// embedding model loads; its vectors are cached in memory and, with a Redis
// URL configured, in Redis.
func (a *app) engine(ctx context.Context) *ranking.Engine {
	opts := []ranking.Option{
		ranking.WithThreshold(a.cfg.Threshold),
		ranking.WithLogger(a.log),
	}

	embedder := llm.LoadEmbedder(ctx, a.llmConfig(), a.cfg.GeminiAPIKey, a.log)
	if embedder == nil {
		return ranking.NewEngine(nil, opts...)
	}
	if c, ok := embedder.(io.Closer); ok {
		a.closers = append(a.closers, c)
	}

	cacheOpts := []llm.CacheOption{llm.WithTTL(a.cfg.EmbeddingCacheTTL), llm.WithCacheLogger(a.log)}
	if rdb := llm.ConnectRedis(ctx, a.cfg.RedisURL, a.log); rdb != nil {
		a.closers = append(a.closers, rdb)
		cacheOpts = append(cacheOpts, llm.WithRedis(rdb))
	}
	cached := llm.NewCachedEmbedder(embedder, a.cfg.EmbeddingModel, cacheOpts...)
	return ranking.NewEngine(cached, opts...)
}

// parser returns the configured resume parser. The model-backed parser needs
// an API key; without one the raw-text fallbacks do all the work.
func (a *app) parser(ctx context.Context) resume.Parser {
	switch a.cfg.ResumeParser {
	case config.ParserFile:
		return resume.FileParser{}
	case config.ParserNone:
		return resume.NopParser{}
	}

	if a.cfg.GeminiAPIKey == "" {
		a.log.Info("resume parser disabled: no API key configured, using text fallbacks")
		return resume.NopParser{}
	}
	client, err := llm.NewClient(ctx, a.llmConfig(), a.cfg.GeminiAPIKey)
	if err != nil {
		a.log.Warn("resume parser unavailable, using text fallbacks", zap.Error(err))
		return resume.NopParser{}
	}
	a.closers = append(a.closers, client)
	return resume.NewLLMParser(client, a.log)
}

func (a *app) referenceYear() int {
	return a.cfg.ReferenceYear
}
