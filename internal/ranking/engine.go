package ranking

import (
	"context"
	"math"

	"github.com/jonathan/resume-matcher/internal/lexicon"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
	"go.uber.org/zap"
)

// Engine computes match scores. It holds only the optional embedder and its
// settings, so one Engine can serve concurrent requests.
type Engine struct {
	embedder  llm.Embedder
	threshold float64
	logger    *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithThreshold overrides DefaultSimilarityThreshold
func WithThreshold(threshold float64) Option {
	return func(e *Engine) {
		if threshold > 0 && threshold <= 1 {
			e.threshold = threshold
		}
	}
}

// WithLogger sets the logger used for degraded-mode warnings
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine builds an engine. A nil embedder disables semantic coverage.
func NewEngine(embedder llm.Embedder, opts ...Option) *Engine {
	e := &Engine{
		embedder:  embedder,
		threshold: DefaultSimilarityThreshold,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SemanticAvailable reports whether an embedder was injected
func (e *Engine) SemanticAvailable() bool {
	return e.embedder != nil
}

// Score rates resume against jd. Skills coverage is exact, or semantic when
// requested, available and strictly better. An embedding failure is logged and
// scored as if semantic coverage were unavailable.
func (e *Engine) Score(ctx context.Context, resume *types.ResumeRecord, jd *types.JobRecord, useSemantic bool) (types.ScoreResult, types.ScoreDetail) {
	if resume == nil {
		resume = &types.ResumeRecord{}
	}
	if jd == nil {
		jd = &types.JobRecord{}
	}

	jdSkills := parsing.NormalizeSkills(jd.Skills)
	resumeSkills := parsing.NormalizeSkills(resume.Skills)
	if len(jdSkills) > 0 && resume.RawText != "" {
		resumeSkills = RescueFromText(jdSkills, resumeSkills, resume.RawText)
	}

	coverage := ExactCoverage(jdSkills, resumeSkills)
	if useSemantic && e.embedder != nil {
		semantic, err := SemanticCoverage(ctx, e.embedder, jdSkills, resumeSkills, e.threshold)
		switch {
		case err != nil:
			e.logger.Warn("semantic coverage unavailable, using exact match", zap.Error(err))
		case semantic.Score > coverage.Score:
			coverage = semantic
		}
	}

	years := math.Max(0, resume.TotalExperienceYears)
	experience := ExperienceScore(jd.MinYearsExperience, years)

	required := lexicon.DegreeLevel(jd.EducationTokens)
	candidate, degreeHits := lexicon.MatchDegrees(resume.DegreeTokens)
	education := EducationScore(required, candidate)

	result := types.ScoreResult{
		Skills:     coverage.Score,
		Experience: experience,
		Education:  education,
		Overall:    OverallScore(coverage.Score, experience, education),
	}
	detail := types.ScoreDetail{
		ResumeSkills:     resumeSkills,
		MatchedSkills:    coverage.Matched,
		MissingSkills:    coverage.Missing,
		ResumeYears:      math.Round(years*100) / 100,
		ResumeDegreeHits: degreeHits,
		Method:           coverage.Method,
		UsedSemantic:     coverage.Method == types.MethodSemantic,
	}
	return result, detail
}
