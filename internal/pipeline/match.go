// Package pipeline orchestrates one match: resolve the job description text,
// build the resume record, score, and shape the response.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-matcher/internal/experience"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/resume"
	"github.com/jonathan/resume-matcher/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Step names reported through ProgressCallback
const (
	StepJobText      = "jd_text"
	StepResumeRecord = "resume_record"
	StepJobRecord    = "job_record"
	StepScores       = "scores"
)

// ProgressEvent represents a progress update during a match
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when match progress occurs. The job description
// and resume steps run concurrently, so it must be safe for concurrent use.
type ProgressCallback func(event ProgressEvent)

// Request describes one match. The JD file wins over JDText when it yields
// text; JDURL is fetched only when neither does.
type Request struct {
	ResumePath  string
	JDText      string
	JDPath      string
	JDURL       string
	UseSemantic bool
	Explain     bool
	OnProgress  ProgressCallback
}

func (r *Request) emit(step, message string, content any) {
	if r.OnProgress != nil {
		r.OnProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}

// Options configures a Matcher
type Options struct {
	Parser        resume.Parser // nil means resume.NopParser
	ReferenceYear int           // 0 means the current year
	UseBrowser    bool          // render thin JD pages in headless Chrome
	Logger        *zap.Logger
}

// Matcher runs matches against a shared scoring engine. It is safe for
// concurrent use.
type Matcher struct {
	engine *ranking.Engine
	opts   Options
	logger *zap.Logger
}

// NewMatcher creates a Matcher
func NewMatcher(engine *ranking.Engine, opts Options) *Matcher {
	if engine == nil {
		engine = ranking.NewEngine(nil)
	}
	if opts.Parser == nil {
		opts.Parser = resume.NopParser{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{engine: engine, opts: opts, logger: logger}
}

// SemanticAvailable reports whether matches can use semantic skill coverage
func (m *Matcher) SemanticAvailable() bool {
	return m.engine.SemanticAvailable()
}

// Match scores the resume against the job description. The job description
// is resolved while the resume is parsed; an empty job description cancels
// the resume work and returns ErrEmptyJobDescription.
func (m *Matcher) Match(ctx context.Context, req Request) (*types.MatchResponse, error) {
	if strings.TrimSpace(req.ResumePath) == "" {
		return nil, ErrMissingResume
	}
	start := time.Now()

	var (
		jdText string
		record *types.ResumeRecord
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := m.ResolveJobText(gCtx, req)
		if err != nil {
			return err
		}
		jdText = text
		req.emit(StepJobText, fmt.Sprintf("Job description resolved (%d chars)", len(text)), nil)
		return nil
	})
	g.Go(func() error {
		record = resume.Load(gCtx, m.opts.Parser, req.ResumePath, m.referenceYear(), m.logger)
		req.emit(StepResumeRecord, "Resume record built", record)
		return gCtx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	jd := parsing.ParseJobDescription(jdText)
	req.emit(StepJobRecord, "Job description parsed", jd)

	result, detail := m.engine.Score(ctx, record, jd, req.UseSemantic)
	resp := BuildResponse(record, jd, result, detail, req.Explain)
	req.emit(StepScores, "Match scored", resp)

	m.logger.Info("match computed",
		zap.String("candidate", resp.CandidateName),
		zap.Int("overall", resp.MatchScores.OverallScore),
		zap.String("method", detail.Method),
		zap.Duration("duration", time.Since(start)),
	)
	return resp, nil
}

// ResolveJobText returns the job description text of req: the JD file when it
// yields text, else JDText, else the fetched JDURL.
func (m *Matcher) ResolveJobText(ctx context.Context, req Request) (string, error) {
	text := req.JDText
	if req.JDPath != "" {
		if fromFile := ingestion.ExtractText(req.JDPath); fromFile != "" {
			text = fromFile
		} else {
			m.logger.Warn("job description file yielded no text", zap.String("path", req.JDPath))
		}
	}

	if strings.TrimSpace(text) == "" && req.JDURL != "" {
		fetched, meta, err := ingestion.IngestFromURL(ctx, req.JDURL, ingestion.URLOptions{
			UseBrowser: m.opts.UseBrowser,
			Logger:     m.logger,
		})
		if err != nil {
			return "", fmt.Errorf("failed to fetch job description: %w", err)
		}
		m.logger.Debug("job description fetched",
			zap.String("platform", meta.Platform),
			zap.String("hash", meta.Hash),
		)
		text = fetched
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyJobDescription
	}
	return text, nil
}

func (m *Matcher) referenceYear() int {
	if m.opts.ReferenceYear > 0 {
		return m.opts.ReferenceYear
	}
	return experience.CurrentYear()
}

// BuildResponse shapes an engine result into the presentation response.
// The explanation block is attached only when explain is set.
func BuildResponse(record *types.ResumeRecord, jd *types.JobRecord, result types.ScoreResult, detail types.ScoreDetail, explain bool) *types.MatchResponse {
	resp := &types.MatchResponse{
		CandidateName: record.Name,
		JobTitle:      jd.JobTitle,
		MatchScores:   ranking.ToMatchScores(result),
	}
	if !explain {
		return resp
	}

	resp.Explanations = &types.Explanations{
		JDSkills:              nonNil(parsing.NormalizeSkills(jd.Skills)),
		ResumeSkills:          nonNil(detail.ResumeSkills),
		SkillsMatched:         nonNil(detail.MatchedSkills),
		SkillsMissing:         nonNil(detail.MissingSkills),
		JDMinExperienceYears:  jd.MinYearsExperience,
		ResumeExperienceYears: detail.ResumeYears,
		JDEducation:           nonNil(jd.EducationTokens),
		ResumeDegrees:         nonNil(detail.ResumeDegreeHits),
		UsedSemantic:          detail.UsedSemantic,
	}
	return resp
}

// nonNil keeps empty lists as [] rather than null in JSON
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
