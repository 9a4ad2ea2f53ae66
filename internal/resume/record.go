package resume

import (
	"context"
	"math"

	"github.com/jonathan/resume-matcher/internal/experience"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/lexicon"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
	"go.uber.org/zap"
)

// BuildRecord combines a parsed record with the resume's raw text. Missing
// skills and degrees are detected in the raw text and a missing
// total_experience is estimated from it, with open-ended date ranges ending at
// referenceYear.
func BuildRecord(parsed *types.ParsedResume, rawText string, referenceYear int) *types.ResumeRecord {
	if parsed == nil {
		parsed = &types.ParsedResume{}
	}

	record := &types.ResumeRecord{
		Name:              parsed.Name,
		RawText:           rawText,
		Skills:            parsed.Skills,
		DegreeTokens:      parsed.Degree,
		ExperienceEntries: parsed.Experience,
	}

	if len(record.Skills) == 0 {
		record.Skills = parsing.DetectSkills(rawText, lexicon.KnownSkills())
	}
	if len(record.DegreeTokens) == 0 {
		record.DegreeTokens = parsing.DetectDegrees(rawText)
	}

	if parsed.TotalExperience != nil && !math.IsNaN(*parsed.TotalExperience) {
		record.TotalExperienceYears = math.Max(0, *parsed.TotalExperience)
	} else {
		record.TotalExperienceYears = experience.ExtractYears(rawText, referenceYear)
	}
	return record
}

// Load parses the resume at path and builds its record. Parse failures are
// logged and degrade to an empty parsed record, so Load never fails; a
// non-positive referenceYear means the current year.
func Load(ctx context.Context, parser Parser, path string, referenceYear int, log *zap.Logger) *types.ResumeRecord {
	log = logger.OrNop(log)
	if parser == nil {
		parser = NopParser{}
	}
	if referenceYear <= 0 {
		referenceYear = experience.CurrentYear()
	}

	rawText := ingestion.ExtractText(path)
	if rawText == "" {
		log.Warn("no text extracted from resume", zap.String("path", path))
	}

	parsed, err := parser.Parse(ctx, path, rawText)
	if err != nil {
		log.Warn("resume parsing failed, using text fallbacks", zap.String("path", path), zap.Error(err))
		parsed = &types.ParsedResume{}
	}

	record := BuildRecord(parsed, rawText, referenceYear)
	log.Debug("resume record built",
		zap.String("path", path),
		zap.Int("skills", len(record.Skills)),
		zap.Int("degrees", len(record.DegreeTokens)),
		zap.Float64("years", record.TotalExperienceYears),
	)
	return record
}
