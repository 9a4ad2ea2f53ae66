package parsing

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/prompts"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
	"go.uber.org/zap"
)

// ExtractResume asks the model for a structured record of the resume text.
// A response that fails schema validation gets one repair round; if the repair
// is still invalid the original response is decoded leniently, since every
// field of the record is optional downstream.
func ExtractResume(ctx context.Context, client llm.Client, resumeText string, log *zap.Logger) (*types.ParsedResume, error) {
	log = logger.OrNop(log)
	if client == nil {
		return nil, &APICallError{Message: "no LLM client configured"}
	}
	if strings.TrimSpace(resumeText) == "" {
		return &types.ParsedResume{}, nil
	}

	schema := llm.ResumeSchema(prompts.MustGet("parsing.json", "extract-resume"))
	prompt := llm.BuildExtractionPrompt(schema, resumeText)

	response, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "failed to extract resume record", Cause: err}
	}
	log.Debug("resume extraction response", zap.String("response", logger.TruncateForLog(response, 500)))

	if err := schemas.ValidateResume(response); err != nil {
		log.Warn("resume record failed schema validation", zap.Error(err))
		if repaired, ok := repairResumeJSON(ctx, client, response, err, log); ok {
			response = repaired
		}
	}

	var parsed types.ParsedResume
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		return nil, &ParseError{Message: "failed to parse resume record JSON", Cause: err}
	}
	return &parsed, nil
}

func repairResumeJSON(ctx context.Context, client llm.Client, response string, cause error, log *zap.Logger) (string, bool) {
	var loadErr *schemas.SchemaLoadError
	if errors.As(cause, &loadErr) {
		// not JSON at all; a repair prompt cannot point at fields
		cause = loadErr.Cause
	}

	prompt := prompts.Format(prompts.MustGet("parsing.json", "repair-resume-json"), map[string]string{
		"Errors": cause.Error(),
		"JSON":   response,
	})
	repaired, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		log.Warn("resume record repair call failed", zap.Error(err))
		return "", false
	}
	if err := schemas.ValidateResume(repaired); err != nil {
		log.Warn("repaired resume record still invalid", zap.Error(err))
		return "", false
	}
	return repaired, true
}
