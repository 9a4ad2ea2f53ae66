// Package resume turns a resume file into the record the scoring engine reads.
// Parsers may report any subset of fields; BuildRecord fills the gaps from the
// resume's raw text.
package resume

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
	"go.uber.org/zap"
)

// Parser produces a best-effort structured record for the resume at path.
// text is the document text already extracted from path, so parsers never
// read the document a second time.
type Parser interface {
	Parse(ctx context.Context, path, text string) (*types.ParsedResume, error)
}

// LLMParser asks the model for a structured record of the resume text
type LLMParser struct {
	Client llm.Client
	Logger *zap.Logger
}

// NewLLMParser creates a parser backed by client
func NewLLMParser(client llm.Client, logger *zap.Logger) *LLMParser {
	return &LLMParser{Client: client, Logger: logger}
}

// Parse implements Parser
func (p *LLMParser) Parse(ctx context.Context, path, text string) (*types.ParsedResume, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &LoadError{Path: path, Message: "no text could be extracted"}
	}

	parsed, err := parsing.ExtractResume(ctx, p.Client, text, p.Logger)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "model extraction failed", Cause: err}
	}
	return parsed, nil
}

// FileParser reads a record produced by an external parser from a JSON file.
// With Path empty it looks next to the resume for a file with the same base
// name and a .json extension.
type FileParser struct {
	Path string
}

// SidecarPath returns the JSON record path FileParser uses for resumePath
func (p FileParser) SidecarPath(resumePath string) string {
	if p.Path != "" {
		return p.Path
	}
	return strings.TrimSuffix(resumePath, filepath.Ext(resumePath)) + ".json"
}

// Parse implements Parser
func (p FileParser) Parse(_ context.Context, path, _ string) (*types.ParsedResume, error) {
	sidecar := p.SidecarPath(path)
	if sidecar == path {
		return nil, &LoadError{Path: path, Message: "resume file is its own record path"}
	}

	data, err := os.ReadFile(sidecar)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read record " + sidecar, Cause: err}
	}

	var parsed types.ParsedResume
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &LoadError{Path: path, Message: "failed to decode record " + sidecar, Cause: err}
	}
	return &parsed, nil
}

// NopParser reports nothing, leaving every field to the raw-text fallbacks
type NopParser struct{}

// Parse implements Parser
func (NopParser) Parse(context.Context, string, string) (*types.ParsedResume, error) {
	return &types.ParsedResume{}, nil
}
