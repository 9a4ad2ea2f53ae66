package resume

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const refYear = 2025

const resumeText = "Ada Lovelace\nSkills: Figma, Sketch, Python\nB.Tech in Computer Science\n2019-2022 Acme"

func writeResume(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func floatPtr(f float64) *float64 { return &f }

func TestBuildRecord_UsesParsedFields(t *testing.T) {
	parsed := &types.ParsedResume{
		Name:            "Ada",
		Skills:          []string{"Zeplin"},
		Degree:          []string{"Master of Design"},
		Experience:      []string{"Acme"},
		TotalExperience: floatPtr(7.5),
	}

	record := BuildRecord(parsed, resumeText, refYear)

	assert.Equal(t, "Ada", record.Name)
	assert.Equal(t, resumeText, record.RawText)
	assert.Equal(t, []string{"Zeplin"}, record.Skills)
	assert.Equal(t, []string{"Master of Design"}, record.DegreeTokens)
	assert.Equal(t, []string{"Acme"}, record.ExperienceEntries)
	assert.Equal(t, 7.5, record.TotalExperienceYears)
}

func TestBuildRecord_FallsBackToRawText(t *testing.T) {
	record := BuildRecord(nil, resumeText, refYear)

	assert.Empty(t, record.Name)
	assert.Equal(t, []string{"figma", "python", "sketch"}, record.Skills)
	assert.Equal(t, []string{"b.tech"}, record.DegreeTokens)
	assert.Equal(t, 3.0, record.TotalExperienceYears)
}

func TestBuildRecord_ZeroExperienceIsReported(t *testing.T) {
	record := BuildRecord(&types.ParsedResume{TotalExperience: floatPtr(0)}, "10 years of Figma", refYear)
	assert.Equal(t, 0.0, record.TotalExperienceYears)
}

func TestBuildRecord_NegativeExperienceClamped(t *testing.T) {
	record := BuildRecord(&types.ParsedResume{TotalExperience: floatPtr(-2)}, "", refYear)
	assert.Equal(t, 0.0, record.TotalExperienceYears)
}

func TestBuildRecord_EmptyEverything(t *testing.T) {
	record := BuildRecord(&types.ParsedResume{}, "", refYear)

	assert.Empty(t, record.Skills)
	assert.Empty(t, record.DegreeTokens)
	assert.Equal(t, 0.0, record.TotalExperienceYears)
}

func TestLoad_NopParser(t *testing.T) {
	path := writeResume(t, t.TempDir(), "ada.txt", resumeText)

	record := Load(context.Background(), NopParser{}, path, refYear, nil)

	assert.Equal(t, resumeText, record.RawText)
	assert.Equal(t, []string{"figma", "python", "sketch"}, record.Skills)
	assert.Equal(t, 3.0, record.TotalExperienceYears)
}

func TestLoad_FileParserSidecar(t *testing.T) {
	dir := t.TempDir()
	path := writeResume(t, dir, "ada.txt", resumeText)
	writeResume(t, dir, "ada.json", `{"name":"Ada Lovelace","skills":"UI/UX","total_experience":"4"}`)

	record := Load(context.Background(), FileParser{}, path, refYear, nil)

	assert.Equal(t, "Ada Lovelace", record.Name)
	assert.Equal(t, []string{"UI/UX"}, record.Skills)
	assert.Equal(t, []string{"b.tech"}, record.DegreeTokens)
	// "4" is a string, so the years come from the 2019-2022 range
	assert.Equal(t, 3.0, record.TotalExperienceYears)
}

func TestLoad_ParseFailureDegrades(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	path := writeResume(t, t.TempDir(), "ada.txt", resumeText)

	record := Load(context.Background(), FileParser{}, path, refYear, zap.New(core))

	require.NotNil(t, record)
	assert.Empty(t, record.Name)
	assert.Equal(t, []string{"figma", "python", "sketch"}, record.Skills)
	assert.Equal(t, 1, logs.FilterMessage("resume parsing failed, using text fallbacks").Len())
}

func TestLoad_MissingFile(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	path := filepath.Join(t.TempDir(), "missing.pdf")

	record := Load(context.Background(), NopParser{}, path, refYear, zap.New(core))

	assert.Empty(t, record.RawText)
	assert.Empty(t, record.Skills)
	assert.Equal(t, 1, logs.FilterMessage("no text extracted from resume").Len())
}
