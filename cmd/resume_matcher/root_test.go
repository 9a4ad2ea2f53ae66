package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	designerJD     = "Role: Product Designer\nRequired skills - Figma, Sketch, Wireframing, Docker\n3+ years experience\nMaster degree preferred"
	designerResume = "Ada Lovelace\nProduct designer skilled in Figma and Sketch.\nBachelor of Design\n2021-present"
)

// execute runs the CLI in-process and returns stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestMatchCommand(t *testing.T) {
	dir := t.TempDir()
	resumePath := writeFile(t, dir, "ada.txt", designerResume)
	jdPath := writeFile(t, dir, "jd.txt", designerJD)

	out, err := execute(t, "match",
		"--resume", resumePath,
		"--jd", jdPath,
		"--semantic=false",
		"--explain",
		"--resume-parser", "none",
		"--reference-year", "2025",
	)
	require.NoError(t, err)

	var resp types.MatchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "Product Designer", resp.JobTitle)
	assert.Equal(t, types.MatchScores{SkillsMatch: 50, ExperienceMatch: 100, EducationMatch: 60, OverallScore: 67}, resp.MatchScores)
	require.NotNil(t, resp.Explanations)
	assert.Equal(t, []string{"docker", "wireframing"}, resp.Explanations.SkillsMissing)
}

func TestMatchCommand_OutFile(t *testing.T) {
	dir := t.TempDir()
	resumePath := writeFile(t, dir, "ada.txt", designerResume)
	outPath := filepath.Join(dir, "result.json")

	out, err := execute(t, "match",
		"--resume", resumePath,
		"--jd-text", designerJD,
		"--semantic=false",
		"--resume-parser", "none",
		"--out", outPath,
	)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"job_title": "Product Designer"`)
	assert.NotContains(t, string(data), "explanations")
}

func TestMatchCommand_Errors(t *testing.T) {
	resumePath := writeFile(t, t.TempDir(), "ada.txt", designerResume)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing resume flag",
			args:    []string{"match", "--jd-text", designerJD},
			wantErr: "required flag(s) \"resume\" not set",
		},
		{
			name:    "no job description",
			args:    []string{"match", "--resume", resumePath, "--resume-parser", "none", "--semantic=false"},
			wantErr: "provide jd_text or jd_file",
		},
		{
			name:    "invalid parser",
			args:    []string{"match", "--resume", resumePath, "--jd-text", designerJD, "--resume-parser", "magic"},
			wantErr: "resume-parser",
		},
		{
			name:    "threshold out of range",
			args:    []string{"match", "--resume", resumePath, "--jd-text", designerJD, "--threshold", "1.5"},
			wantErr: "threshold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseJobCommand(t *testing.T) {
	out, err := execute(t, "parse-job", "--text", designerJD)
	require.NoError(t, err)

	var record types.JobRecord
	require.NoError(t, json.Unmarshal([]byte(out), &record))
	assert.Equal(t, "Product Designer", record.JobTitle)
	assert.Equal(t, 3, record.MinYearsExperience)
	assert.Equal(t, []string{"docker", "figma", "sketch", "wireframing"}, record.Skills)
	assert.Equal(t, []string{"design", "master"}, record.EducationTokens)
}

func TestParseJobCommand_SourceCount(t *testing.T) {
	_, err := execute(t, "parse-job")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one")

	_, err = execute(t, "parse-job", "--text", designerJD, "--url", "https://example.com/job")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one")
}

func TestParseResumeCommand(t *testing.T) {
	resumePath := writeFile(t, t.TempDir(), "ada.txt", designerResume)

	out, err := execute(t, "parse-resume", "--in", resumePath, "--resume-parser", "none", "--reference-year", "2025")
	require.NoError(t, err)

	var record types.ResumeRecord
	require.NoError(t, json.Unmarshal([]byte(out), &record))
	assert.Equal(t, []string{"figma", "sketch"}, record.Skills)
	assert.Equal(t, []string{"bachelor", "design"}, record.DegreeTokens)
	assert.Equal(t, 4.0, record.TotalExperienceYears)
}

func TestParseResumeCommand_Sidecar(t *testing.T) {
	dir := t.TempDir()
	resumePath := writeFile(t, dir, "ada.txt", designerResume)
	writeFile(t, dir, "ada.json", `{"name":"Ada Lovelace","skills":["Figma"],"total_experience":6}`)

	out, err := execute(t, "parse-resume", "--in", resumePath, "--resume-parser", "file")
	require.NoError(t, err)

	var record types.ResumeRecord
	require.NoError(t, json.Unmarshal([]byte(out), &record))
	assert.Equal(t, "Ada Lovelace", record.Name)
	assert.Equal(t, []string{"Figma"}, record.Skills)
	assert.Equal(t, 6.0, record.TotalExperienceYears)
}

func TestExtractTextCommand(t *testing.T) {
	path := writeFile(t, t.TempDir(), "notes.txt", "  Figma   and Sketch  \n\n\n\nDocker")

	out, err := execute(t, "extract-text", "--in", path)
	require.NoError(t, err)
	assert.Equal(t, "  Figma   and Sketch  \n\n\n\nDocker\n", out)

	_, err = execute(t, "extract-text", "--in", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
