package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildExtractionPrompt_Resume(t *testing.T) {
	prompt := BuildExtractionPrompt(ResumeSchema("You parse resumes."), "Ada Lovelace\nSkills: Python")

	assert.Contains(t, prompt, "You parse resumes.")
	assert.Contains(t, prompt, `"skills": ["string"] (required)`)
	assert.Contains(t, prompt, `"total_experience": number //`)
	assert.Contains(t, prompt, "Ada Lovelace\nSkills: Python")
	assert.NotContains(t, prompt, `"name": "string" (required)`)
}

func TestBuildExtractionPrompt_DefaultType(t *testing.T) {
	schema := ExtractionSchema{
		Description: "desc",
		Fields:      []SchemaField{{Name: "a"}, {Name: "b", Type: "number"}},
	}
	prompt := BuildExtractionPrompt(schema, "x")

	assert.Contains(t, prompt, `"a": string,`)
	assert.Contains(t, prompt, `"b": number`+"\n")
}
