// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines what an extraction prompt asks the model to return
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "Resume")
	Description string        // Preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint rendered into the prompt
	Description string // Description for the LLM
	Required    bool
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		fmt.Fprintf(&sb, "  %q: %s%s", field.Name, typeHint, requiredHint)
		if field.Description != "" {
			fmt.Fprintf(&sb, " // %s", field.Description)
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent values.\n")
	sb.WriteString("- Use an empty list when a section is missing.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// ResumeSchema returns the extraction schema for a resume record. description
// is the task preamble, usually loaded from the prompt files.
func ResumeSchema(description string) ExtractionSchema {
	return ExtractionSchema{
		Name:        "Resume",
		Description: description,
		Fields: []SchemaField{
			{
				Name:        "name",
				Type:        "\"string\"",
				Description: "Candidate full name as written",
			},
			{
				Name:        "skills",
				Type:        "[\"string\"]",
				Description: "Tools, languages and techniques the candidate lists, one per item",
				Required:    true,
			},
			{
				Name:        "degree",
				Type:        "[\"string\"]",
				Description: "Each degree verbatim, e.g. \"Bachelor of Technology in Computer Science\"",
				Required:    true,
			},
			{
				Name:        "experience",
				Type:        "[\"string\"]",
				Description: "One entry per position: title, employer and date range",
				Required:    true,
			},
			{
				Name:        "total_experience",
				Type:        "number",
				Description: "Total years of professional experience, omit if unknown",
			},
		},
	}
}
