package types

import (
	"encoding/json"
	"strings"
)

// ParsedResume is the best-effort structured record produced by a resume parser.
// Any field may be missing; TotalExperience is nil when the parser did not
// report a usable number.
type ParsedResume struct {
	Name            string   `json:"name,omitempty"`
	Skills          []string `json:"skills"`
	Degree          []string `json:"degree"`
	Experience      []string `json:"experience"`
	TotalExperience *float64 `json:"total_experience,omitempty"`
}

// UnmarshalJSON decodes a parser record leniently. Lists may arrive as a single
// string. total_experience counts only when it is a JSON number; anything
// else, numeric strings included, decodes as absent.
func (p *ParsedResume) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = ParsedResume{}
	if v, ok := raw["name"]; ok {
		p.Name = strings.TrimSpace(decodeString(v))
	}
	p.Skills = decodeStringList(raw["skills"])
	p.Degree = decodeStringList(raw["degree"])
	p.Experience = decodeStringList(raw["experience"])
	p.TotalExperience = decodeNumber(raw["total_experience"])
	return nil
}

func decodeString(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return ""
}

func decodeStringList(v json.RawMessage) []string {
	if len(v) == 0 {
		return nil
	}

	var list []any
	if err := json.Unmarshal(v, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out
	}

	if s := decodeString(v); strings.TrimSpace(s) != "" {
		return []string{s}
	}
	return nil
}

func decodeNumber(v json.RawMessage) *float64 {
	// null unmarshals into a float64 without error
	if len(v) == 0 || strings.TrimSpace(string(v)) == "null" {
		return nil
	}

	var f float64
	if err := json.Unmarshal(v, &f); err != nil {
		return nil
	}
	return &f
}

// ResumeRecord is the request-scoped view of a resume the scoring engine consumes
type ResumeRecord struct {
	Name                 string   `json:"name,omitempty"`
	RawText              string   `json:"-"`
	Skills               []string `json:"skills"`
	DegreeTokens         []string `json:"degree"`
	ExperienceEntries    []string `json:"experience,omitempty"`
	TotalExperienceYears float64  `json:"total_experience"`
}
