package ranking

import (
	"strings"

	"github.com/jonathan/resume-matcher/internal/parsing"
)

// RescueFromText adds required skills the structured record missed but the raw
// resume text mentions. Each missing skill is looked up as a whole word in its
// canonical form, with underscores as spaces, and with a trailing "ing" or "s"
// dropped from the spaced form.
func RescueFromText(required, held []string, rawText string) []string {
	if len(required) == 0 || rawText == "" {
		return parsing.NormalizeSkills(held)
	}

	have := make(map[string]struct{}, len(held))
	for _, h := range held {
		have[h] = struct{}{}
	}

	lower := strings.ToLower(rawText)
	out := append([]string(nil), held...)
	for _, skill := range required {
		if _, ok := have[skill]; ok {
			continue
		}
		if mentions(lower, skill) {
			out = append(out, skill)
			have[skill] = struct{}{}
		}
	}
	return parsing.NormalizeSkills(out)
}

func mentions(lower, skill string) bool {
	spaced := strings.ReplaceAll(skill, "_", " ")
	variants := []string{
		skill,
		spaced,
		strings.TrimSuffix(spaced, "ing"),
		strings.TrimSuffix(spaced, "s"),
	}
	for _, v := range variants {
		if parsing.ContainsWord(lower, strings.TrimSpace(v)) {
			return true
		}
	}
	return false
}
