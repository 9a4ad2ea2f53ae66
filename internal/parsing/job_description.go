package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-matcher/internal/lexicon"
	"github.com/jonathan/resume-matcher/internal/types"
)

const maxTitleLength = 120

// requirementTriggers mark lines that list required skills
var requirementTriggers = []string{"required", "requirements", "skills", "key skills", "tech stack", "proficient in"}

// discardPrefixes drop split fragments that are headings rather than skills
var discardPrefixes = []string{"required", "requirements", "skills", "key skills", "tech stack", "proficient in", "role"}

var (
	minYearsPattern    = regexp.MustCompile(`(\d+)\s*\+?\s*(?:years|yrs)`)
	requirementSplit   = regexp.MustCompile(`[•\-,]`)
	candidateTrimChars = " -•—:;()."
)

// ParseJobDescription derives a JobRecord from free job description text
func ParseJobDescription(text string) *types.JobRecord {
	text = strings.TrimSpace(text)
	lines := nonEmptyLines(text)
	lower := strings.ToLower(text)

	skills, found := ExtractRequirementSkills(lines)
	if !found {
		skills = DetectSkills(lower, lexicon.KnownSkills())
	}

	return &types.JobRecord{
		JobTitle:           jobTitle(lines),
		MinYearsExperience: minYearsExperience(lower),
		Skills:             skills,
		EducationTokens:    DetectDegrees(lower),
	}
}

// ExtractRequirementSkills runs the structured pass over requirement lines:
// any line containing a trigger word is split on bullets, dashes and commas and
// the fragments become skill candidates. found reports whether any candidate
// survived the discard filters, even if normalization later dropped it; the
// vocabulary scan only runs when nothing was found.
func ExtractRequirementSkills(lines []string) (skills []string, found bool) {
	candidates := make([]string, 0)
	for _, line := range lines {
		low := strings.ToLower(line)
		if !containsAny(low, requirementTriggers) {
			continue
		}

		for _, part := range requirementSplit.Split(line, -1) {
			p := strings.ToLower(strings.Trim(part, candidateTrimChars))
			if p == "" || hasAnyPrefix(p, discardPrefixes) {
				continue
			}
			if HasYearsPhrase(p) {
				continue
			}
			candidates = append(candidates, p)
		}
	}
	return NormalizeSkills(candidates), len(candidates) > 0
}

// jobTitle prefers an explicit "role:" line, else the first line
func jobTitle(lines []string) string {
	for _, l := range lines {
		if strings.HasPrefix(strings.ToLower(l), "role:") {
			_, title, _ := strings.Cut(l, ":")
			if title = strings.TrimSpace(title); title != "" {
				return title
			}
			break
		}
	}
	if len(lines) == 0 {
		return ""
	}

	first := []rune(lines[0])
	if len(first) > maxTitleLength {
		first = first[:maxTitleLength]
	}
	return string(first)
}

func minYearsExperience(lower string) int {
	best := 0
	for _, m := range minYearsPattern.FindAllStringSubmatch(lower, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > best {
			best = n
		}
	}
	return best
}

func nonEmptyLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
