// Package parsing turns free text into canonical skills, degrees and job records.
package parsing

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/lexicon"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	// yearsPhrase catches experience mentions such as "3+ years" or "5 yrs"
	yearsPhrase = regexp.MustCompile(`\d+\+?\s*(years|yrs)`)
	// skillToken is the character-class invariant every canonical skill satisfies
	skillToken = regexp.MustCompile(`^[a-z0-9_][a-z0-9_ ]{0,50}$`)
)

// compoundUIUX lists the canonical forms that expand to the atomic "ui" and "ux"
var compoundUIUX = map[string]bool{
	"ui ux": true,
	"ux ui": true,
}

// NormalizeSkills maps raw skill candidates to a sorted, de-duplicated set of
// canonical skill names. The result never contains experience phrases or tokens
// outside [a-z0-9_ ], and NormalizeSkills(NormalizeSkills(x)) == NormalizeSkills(x).
func NormalizeSkills(candidates []string) []string {
	normed := make([]string, 0, len(candidates))
	for _, c := range candidates {
		normed = append(normed, normalizeCandidate(c)...)
	}

	seen := make(map[string]struct{}, len(normed))
	for _, s := range normed {
		if yearsPhrase.MatchString(s) {
			continue
		}
		seen[s] = struct{}{}
	}

	final := make([]string, 0, len(seen))
	for s := range seen {
		if skillToken.MatchString(s) {
			final = append(final, s)
		}
	}
	sort.Strings(final)
	return final
}

// normalizeCandidate canonicalizes one surface form. It returns zero, one, or
// (for the combined UI/UX compound) two tokens.
func normalizeCandidate(candidate string) []string {
	s := strings.ToLower(strings.TrimSpace(candidate))
	if s == "" {
		return nil
	}

	s = strings.ReplaceAll(s, "/", " ")
	s = strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
	if s == "" {
		return nil
	}
	if canonical, ok := lexicon.Alias(s); ok {
		s = canonical
	}

	if compoundUIUX[s] {
		return []string{"ui", "ux"}
	}
	return []string{s}
}

// HasYearsPhrase reports whether s mentions a number of years of experience
func HasYearsPhrase(s string) bool {
	return yearsPhrase.MatchString(s)
}
