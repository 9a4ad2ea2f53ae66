package parsing

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/resume-matcher/internal/lexicon"
)

// wordPatterns caches compiled \b<phrase>\b expressions keyed by phrase
var wordPatterns sync.Map

// wordPattern returns a case-sensitive whole-word matcher for a lowercase phrase
func wordPattern(phrase string) *regexp.Regexp {
	if cached, ok := wordPatterns.Load(phrase); ok {
		return cached.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(phrase) + `\b`)
	wordPatterns.Store(phrase, re)
	return re
}

// ContainsWord reports whether phrase occurs in text as a whole word.
// Both arguments are expected to be lowercase already.
func ContainsWord(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	return wordPattern(phrase).MatchString(text)
}

var separatorReplacer = strings.NewReplacer("/", " ", "|", " ")

// DetectSkills scans free text for vocabulary phrases on word boundaries and
// returns the normalized hits. When a phrase is absent its alias is tried with
// underscores read as spaces, so "adobe_xd" is found from "Adobe XD".
func DetectSkills(text string, vocabulary []string) []string {
	search := " " + separatorReplacer.Replace(strings.ToLower(text)) + " "

	hits := make([]string, 0)
	for _, phrase := range vocabulary {
		phrase = strings.ToLower(phrase)
		if ContainsWord(search, phrase) {
			hits = append(hits, phrase)
			continue
		}
		alias, ok := lexicon.Alias(phrase)
		if ok && ContainsWord(search, strings.ReplaceAll(alias, "_", " ")) {
			hits = append(hits, alias)
		}
	}
	return NormalizeSkills(hits)
}

// DetectDegrees returns every degree token that appears anywhere in the text.
// Matching is plain substring search with no word boundaries.
func DetectDegrees(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]struct{})
	for _, token := range lexicon.DegreeTokens() {
		if strings.Contains(lower, token) {
			seen[token] = struct{}{}
		}
	}

	tokens := make([]string, 0, len(seen))
	for token := range seen {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}
