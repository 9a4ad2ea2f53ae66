// Package lexicon holds the static skill vocabulary, alias table and degree table
// used by the matcher. The tables are read-only and exposed through accessors.
package lexicon

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

var knownSkills = []string{
	// UI/UX
	"ui", "ux", "ui ux", "user interface", "user experience",
	"wireframe", "wireframing", "prototyping", "prototype",
	"figma", "adobe xd", "adobexd", "sketch", "zeplin",
	"photoshop", "illustrator", "invision",

	// web/dev
	"html", "css", "html css", "javascript", "react", "angular", "node", "django", "flask",

	// data
	"python", "tensorflow", "pytorch", "opencv", "pandas", "numpy", "docker", "aws",
}

// aliases maps surface forms to canonical skill names
var aliases = map[string]string{
	"adobe xd":        "adobe_xd",
	"adobexd":         "adobe_xd",
	"html/css":        "html css",
	"react js":        "react",
	"node js":         "node",
	"c#":              "csharp",
	"ui/ux":           "ui ux",
	"ux/ui":           "ui ux",
	"wireframes":      "wireframing",
	"wireframe":       "wireframing",
	"prototype":       "prototyping",
	"user interface":  "ui",
	"user experience": "ux",
}

type degreeEntry struct {
	token string
	level types.DegreeLevel
}

// degrees is ordered; substring scans report hits in this order before sorting
var degrees = []degreeEntry{
	{"phd", types.DegreeDoctorate},
	{"doctor", types.DegreeDoctorate},
	{"masters", types.DegreeMaster},
	{"master", types.DegreeMaster},
	{"m.s", types.DegreeMaster},
	{"m.s.", types.DegreeMaster},
	{"mtech", types.DegreeMaster},
	{"m.tech", types.DegreeMaster},
	{"msc", types.DegreeMaster},
	{"m.sc", types.DegreeMaster},
	{"mca", types.DegreeMaster},
	{"bachelors", types.DegreeBachelor},
	{"bachelor", types.DegreeBachelor},
	{"b.e", types.DegreeBachelor},
	{"b.tech", types.DegreeBachelor},
	{"btech", types.DegreeBachelor},
	{"bs", types.DegreeBachelor},
	{"b.s.", types.DegreeBachelor},
	{"b.des", types.DegreeBachelor},
	{"bdes", types.DegreeBachelor},
	{"hci", types.DegreeBachelor},
	{"design", types.DegreeBachelor},
}

var degreeLevels = func() map[string]types.DegreeLevel {
	m := make(map[string]types.DegreeLevel, len(degrees))
	for _, d := range degrees {
		m[d.token] = d.level
	}
	return m
}()

// KnownSkills returns a copy of the skill vocabulary used for free-text scans
func KnownSkills() []string {
	out := make([]string, len(knownSkills))
	copy(out, knownSkills)
	return out
}

// Alias returns the canonical form registered for s, if any
func Alias(s string) (string, bool) {
	canonical, ok := aliases[s]
	return canonical, ok
}

// DegreeTokens returns the degree tokens in table order
func DegreeTokens() []string {
	out := make([]string, len(degrees))
	for i, d := range degrees {
		out[i] = d.token
	}
	return out
}

// DegreeLevelOf returns the level of an exact degree token, DegreeNone when unknown
func DegreeLevelOf(token string) types.DegreeLevel {
	return degreeLevels[token]
}

// DegreeLevel returns the highest level among tokens. Unknown tokens count as none.
func DegreeLevel(tokens []string) types.DegreeLevel {
	level := types.DegreeNone
	for _, t := range tokens {
		level = max(level, DegreeLevelOf(t))
	}
	return level
}

// MatchDegrees scans free-form degree entries (e.g. "Bachelor of Technology") for
// degree tokens as substrings and returns the highest level plus the sorted hits.
func MatchDegrees(entries []string) (types.DegreeLevel, []string) {
	level := types.DegreeNone
	seen := make(map[string]struct{})
	for _, entry := range entries {
		lower := strings.ToLower(entry)
		for _, d := range degrees {
			if strings.Contains(lower, d.token) {
				level = max(level, d.level)
				seen[d.token] = struct{}{}
			}
		}
	}

	hits := make([]string, 0, len(seen))
	for token := range seen {
		hits = append(hits, token)
	}
	sort.Strings(hits)
	return level, hits
}
