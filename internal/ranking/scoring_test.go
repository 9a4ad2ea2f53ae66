package ranking

import (
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestExperienceScore(t *testing.T) {
	tests := []struct {
		name     string
		minYears int
		years    float64
		expected float64
	}{
		{"no minimum with experience", 0, 0.5, 100},
		{"no minimum without experience", 0, 0, 0},
		{"negative minimum treated as none", -2, 3, 100},
		{"partial", 4, 2, 50},
		{"exceeds minimum capped", 3, 10, 100},
		{"exact", 5, 5, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ExperienceScore(tt.minYears, tt.years), 1e-9)
		})
	}
}

func TestEducationScore(t *testing.T) {
	tests := []struct {
		name      string
		required  types.DegreeLevel
		candidate types.DegreeLevel
		expected  float64
	}{
		{"one below", types.DegreeMaster, types.DegreeBachelor, 60},
		{"two below", types.DegreeDoctorate, types.DegreeBachelor, 30},
		{"none against master", types.DegreeMaster, types.DegreeNone, 30},
		{"meets", types.DegreeBachelor, types.DegreeBachelor, 100},
		{"exceeds", types.DegreeBachelor, types.DegreeDoctorate, 100},
		{"no requirement with degree", types.DegreeNone, types.DegreeBachelor, 100},
		{"no requirement without degree", types.DegreeNone, types.DegreeNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EducationScore(tt.required, tt.candidate))
		})
	}
}

func TestOverallScore(t *testing.T) {
	assert.InDelta(t, 82.0, OverallScore(80, 100, 60), 1e-9)
	assert.InDelta(t, 100.0, OverallScore(100, 100, 100), 1e-9)
	assert.InDelta(t, 0.0, OverallScore(0, 0, 0), 1e-9)
}

func TestToMatchScores_RoundsHalfToEven(t *testing.T) {
	got := ToMatchScores(types.ScoreResult{Skills: 62.5, Experience: 63.5, Education: 99.4, Overall: 80.5})
	assert.Equal(t, types.MatchScores{SkillsMatch: 62, ExperienceMatch: 64, EducationMatch: 99, OverallScore: 80}, got)
}
