package ranking

import (
	"math"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Weights of the sub-scores in the overall score
const (
	skillsWeight     = 0.5
	experienceWeight = 0.3
	educationWeight  = 0.2
)

// ExperienceScore rates years of experience against the job minimum. Without a
// minimum any experience earns full marks and none earns zero.
func ExperienceScore(minYears int, years float64) float64 {
	if minYears <= 0 {
		if years > 0 {
			return 100
		}
		return 0
	}
	return math.Min(100, years/float64(minYears)*100)
}

// EducationScore compares degree levels. With no required level any degree
// earns full marks; one level short earns 60 and anything lower 30.
func EducationScore(required, candidate types.DegreeLevel) float64 {
	switch {
	case required == types.DegreeNone:
		if candidate > types.DegreeNone {
			return 100
		}
		return 0
	case candidate >= required:
		return 100
	case candidate == required-1:
		return 60
	default:
		return 30
	}
}

// OverallScore is the weighted sum of the three sub-scores
func OverallScore(skills, experience, education float64) float64 {
	return skillsWeight*skills + experienceWeight*experience + educationWeight*education
}

// ToMatchScores rounds a result for presentation, halves to even
func ToMatchScores(r types.ScoreResult) types.MatchScores {
	return types.MatchScores{
		SkillsMatch:     int(math.RoundToEven(r.Skills)),
		ExperienceMatch: int(math.RoundToEven(r.Experience)),
		EducationMatch:  int(math.RoundToEven(r.Education)),
		OverallScore:    int(math.RoundToEven(r.Overall)),
	}
}
