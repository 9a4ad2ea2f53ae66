package types

// JobRecord is the structured view of a job description, derived from its free text
type JobRecord struct {
	JobTitle           string   `json:"job_title"`
	MinYearsExperience int      `json:"min_years_experience"`
	Skills             []string `json:"skills"`
	EducationTokens    []string `json:"education"`
}

// Coverage method names reported in ScoreDetail
const (
	MethodExact    = "exact"
	MethodSemantic = "semantic"
)

// ScoreResult holds the three sub-scores and the weighted overall score, each in [0,100]
type ScoreResult struct {
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
	Overall    float64 `json:"overall"`
}

// ScoreDetail explains how a ScoreResult was reached
type ScoreDetail struct {
	ResumeSkills     []string `json:"resume_skills"`
	MatchedSkills    []string `json:"skills_matched"`
	MissingSkills    []string `json:"skills_missing"`
	ResumeYears      float64  `json:"resume_years_experience"`
	ResumeDegreeHits []string `json:"resume_degrees"`
	Method           string   `json:"method"`
	UsedSemantic     bool     `json:"used_semantic"`
}

// MatchScores is the integer presentation of a ScoreResult
type MatchScores struct {
	SkillsMatch     int `json:"skills_match"`
	ExperienceMatch int `json:"experience_match"`
	EducationMatch  int `json:"education_match"`
	OverallScore    int `json:"overall_score"`
}

// Explanations is the optional breakdown returned alongside the scores
type Explanations struct {
	JDSkills              []string `json:"jd_skills"`
	ResumeSkills          []string `json:"resume_skills"`
	SkillsMatched         []string `json:"skills_matched"`
	SkillsMissing         []string `json:"skills_missing"`
	JDMinExperienceYears  int      `json:"jd_min_exp_years"`
	ResumeExperienceYears float64  `json:"resume_years_experience"`
	JDEducation           []string `json:"jd_education"`
	ResumeDegrees         []string `json:"resume_degrees"`
	UsedSemantic          bool     `json:"used_semantic"`
}

// MatchResponse is the result of matching one resume against one job description
type MatchResponse struct {
	CandidateName string        `json:"candidate_name"`
	JobTitle      string        `json:"job_title"`
	MatchScores   MatchScores   `json:"match_scores"`
	Explanations  *Explanations `json:"explanations,omitempty"`
}
