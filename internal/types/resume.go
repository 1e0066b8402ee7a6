package types

import "github.com/google/uuid"

// ResumeClassification buckets a resume by role category and seniority.
type ResumeClassification struct {
	Category   string  `json:"category"` // tech, non-tech, semi-tech
	Level      string  `json:"level"`    // entry, mid, senior
	Confidence float64 `json:"confidence"`
}

// FallbackClassification is used when classification cannot be parsed.
func FallbackClassification() ResumeClassification {
	return ResumeClassification{Category: "tech", Level: "mid", Confidence: 0.5}
}

// FitAnalysis is the job-fit judgment for one resume.
type FitAnalysis struct {
	FitScore         float64  `json:"fit_score"`
	MatchingSkills   []string `json:"matching_skills"`
	MissingSkills    []string `json:"missing_skills"`
	ExperienceScore  float64  `json:"experience_score"`
	Recommendation   string   `json:"recommendation"` // STRONG_FIT, GOOD_FIT, MODERATE_FIT, WEAK_FIT, MANUAL_REVIEW
	DetailedFeedback string   `json:"detailed_feedback"`
}

// ResumeAnalysisResult is the stored outcome of screening one resume.
type ResumeAnalysisResult struct {
	ResumeID       uuid.UUID            `json:"resume_id"`
	Filename       string               `json:"filename"`
	CandidateName  string               `json:"candidate_name"`
	Classification ResumeClassification `json:"classification"`
	Fit            FitAnalysis          `json:"fit"`
	// Error is set when processing failed and Fit holds fallback values.
	Error string `json:"error,omitempty"`
}

// JobAnalysis is the structured view of a job description used to drive
// question generation and fit analysis.
type JobAnalysis struct {
	RequiredSkills         RequiredSkills         `json:"required_skills"`
	NiceToHaveSkills       []string               `json:"nice_to_have_skills"`
	KeyResponsibilities    []string               `json:"key_responsibilities"`
	RequiredQualifications []string               `json:"required_qualifications"`
	ExperienceRequirements ExperienceRequirements `json:"experience_requirements"`
	TechnologyStack        []string               `json:"technology_stack"`
	IndustryDomain         string                 `json:"industry_domain"`
	JobCategory            string                 `json:"job_category"`
}

// RequiredSkills groups required skills by kind.
type RequiredSkills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Domain    []string `json:"domain"`
}

// ExperienceRequirements captures the experience expectation of a role.
type ExperienceRequirements struct {
	Years string `json:"years"`
	Type  string `json:"type"`
}

// FallbackJobAnalysis returns the analysis used when extraction fails.
func FallbackJobAnalysis(requiredExperience string) JobAnalysis {
	return JobAnalysis{
		RequiredSkills:         RequiredSkills{Technical: []string{}, Soft: []string{}, Domain: []string{}},
		NiceToHaveSkills:       []string{},
		KeyResponsibilities:    []string{},
		RequiredQualifications: []string{},
		ExperienceRequirements: ExperienceRequirements{Years: requiredExperience, Type: "general"},
		TechnologyStack:        []string{},
		IndustryDomain:         "general",
		JobCategory:            "tech",
	}
}
