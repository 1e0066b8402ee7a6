package scoring

import (
	"fmt"

	"github.com/jonathan/interview-screener/internal/types"
)

// minNarrativeLength is the threshold below which a narrative field is
// considered under-delivered and replaced with a templated sentence.
const minNarrativeLength = 50

// backfill copies the rubric's qualitative fields onto the analysis record,
// replacing thin narrative fields with role-referencing defaults and missing
// structural fields with fixed shapes. Every optional field's default lives
// here and nowhere else.
func backfill(analysis *types.InterviewAnalysis, rubric *types.RubricResponse, jobRole string) {
	analysis.DomainKnowledgeInsights = orNarrative(rubric.DomainKnowledgeInsights, fmt.Sprintf(
		"Based on the interview responses, the candidate demonstrated understanding of %s concepts. "+
			"Their domain knowledge appears to be at a foundational level with room for growth in specialized areas. "+
			"Further assessment would benefit from more technical deep-dive questions.", jobRole))

	analysis.ProblemSolvingApproach = orNarrative(rubric.ProblemSolvingApproach,
		"The candidate's problem-solving approach shows structured thinking with a preference for systematic analysis. "+
			"They demonstrate the ability to break down complex problems into manageable components, though more examples "+
			"of innovative solutions would strengthen their profile.")

	analysis.RelevantExperienceAssessment = orNarrative(rubric.RelevantExperienceAssessment, fmt.Sprintf(
		"The candidate's experience shows some alignment with the %s position requirements. "+
			"They have demonstrated transferable skills that could be valuable in this role, though direct experience "+
			"in certain key areas may be limited.", jobRole))

	if rubric.TechnicalCompetencyAnalysis != nil && len(rubric.TechnicalCompetencyAnalysis.Strengths) > 0 {
		analysis.TechnicalCompetencyAnalysis = *rubric.TechnicalCompetencyAnalysis
	} else {
		analysis.TechnicalCompetencyAnalysis = types.TechnicalCompetencyAnalysis{
			Strengths:   []string{"Communication skills", "Willingness to learn", "Basic technical understanding"},
			Weaknesses:  []string{"Limited hands-on experience", "Needs deeper technical knowledge"},
			DepthRating: "Intermediate",
		}
	}

	analysis.KnowledgeGaps = rubric.KnowledgeGaps
	if len(analysis.KnowledgeGaps) == 0 {
		analysis.KnowledgeGaps = []string{"Advanced technical concepts", "Industry-specific best practices", "Specialized tools and frameworks"}
	}

	if rubric.InterviewPerformanceMetrics != nil && rubric.InterviewPerformanceMetrics.ResponseQuality != "" {
		analysis.InterviewPerformanceMetrics = *rubric.InterviewPerformanceMetrics
	} else {
		analysis.InterviewPerformanceMetrics = types.InterviewPerformanceMetrics{
			ResponseQuality:      "Good",
			TechnicalAccuracy:    "Mostly Accurate",
			ExamplesProvided:     "Some Examples",
			ClarityOfExplanation: "Clear",
		}
	}

	analysis.AreasOfImprovement = rubric.AreasOfImprovement
	if len(analysis.AreasOfImprovement) == 0 {
		analysis.AreasOfImprovement = []string{"Provide more concrete examples", "Deepen technical explanations"}
	}

	analysis.SystemRecommendation = rubric.SystemRecommendation
	if analysis.SystemRecommendation == "" {
		analysis.SystemRecommendation = "Maybe"
	}

	analysis.BehavioralAnalysis = types.BehavioralAnalysis{
		ConfidenceLevel:  orDefault(rubric.ConfidenceLevel, "medium"),
		CheatingDetected: rubric.CheatingDetected,
		SpeechPattern:    orDefault(rubric.SpeechPattern, "normal"),
	}
}

func orNarrative(value, fallback string) string {
	if len(value) < minNarrativeLength {
		return fallback
	}
	return value
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
