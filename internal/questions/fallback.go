package questions

import (
	"fmt"
	"strings"

	"github.com/jonathan/interview-screener/internal/types"
)

// fallbackBank returns the canned question list per category. Domain questions
// are templated on the candidate's professional category so even canned
// questions stay role-relevant.
func fallbackBank(candidateType string) map[types.Category][]string {
	return map[types.Category][]string{
		types.CategoryScreening: {
			"Can you walk me through your professional background and experience?",
			"What interests you most about this position and our company?",
			"How does your experience align with the requirements of this role?",
			"Tell me about your educational background and how it prepared you for this role.",
			"What motivated you to apply for this position?",
			"How do you see this role fitting into your career goals?",
			"What do you know about our company and industry?",
		},
		types.CategoryDomain: {
			fmt.Sprintf("Describe a challenging %s project you've worked on recently.", candidateType),
			fmt.Sprintf("How do you stay updated with the latest %s trends and technologies?", candidateType),
			fmt.Sprintf("What %s tools and methodologies do you prefer and why?", candidateType),
			"Can you explain a complex technical concept to a non-technical stakeholder?",
			fmt.Sprintf("What %s skills do you consider your strongest?", candidateType),
			fmt.Sprintf("Describe a time when you had to learn a new %s technology quickly.", candidateType),
			fmt.Sprintf("How do you approach problem-solving in %s contexts?", candidateType),
			fmt.Sprintf("What %s best practices do you follow in your work?", candidateType),
		},
		types.CategoryBehavioral: {
			"Describe a time when you had to work under pressure. How did you handle it?",
			"Tell me about a situation where you had to collaborate with a difficult team member.",
			"How do you approach learning new skills or technologies?",
			"Describe a time when you made a mistake. How did you handle it?",
			"Tell me about a time when you had to adapt to a significant change at work.",
			"Describe a situation where you had to take initiative to solve a problem.",
			"How do you handle constructive criticism?",
			"Tell me about a time when you had to meet a tight deadline.",
		},
		types.CategoryCommunication: {
			"How do you ensure clear communication in your team?",
			"Describe a time when you had to present complex information to stakeholders.",
			"How do you handle feedback and criticism?",
			"Tell me about a time when you had to explain a technical concept to someone without a technical background.",
			"How do you prefer to communicate with team members?",
			"Describe a situation where miscommunication caused problems and how you resolved it.",
		},
	}
}

// GenerateFallback builds a deterministic question set that exactly matches
// the requested distribution. Used whenever LLM generation fails or returns a
// set that violates the distribution.
func GenerateFallback(candidateType, candidateLevel string, dist types.QuestionDistribution) types.QuestionSet {
	bank := fallbackBank(candidateType)

	var generated []types.GeneratedQuestion
	id := 1
	for _, cat := range types.Categories() {
		count := dist.Count(cat)
		if count == 0 {
			continue
		}
		pool, ok := bank[cat]
		if !ok {
			pool = bank[types.CategoryScreening]
		}
		for i := 0; i < count; i++ {
			text := ""
			if i < len(pool) {
				text = pool[i]
			} else {
				text = fmt.Sprintf("Additional %s question %d - Please elaborate on your experience related to this %s area.", cat, i+1, cat)
			}
			generated = append(generated, types.GeneratedQuestion{
				ID:            id,
				Category:      cat,
				Question:      text,
				FocusArea:     fmt.Sprintf("%s assessment", cat),
				ExpectedDepth: candidateLevel,
			})
			id++
		}
	}

	var focusAreas []string
	if dist.Screening > 0 {
		focusAreas = append(focusAreas, "background verification")
	}
	if dist.Domain > 0 {
		focusAreas = append(focusAreas, fmt.Sprintf("%s expertise", candidateType))
	}
	if dist.Behavioral > 0 {
		focusAreas = append(focusAreas, "behavioral assessment")
	}
	if dist.Communication > 0 {
		focusAreas = append(focusAreas, "communication skills")
	}

	return types.QuestionSet{
		Questions:         generated,
		InterviewFocus:    fmt.Sprintf("Focused assessment on %s for %s %s role", strings.Join(focusAreas, ", "), candidateLevel, candidateType),
		SuccessCriteria:   fmt.Sprintf("Clear communication, relevant experience, and %s-appropriate depth in allocated assessment areas", candidateLevel),
		TotalQuestions:    len(generated),
		EstimatedDuration: len(generated) * 2,
	}
}

// FallbackTierQuestions returns a canned list of count questions for one
// category at one difficulty, used to fill a pool tier when LLM generation
// fails for that (category, difficulty) pair.
func FallbackTierQuestions(cat types.Category, difficulty types.Difficulty, count int, candidateType, candidateLevel string, startID int) []types.GeneratedQuestion {
	bank := fallbackBank(candidateType)
	pool, ok := bank[cat]
	if !ok || len(pool) == 0 {
		pool = bank[types.CategoryScreening]
	}

	out := make([]types.GeneratedQuestion, 0, count)
	for i := 0; i < count; i++ {
		text := ""
		if i < len(pool) {
			text = pool[i]
		} else {
			text = fmt.Sprintf("Additional %s question %d - Please elaborate on your experience related to this %s area.", cat, i+1, cat)
		}
		out = append(out, types.GeneratedQuestion{
			ID:            startID + i,
			Category:      cat,
			Question:      text,
			FocusArea:     fmt.Sprintf("%s assessment", cat),
			ExpectedDepth: candidateLevel,
			Difficulty:    difficulty,
		})
	}
	return out
}
