package questions

import (
	"fmt"
	"strings"

	"github.com/jonathan/interview-screener/internal/types"
)

// BuildInterviewPrompt assembles the interviewer-facing prompt for a
// standardized (fixed question list) interview. Stateless string composition.
func BuildInterviewPrompt(set types.QuestionSet, candidateName, jobRole string) string {
	var list []string
	for _, q := range set.Questions {
		list = append(list, fmt.Sprintf("%d. [%s] %s", q.ID, strings.ToUpper(string(q.Category)), q.Question))
	}

	total := set.TotalQuestions
	if total == 0 {
		total = len(set.Questions)
	}
	duration := set.EstimatedDuration
	if duration == 0 {
		duration = total * 2
	}
	focus := set.InterviewFocus
	if focus == "" {
		focus = "Comprehensive assessment"
	}
	success := set.SuccessCriteria
	if success == "" {
		success = "Clear communication and relevant experience"
	}

	return fmt.Sprintf(`You are conducting a professional video interview for a %s position with %s.

INTERVIEW STRUCTURE:
You have exactly %d questions to ask in sequence. Ask ONE question at a time and wait for the candidate's complete response before proceeding to the next question.

YOUR %d QUESTIONS:
%s

INTERVIEW GUIDELINES:
1. Start with a warm, professional greeting and brief introduction
2. Ask questions in the exact order listed above
3. Listen carefully to responses and provide brief encouraging feedback
4. Ask natural follow-up questions if responses are too brief or unclear
5. Keep the interview conversational but focused
6. Maintain a professional yet friendly tone throughout
7. After all %d questions, provide a brief closing and thank the candidate
8. Keep track of time - aim for approximately %d minutes total

INTERVIEW FOCUS: %s

SUCCESS CRITERIA: %s

Remember: This interview is tailored for %s. Make them feel comfortable while gathering comprehensive information about their qualifications and fit for the role.`,
		jobRole, candidateName,
		total, total, strings.Join(list, "\n"),
		total, duration,
		focus, success,
		candidateName)
}

// BuildAdaptivePrompt assembles the interviewer-facing prompt for an adaptive
// interview driven by a multi-tier pool. The conductor starts at the initial
// difficulty and steps down or up based on the marker phrases, announcing each
// transition so it can be recovered from the transcript afterwards.
func BuildAdaptivePrompt(pool types.QuestionPool, cfg types.AdaptiveConfig, candidateName, jobRole string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are conducting an adaptive professional interview for a %s position with %s.\n\n", jobRole, candidateName)
	fmt.Fprintf(&b, "INTERVIEW STRUCTURE:\nAsk exactly %d questions total, ONE at a time, starting at %s difficulty. After each answer, decide the next question's difficulty using the adaptation rules below, then pick an unused question of that difficulty from the pool, staying within the per-category allocation.\n\n", cfg.TotalQuestions, cfg.InitialDifficulty)

	fmt.Fprintf(&b, "CATEGORY ALLOCATION:\n")
	for _, cat := range types.Categories() {
		if count := cfg.Distribution.Count(cat); count > 0 {
			fmt.Fprintf(&b, "- %s: %d questions\n", cat, count)
		}
	}

	b.WriteString("\nQUESTION POOL:\n")
	for _, cat := range types.Categories() {
		tiers, ok := pool[cat]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", strings.ToUpper(string(cat)))
		for _, tier := range types.PoolTiers() {
			for _, q := range tiers[tier] {
				fmt.Fprintf(&b, "  [%s] %s\n", tier, q.Question)
			}
		}
	}

	b.WriteString("\nADAPTATION RULES:\n")
	fmt.Fprintf(&b, "- Step difficulty DOWN one tier when the answer signals struggling, e.g.: %s.\n", strings.Join(cfg.StruggleMarkers, "; "))
	fmt.Fprintf(&b, "- Step difficulty UP one tier when the answer signals excelling, e.g.: %s.\n", strings.Join(cfg.ExcelMarkers, "; "))
	b.WriteString("- Otherwise stay at the current tier.\n")
	b.WriteString("- When changing tiers, say \"[Moving to easy level]\", \"[Moving to medium level]\" or \"[Moving to hard level]\" before the next question.\n")

	b.WriteString("\nINTERVIEW GUIDELINES:\n")
	b.WriteString("1. Start with a warm, professional greeting and brief introduction\n")
	b.WriteString("2. Listen carefully to responses and provide brief encouraging feedback\n")
	b.WriteString("3. Ask natural follow-up questions if responses are too brief or unclear\n")
	b.WriteString("4. Keep the interview conversational but focused\n")
	fmt.Fprintf(&b, "5. After all %d questions, provide a brief closing and thank the candidate\n", cfg.TotalQuestions)

	return b.String()
}
