package questions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/interview-screener/internal/llm"
	"github.com/jonathan/interview-screener/internal/prompts"
	"github.com/jonathan/interview-screener/internal/types"
)

const promptFile = "questions.json"

// categoryPurposes describes each category's functional purpose for the pool
// generation prompt.
var categoryPurposes = map[types.Category]string{
	types.CategoryScreening:     "Verify basic qualifications, background, and motivation for the role.",
	types.CategoryDomain:        "Assess role-specific technical skills and depth of professional knowledge.",
	types.CategoryBehavioral:    "Evaluate attitude, teamwork, and problem-solving approach through past situations.",
	types.CategoryCommunication: "Judge clarity, structure, and the ability to explain ideas to different audiences.",
}

// difficultyBars describes the qualitative bar each tier must clear.
var difficultyBars = map[types.Difficulty]string{
	types.DifficultyEasy:   "Foundational. Definitions, basic experience checks, and straightforward recall.",
	types.DifficultyMedium: "Applied. Practical scenarios that require hands-on experience and judgment.",
	types.DifficultyHard:   "Strategic and expert. Open-ended design questions, tradeoffs, and edge cases.",
}

// DefaultStruggleMarkers are the phrases the interview conductor matches to
// step difficulty down for the next question.
func DefaultStruggleMarkers() []string {
	return []string{
		"i don't know",
		"i'm not sure",
		"not sure",
		"no idea",
		"can you repeat",
		"i don't understand",
		"never worked with",
		"i haven't used",
	}
}

// DefaultExcelMarkers are the phrases the conductor matches to step
// difficulty up.
func DefaultExcelMarkers() []string {
	return []string{
		"for example",
		"in my experience",
		"specifically",
		"i designed",
		"i implemented",
		"the tradeoff",
		"additionally",
		"i led",
	}
}

// PoolRequest carries everything needed to generate an adaptive question pool.
type PoolRequest struct {
	JobAnalysis       types.JobAnalysis
	ResumeAnalysis    types.FitAnalysis
	Criteria          types.EvaluationCriteria
	CandidateType     string
	CandidateLevel    string
	InitialDifficulty types.Difficulty
}

// StandardizedRequest carries the inputs for non-adaptive generation. Resume
// content is deliberately absent: standardized sets are role-based only.
type StandardizedRequest struct {
	JobAnalysis    types.JobAnalysis
	Criteria       types.EvaluationCriteria
	CandidateType  string
	CandidateLevel string
}

// Generator produces interview question pools and standardized sets.
type Generator struct {
	client llm.Client
	logger *zap.Logger
}

// NewGenerator returns a Generator backed by the given completion client.
func NewGenerator(client llm.Client, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{client: client, logger: logger}
}

// GeneratePool builds a three-tier question pool: for every category with a
// non-zero allocation, the category's count is generated at each difficulty
// tier via one LLM call per (category, tier) pair. A failed pair falls back to
// canned questions for that tier, so the pool is always fully populated. Only
// context cancellation aborts the whole pool.
func (g *Generator) GeneratePool(ctx context.Context, req PoolRequest) (types.QuestionPool, types.AdaptiveConfig, error) {
	total := req.Criteria.QuestionCount()
	dist := Distribute(req.Criteria, total)

	pool := make(types.QuestionPool)
	id := 1
	for _, cat := range types.Categories() {
		count := dist.Count(cat)
		if count == 0 {
			continue
		}
		tiers := make(map[types.Difficulty][]types.GeneratedQuestion, len(types.PoolTiers()))
		for _, tier := range types.PoolTiers() {
			if err := ctx.Err(); err != nil {
				return nil, types.AdaptiveConfig{}, fmt.Errorf("pool generation cancelled: %w", err)
			}
			qs, err := g.generateTier(ctx, req, cat, tier, count, id)
			if err != nil {
				g.logger.Warn("tier generation failed, using canned questions",
					zap.String("category", string(cat)),
					zap.String("difficulty", string(tier)),
					zap.Error(err))
				qs = FallbackTierQuestions(cat, tier, count, req.CandidateType, req.CandidateLevel, id)
			}
			tiers[tier] = qs
			id += len(qs)
		}
		pool[cat] = tiers
	}

	cfg := types.AdaptiveConfig{
		InitialDifficulty: req.InitialDifficulty,
		Distribution:      dist,
		TotalQuestions:    total,
		StruggleMarkers:   DefaultStruggleMarkers(),
		ExcelMarkers:      DefaultExcelMarkers(),
	}
	return pool, cfg, nil
}

// generateTier runs one LLM call for a (category, difficulty) pair and decodes
// the returned question array.
func (g *Generator) generateTier(ctx context.Context, req PoolRequest, cat types.Category, tier types.Difficulty, count, startID int) ([]types.GeneratedQuestion, error) {
	jobJSON, _ := json.MarshalIndent(req.JobAnalysis, "", "  ")
	resumeJSON, _ := json.MarshalIndent(req.ResumeAnalysis, "", "  ")

	templateSection := ""
	if t := strings.TrimSpace(req.Criteria.QuestionTemplate); t != "" {
		templateSection = fmt.Sprintf("\nCUSTOM QUESTION TEMPLATE/INSTRUCTIONS for %s %s:\n%s\n", req.CandidateType, req.CandidateLevel, t)
	}

	data := map[string]string{
		"Count":           fmt.Sprintf("%d", count),
		"Category":        string(cat),
		"Difficulty":      string(tier),
		"CandidateType":   req.CandidateType,
		"CandidateLevel":  req.CandidateLevel,
		"CategoryPurpose": categoryPurposes[cat],
		"DifficultyBar":   difficultyBars[tier],
		"JobAnalysis":     string(jobJSON),
		"ResumeAnalysis":  string(resumeJSON),
		"TemplateSection": templateSection,
	}

	messages := []llm.Message{
		{Role: "system", Content: prompts.Format(prompts.MustGet(promptFile, "pool-system"), data)},
		{Role: "user", Content: prompts.Format(prompts.MustGet(promptFile, "pool-generate"), data)},
	}

	response, err := g.client.Complete(ctx, messages, llm.Options{Tier: llm.TierStandard, Temperature: 0.3})
	if err != nil {
		return nil, err
	}

	raw := llm.CleanJSONBlock(response)

	var questions []types.GeneratedQuestion
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		// Direct decode failed; the array may be buried in conversational text.
		extracted, ok := ExtractJSONArray(raw)
		if !ok {
			return nil, fmt.Errorf("no JSON array in response: %w", err)
		}
		if err := json.Unmarshal([]byte(extracted), &questions); err != nil {
			return nil, fmt.Errorf("extracted array does not decode: %w", err)
		}
		raw = extracted
	}

	if err := ValidateQuestionArray(raw); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("empty question array")
	}
	if len(questions) > count {
		questions = questions[:count]
	}
	for len(questions) < count {
		extra := FallbackTierQuestions(cat, tier, 1, req.CandidateType, req.CandidateLevel, startID+len(questions))
		questions = append(questions, extra...)
	}

	for i := range questions {
		questions[i].ID = startID + i
		questions[i].Category = cat
		questions[i].Difficulty = tier
		if questions[i].ExpectedDepth == "" {
			questions[i].ExpectedDepth = req.CandidateLevel
		}
	}
	return questions, nil
}

// GenerateStandardized produces a single fixed-difficulty question set that
// exactly matches the distribution derived from the criteria. Any count or
// distribution mismatch in the LLM output triggers the canned fallback
// generator; the LLM is never retried for a policy violation.
func (g *Generator) GenerateStandardized(ctx context.Context, req StandardizedRequest) types.QuestionSet {
	total := req.Criteria.QuestionCount()
	dist := Distribute(req.Criteria, total)

	set, err := g.generateStandardizedLLM(ctx, req, dist, total)
	if err != nil {
		g.logger.Warn("standardized generation failed, using fallback", zap.Error(err))
		return GenerateFallback(req.CandidateType, req.CandidateLevel, dist)
	}

	if len(set.Questions) != total {
		g.logger.Warn("generated question count mismatch, using fallback",
			zap.Int("want", total),
			zap.Int("got", len(set.Questions)))
		return GenerateFallback(req.CandidateType, req.CandidateLevel, dist)
	}
	if set.CategoryCounts() != dist {
		g.logger.Warn("generated distribution mismatch, using fallback")
		return GenerateFallback(req.CandidateType, req.CandidateLevel, dist)
	}

	set.TotalQuestions = total
	set.EstimatedDuration = req.Criteria.EstimatedDuration
	if set.EstimatedDuration <= 0 {
		set.EstimatedDuration = total * 2
	}
	return set
}

func (g *Generator) generateStandardizedLLM(ctx context.Context, req StandardizedRequest, dist types.QuestionDistribution, total int) (types.QuestionSet, error) {
	jobJSON, _ := json.MarshalIndent(req.JobAnalysis, "", "  ")

	criteriaLines := []string{
		fmt.Sprintf("- Screening: %d%% (%d questions)", req.Criteria.ScreeningPercentage, dist.Screening),
		fmt.Sprintf("- Domain/Technical: %d%% (%d questions)", req.Criteria.DomainPercentage, dist.Domain),
		fmt.Sprintf("- Behavioral/Attitude: %d%% (%d questions)", req.Criteria.BehavioralPercentage, dist.Behavioral),
		fmt.Sprintf("- Communication: %d%% (%d questions)", req.Criteria.CommunicationPercentage, dist.Communication),
	}

	requirements := []string{
		fmt.Sprintf("Generate exactly %d interview questions total", total),
	}
	n := 1
	for _, cat := range types.Categories() {
		if dist.Count(cat) == 0 {
			continue
		}
		requirements = append(requirements, fmt.Sprintf("%d. Generate exactly %d %s questions", n, dist.Count(cat), cat))
		n++
	}
	requirements = append(requirements,
		fmt.Sprintf("%d. Base questions on the role requirements only, not any individual candidate", n),
		fmt.Sprintf("%d. Ensure questions are appropriate for %s level candidates", n+1, req.CandidateLevel),
		fmt.Sprintf("%d. STRICTLY follow the question distribution - do not generate questions for categories with 0 allocation", n+2),
	)

	templateSection := ""
	if t := strings.TrimSpace(req.Criteria.QuestionTemplate); t != "" {
		templateSection = fmt.Sprintf("\n\nCUSTOM QUESTION TEMPLATE/INSTRUCTIONS for %s %s:\n%s", req.CandidateType, req.CandidateLevel, t)
		requirements = append(requirements, fmt.Sprintf("%d. IMPORTANT: Follow the custom question template/instructions provided", n+3))
	}

	duration := req.Criteria.EstimatedDuration
	if duration <= 0 {
		duration = total * 2
	}

	data := map[string]string{
		"Total":            fmt.Sprintf("%d", total),
		"Duration":         fmt.Sprintf("%d", duration),
		"CandidateType":    req.CandidateType,
		"CandidateLevel":   req.CandidateLevel,
		"JobAnalysis":      string(jobJSON),
		"CriteriaText":     strings.Join(criteriaLines, "\n"),
		"RequirementsText": strings.Join(requirements, "\n"),
		"TemplateSection":  templateSection,
	}

	messages := []llm.Message{
		{Role: "system", Content: prompts.Format(prompts.MustGet(promptFile, "standardized-system"), data)},
		{Role: "user", Content: prompts.Format(prompts.MustGet(promptFile, "standardized-generate"), data)},
	}

	response, err := g.client.Complete(ctx, messages, llm.Options{Tier: llm.TierStandard, Temperature: 0.3})
	if err != nil {
		return types.QuestionSet{}, err
	}
	if strings.TrimSpace(response) == "" {
		return types.QuestionSet{}, fmt.Errorf("empty response")
	}

	var set types.QuestionSet
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(response)), &set); err != nil {
		return types.QuestionSet{}, fmt.Errorf("question set does not decode: %w", err)
	}
	return set, nil
}
