package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/interview-screener/internal/llm"
	applog "github.com/jonathan/interview-screener/internal/logger"
	"github.com/jonathan/interview-screener/internal/prompts"
	"github.com/jonathan/interview-screener/internal/transcript"
	"github.com/jonathan/interview-screener/internal/types"
)

const (
	promptFile = "scoring.json"

	// maxRubricScore is the ceiling of the per-question rubric.
	maxRubricScore = 5.0

	// minimalTranscriptLength marks an interview as terminated early.
	minimalTranscriptLength = 200

	// expectedScorableQuestions is the floor below which abandoned-interview
	// compensation kicks in.
	expectedScorableQuestions = types.DefaultQuestionCount
)

// Scorer produces the full analysis record for one interview transcript.
type Scorer struct {
	client llm.Client
	parser *transcript.Parser
	logger *zap.Logger
}

// NewScorer returns a Scorer. A zero MarkerConfig selects the default markers.
func NewScorer(client llm.Client, markers transcript.MarkerConfig, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{
		client: client,
		parser: transcript.NewParser(markers),
		logger: logger,
	}
}

// Score runs the rubric LLM pass over the transcript, applies deterministic
// difficulty weighting, and backfills narrative fields so the record is always
// fully populated. known carries the originally generated questions and is
// the source of per-question difficulty; pass nil when unavailable.
func (s *Scorer) Score(ctx context.Context, transcriptText, candidateName, jobRole string, known []types.GeneratedQuestion) (*types.InterviewAnalysis, error) {
	pairs := s.parser.Parse(transcriptText)

	rubric, err := s.rubricPass(ctx, transcriptText, candidateName, jobRole, pairs)
	if err != nil {
		return nil, err
	}

	analysis := s.weigh(rubric, pairs, known)
	backfill(analysis, rubric, jobRole)
	analysis.DifficultyProgression = transcript.ExtractDifficultyProgression(transcriptText)

	s.logger.Info("interview scored",
		zap.String("candidate", candidateName),
		zap.Int("questions", len(analysis.ScoredQuestions)),
		zap.Int("overall_score", analysis.Scores.OverallScore))

	return analysis, nil
}

// rubricPass sends the transcript and explicit Q/A pairs to the LLM and
// decodes the rubric response. Decode failures are hard errors classified by
// shape; no repair is attempted at this aggregate-object level.
func (s *Scorer) rubricPass(ctx context.Context, transcriptText, candidateName, jobRole string, pairs []types.QAPair) (*types.RubricResponse, error) {
	var qaLines []string
	for i, p := range pairs {
		answer := p.Answer
		if strings.TrimSpace(answer) == "" {
			answer = "(no answer)"
		}
		qaLines = append(qaLines, fmt.Sprintf("Q%d: %s\nA%d: %s", i+1, p.Question, i+1, answer))
	}

	userKey := "rubric-user"
	if len(strings.TrimSpace(transcriptText)) < minimalTranscriptLength ||
		strings.Contains(transcriptText, "Interview ended before substantial conversation") {
		userKey = "rubric-user-minimal"
	}

	data := map[string]string{
		"CandidateName": candidateName,
		"JobRole":       jobRole,
		"QAPairs":       strings.Join(qaLines, "\n\n"),
		"Transcript":    transcriptText,
	}

	messages := []llm.Message{
		{Role: "system", Content: prompts.MustGet(promptFile, "rubric-system")},
		{Role: "user", Content: prompts.Format(prompts.MustGet(promptFile, userKey), data)},
	}

	response, err := s.client.Complete(ctx, messages, llm.Options{Tier: llm.TierAdvanced, Temperature: 0.1})
	if err != nil {
		return nil, fmt.Errorf("rubric call failed: %w", err)
	}

	cleaned := llm.CleanJSONBlock(response)
	if strings.TrimSpace(cleaned) == "" {
		return nil, ErrEmptyResponse
	}

	var rubric types.RubricResponse
	if err := json.Unmarshal([]byte(cleaned), &rubric); err != nil {
		trimmed := strings.TrimSpace(cleaned)
		if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
			return nil, fmt.Errorf("%w: %s", ErrConversationalResponse, applog.Truncate(trimmed, 120))
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &rubric, nil
}

// weigh applies the deterministic weighting pass: difficulty lookup, greeting
// exclusion, follow-up replacement, skip zeroing, abandoned-interview
// compensation, and normalization. No LLM calls.
func (s *Scorer) weigh(rubric *types.RubricResponse, pairs []types.QAPair, known []types.GeneratedQuestion) *types.InterviewAnalysis {
	markers := s.parser.Markers()

	var scored []types.ScoredQuestion
	lastMainIndex := -1
	followupUsed := false

	for i, rq := range rubric.QuestionScores.Questions {
		isGreeting := markers.IsGreeting(rq.Question)
		isFollowup := i > 0 && markers.IsFollowup(rq.Question)

		difficulty := lookupDifficulty(rq.Question, known)
		isDomain := rq.IsDomainQuestion
		if isFollowup && lastMainIndex >= 0 {
			// Follow-ups probe the same topic, so they inherit the main
			// question's difficulty and domain flag.
			difficulty = scored[lastMainIndex].Difficulty
			isDomain = isDomain || scored[lastMainIndex].IsDomainQuestion
		}

		// The parsed pair's answer is authoritative for the skip test; the
		// rubric echo is only a fallback and an absent echo is not a skip.
		score := clamp(rq.Score, 0, maxRubricScore)
		if answer, ok := findPairAnswer(rq.Question, pairs); ok {
			if markers.IsSkipped(answer) {
				score = 0
			}
		} else if strings.TrimSpace(rq.Answer) != "" && markers.IsSkipped(rq.Answer) {
			score = 0
		}

		mult := difficulty.Multiplier()
		sq := types.ScoredQuestion{
			Question:         rq.Question,
			Score:            score,
			Rationale:        rq.Rationale,
			Difficulty:       difficulty,
			Multiplier:       mult,
			WeightedScore:    score * mult,
			MaxScore:         maxRubricScore * mult,
			IsDomainQuestion: isDomain,
			IsFollowup:       isFollowup,
		}

		switch {
		case isGreeting:
			sq.Excluded = true
			sq.ExclusionReason = "greeting"
		case isFollowup:
			if lastMainIndex >= 0 && !followupUsed {
				scored[lastMainIndex].Excluded = true
				scored[lastMainIndex].ExclusionReason = "score replaced by follow-up"
				followupUsed = true
			} else {
				// Only one follow-up per main question is honored; later
				// consecutive follow-ups are dropped as duplicates.
				sq.Excluded = true
				sq.ExclusionReason = "duplicate follow-up"
			}
		default:
			lastMainIndex = len(scored)
			followupUsed = false
		}

		scored = append(scored, sq)
	}

	// Abandoned-interview compensation: pad the denominator for every missing
	// scorable slot so an early exit cannot inflate the normalized score.
	scorable := 0
	for _, sq := range scored {
		if !sq.Excluded {
			scorable++
		}
	}
	for i := scorable; i < expectedScorableQuestions; i++ {
		mult := types.DifficultyMedium.Multiplier()
		scored = append(scored, types.ScoredQuestion{
			Question:         "(not asked - interview ended early)",
			Difficulty:       types.DifficultyMedium,
			Multiplier:       mult,
			MaxScore:         maxRubricScore * mult,
			IsDomainQuestion: true,
			Synthetic:        true,
		})
	}

	var agg types.ScoreAggregate
	for _, sq := range scored {
		if sq.Excluded {
			continue
		}
		agg.MaxScore += sq.MaxScore
		if sq.IsDomainQuestion {
			agg.MaxDomainScore += sq.MaxScore
		}
		if sq.Synthetic {
			continue
		}
		agg.RawScore += sq.WeightedScore
		if sq.IsDomainQuestion {
			agg.RawDomainScore += sq.WeightedScore
		}
	}

	agg.NormalizedScore = normalize(agg.RawScore, agg.MaxScore)
	agg.NormalizedDomainScore = normalize(agg.RawDomainScore, agg.MaxDomainScore)
	agg.CommunicationScore = clamp(rubric.CommunicationScore, 0, 100)
	agg.OverallScore = int(math.Round(0.8*agg.NormalizedDomainScore + 0.2*agg.CommunicationScore))

	return &types.InterviewAnalysis{
		Scores:          agg,
		ScoredQuestions: scored,
	}
}

// findPairAnswer locates the parsed pair whose question fuzzy-matches the
// rubric question and returns its answer.
func findPairAnswer(question string, pairs []types.QAPair) (string, bool) {
	norm := normalizeText(question)
	if norm == "" {
		return "", false
	}
	for _, p := range pairs {
		pn := normalizeText(p.Question)
		if pn == "" {
			continue
		}
		if strings.Contains(norm, pn) || strings.Contains(pn, norm) {
			return p.Answer, true
		}
	}
	return "", false
}

// lookupDifficulty fuzzy-matches a rubric question against the known question
// set. Unmatched questions score as medium.
func lookupDifficulty(question string, known []types.GeneratedQuestion) types.Difficulty {
	norm := normalizeText(question)
	if norm == "" {
		return types.DifficultyMedium
	}
	for _, k := range known {
		kn := normalizeText(k.Question)
		if kn == "" {
			continue
		}
		if strings.Contains(norm, kn) || strings.Contains(kn, norm) {
			if k.Difficulty == "" {
				return types.DifficultyMedium
			}
			return k.Difficulty.PoolTier()
		}
	}
	return types.DifficultyMedium
}

func normalizeText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Trim(s, "?.! ")
}

func normalize(raw, max float64) float64 {
	if max == 0 {
		return 0
	}
	return clamp(raw/max*100, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
