package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/interview-screener/internal/jsonrepair"
	"github.com/jonathan/interview-screener/internal/llm"
	applog "github.com/jonathan/interview-screener/internal/logger"
	"github.com/jonathan/interview-screener/internal/prompts"
	"github.com/jonathan/interview-screener/internal/types"
)

// FallbackFitAnalysis flags a resume for human review when automatic analysis
// cannot produce a usable result.
func FallbackFitAnalysis() types.FitAnalysis {
	return types.FitAnalysis{
		FitScore:         50,
		MatchingSkills:   []string{"Analysis failed"},
		MissingSkills:    []string{"Manual review required"},
		ExperienceScore:  50,
		Recommendation:   "MANUAL_REVIEW",
		DetailedFeedback: "Automatic analysis failed due to parsing error. Manual review recommended.",
	}
}

// ResumeAnalyzer classifies resumes and judges their fit against a job.
type ResumeAnalyzer struct {
	client llm.Client
	logger *zap.Logger
}

// NewResumeAnalyzer returns a ResumeAnalyzer.
func NewResumeAnalyzer(client llm.Client, logger *zap.Logger) *ResumeAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResumeAnalyzer{client: client, logger: logger}
}

// Classify buckets a resume by role category and seniority level. Decode
// failures yield the fallback classification rather than an error.
func (a *ResumeAnalyzer) Classify(ctx context.Context, resumeText string) types.ResumeClassification {
	data := map[string]string{"ResumeText": resumeText}

	messages := []llm.Message{
		{Role: "system", Content: prompts.MustGet(promptFile, "classify-system")},
		{Role: "user", Content: prompts.Format(prompts.MustGet(promptFile, "classify-resume"), data)},
	}

	response, err := a.client.Complete(ctx, messages, llm.Options{Tier: llm.TierLite, Temperature: 0.1})
	if err != nil {
		a.logger.Warn("classification call failed, using fallback", zap.Error(err))
		return types.FallbackClassification()
	}

	var result types.ResumeClassification
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(response)), &result); err != nil {
		a.logger.Warn("classification does not decode, using fallback", zap.Error(err))
		return types.FallbackClassification()
	}
	if result.Category == "" || result.Level == "" {
		return types.FallbackClassification()
	}
	return result
}

// AnalyzeFit judges a resume against the job requirements. A malformed
// response goes through the repair pipeline once; continued failure yields the
// manual-review fallback. Transport errors propagate so the batch layer can
// report them per item.
func (a *ResumeAnalyzer) AnalyzeFit(ctx context.Context, resumeText string, jobAnalysis types.JobAnalysis, jobDescription string, classification types.ResumeClassification) (types.FitAnalysis, error) {
	jobJSON, _ := json.MarshalIndent(jobAnalysis, "", "  ")

	data := map[string]string{
		"Category":       classification.Category,
		"Level":          classification.Level,
		"JobAnalysis":    string(jobJSON),
		"JobDescription": jobDescription,
		"ResumeText":     resumeText,
	}

	messages := []llm.Message{
		{Role: "system", Content: prompts.MustGet(promptFile, "fit-system")},
		{Role: "user", Content: prompts.Format(prompts.MustGet(promptFile, "fit-analyze"), data)},
	}

	response, err := a.client.Complete(ctx, messages, llm.Options{Tier: llm.TierStandard, Temperature: 0.2})
	if err != nil {
		return types.FitAnalysis{}, fmt.Errorf("fit analysis call failed: %w", err)
	}

	cleaned := llm.CleanJSONBlock(response)
	if strings.TrimSpace(cleaned) == "" {
		return types.FitAnalysis{}, fmt.Errorf("empty fit analysis response")
	}

	var result types.FitAnalysis
	if err := json.Unmarshal([]byte(cleaned), &result); err == nil {
		return result, nil
	}

	repaired := jsonrepair.Repair(cleaned)
	if err := json.Unmarshal([]byte(repaired), &result); err == nil {
		a.logger.Info("fit analysis parsed after repair")
		return result, nil
	}

	a.logger.Warn("fit analysis unparseable after repair, using fallback",
		zap.String("preview", applog.Truncate(cleaned, 200)))
	return FallbackFitAnalysis(), nil
}
