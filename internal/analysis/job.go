// Package analysis runs the LLM passes that precede interview generation:
// job description extraction, resume classification, fit analysis, and
// candidate name extraction. Every pass degrades to a deterministic fallback
// rather than surfacing parse errors to the pipeline.
package analysis

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jonathan/interview-screener/internal/llm"
	"github.com/jonathan/interview-screener/internal/prompts"
	"github.com/jonathan/interview-screener/internal/types"
)

const promptFile = "analysis.json"

// JobAnalyzer extracts structured requirements from a job description.
type JobAnalyzer struct {
	client llm.Client
	logger *zap.Logger
}

// NewJobAnalyzer returns a JobAnalyzer.
func NewJobAnalyzer(client llm.Client, logger *zap.Logger) *JobAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobAnalyzer{client: client, logger: logger}
}

// Analyze extracts skills and requirements from a job description. Parse
// failures yield the fallback analysis, never an error: a job post must stay
// usable even when extraction misbehaves.
func (a *JobAnalyzer) Analyze(ctx context.Context, jobRole, requiredExperience, description string) types.JobAnalysis {
	data := map[string]string{
		"JobRole":            jobRole,
		"RequiredExperience": requiredExperience,
		"Description":        CleanDescription(description),
	}

	messages := []llm.Message{
		{Role: "system", Content: prompts.MustGet(promptFile, "job-system")},
		{Role: "user", Content: prompts.Format(prompts.MustGet(promptFile, "job-analyze"), data)},
	}

	response, err := a.client.Complete(ctx, messages, llm.Options{Tier: llm.TierStandard, Temperature: 0.2})
	if err != nil {
		a.logger.Warn("job analysis call failed, using fallback", zap.Error(err))
		return types.FallbackJobAnalysis(requiredExperience)
	}

	cleaned := llm.CleanJSONBlock(response)
	if strings.TrimSpace(cleaned) == "" {
		a.logger.Warn("empty job analysis response, using fallback")
		return types.FallbackJobAnalysis(requiredExperience)
	}

	var result types.JobAnalysis
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		a.logger.Warn("job analysis does not decode, using fallback", zap.Error(err))
		return types.FallbackJobAnalysis(requiredExperience)
	}
	return result
}

// CleanDescription strips HTML markup from a job description pasted from a
// careers page, returning plain text. Non-HTML input passes through unchanged.
func CleanDescription(description string) string {
	if !strings.Contains(description, "<") || !strings.Contains(description, ">") {
		return description
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return description
	}
	doc.Find("script, style").Remove()
	text := doc.Text()

	// Collapse the whitespace runs left behind by removed tags.
	lines := strings.Split(text, "\n")
	var kept []string
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	if len(kept) == 0 {
		return description
	}
	return strings.Join(kept, "\n")
}
