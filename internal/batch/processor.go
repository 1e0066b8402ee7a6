// Package batch screens uploaded resumes concurrently against one job.
package batch

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/jonathan/interview-screener/internal/analysis"
	"github.com/jonathan/interview-screener/internal/types"
)

// DefaultBatchSize caps how many resumes one upload may carry.
const DefaultBatchSize = 50

// Resume is one uploaded resume ready for screening.
type Resume struct {
	ID       uuid.UUID
	Filename string
	Text     string
}

// Processor fans a batch of resumes out over the analysis pipeline with
// bounded concurrency. One resume's failure never aborts its siblings; failed
// items carry fallback values and a populated Error field.
type Processor struct {
	resumes *analysis.ResumeAnalyzer
	names   *analysis.NameExtractor
	gate    *semaphore.Weighted
	logger  *zap.Logger
}

// NewProcessor returns a Processor running at most maxConcurrent resumes at
// once.
func NewProcessor(resumes *analysis.ResumeAnalyzer, names *analysis.NameExtractor, maxConcurrent int64, logger *zap.Logger) *Processor {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		resumes: resumes,
		names:   names,
		gate:    semaphore.NewWeighted(maxConcurrent),
		logger:  logger,
	}
}

// ProcessBatch screens every resume and returns one result per input, in input
// order. The returned count of failed items is the number of results whose
// Error field is set.
func (p *Processor) ProcessBatch(ctx context.Context, resumes []Resume, jobAnalysis types.JobAnalysis, jobDescription string) ([]types.ResumeAnalysisResult, int) {
	results := make([]types.ResumeAnalysisResult, len(resumes))

	var wg sync.WaitGroup
	for i, r := range resumes {
		if err := p.gate.Acquire(ctx, 1); err != nil {
			results[i] = p.failedResult(r, err.Error())
			continue
		}
		wg.Add(1)
		go func(i int, r Resume) {
			defer wg.Done()
			defer p.gate.Release(1)
			results[i] = p.processOne(ctx, r, jobAnalysis, jobDescription)
		}(i, r)
	}
	wg.Wait()

	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
	}
	p.logger.Info("batch completed",
		zap.Int("total", len(results)),
		zap.Int("failed", failed))
	return results, failed
}

func (p *Processor) processOne(ctx context.Context, r Resume, jobAnalysis types.JobAnalysis, jobDescription string) types.ResumeAnalysisResult {
	name := p.names.Extract(ctx, r.Text, r.Filename)
	classification := p.resumes.Classify(ctx, r.Text)

	fit, err := p.resumes.AnalyzeFit(ctx, r.Text, jobAnalysis, jobDescription, classification)
	if err != nil {
		p.logger.Error("resume processing failed",
			zap.String("resume_id", r.ID.String()),
			zap.String("filename", r.Filename),
			zap.Error(err))
		result := p.failedResult(r, err.Error())
		result.CandidateName = name
		return result
	}

	p.logger.Info("resume processed",
		zap.String("candidate", name),
		zap.String("category", classification.Category),
		zap.String("level", classification.Level),
		zap.Float64("fit_score", fit.FitScore))

	return types.ResumeAnalysisResult{
		ResumeID:       r.ID,
		Filename:       r.Filename,
		CandidateName:  name,
		Classification: classification,
		Fit:            fit,
	}
}

func (p *Processor) failedResult(r Resume, reason string) types.ResumeAnalysisResult {
	return types.ResumeAnalysisResult{
		ResumeID:       r.ID,
		Filename:       r.Filename,
		CandidateName:  analysis.NameFromFilename(r.Filename),
		Classification: types.FallbackClassification(),
		Fit:            analysis.FallbackFitAnalysis(),
		Error:          reason,
	}
}
