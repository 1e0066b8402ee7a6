package analysis

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/interview-screener/internal/llm"
	"github.com/jonathan/interview-screener/internal/prompts"
)

// maxNameLength caps stored candidate names.
const maxNameLength = 255

// resumeHeadLength is how much of the resume the extractor sends; names live
// at the top.
const resumeHeadLength = 1500

// NameExtractor pulls the candidate's name from resume text, falling back to
// the filename when the LLM result does not look like a name.
type NameExtractor struct {
	client llm.Client
	logger *zap.Logger
}

// NewNameExtractor returns a NameExtractor.
func NewNameExtractor(client llm.Client, logger *zap.Logger) *NameExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NameExtractor{client: client, logger: logger}
}

// Extract returns the candidate's full name.
func (e *NameExtractor) Extract(ctx context.Context, resumeText, filename string) string {
	head := resumeText
	if len(head) > resumeHeadLength {
		head = head[:resumeHeadLength]
	}

	data := map[string]string{
		"ResumeText": head,
		"Filename":   filename,
	}

	messages := []llm.Message{
		{Role: "system", Content: prompts.MustGet(promptFile, "name-system")},
		{Role: "user", Content: prompts.Format(prompts.MustGet(promptFile, "name-extract"), data)},
	}

	response, err := e.client.Complete(ctx, messages, llm.Options{Tier: llm.TierLite, Temperature: 0.1})
	if err != nil {
		e.logger.Warn("name extraction call failed, using filename", zap.Error(err))
		return NameFromFilename(filename)
	}

	name := strings.TrimSpace(response)
	name = strings.NewReplacer(`"`, "", "'", "").Replace(name)
	for _, prefix := range []string{"name:", "candidate:", "full name:", "the candidate is:", "the name is:"} {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			name = strings.TrimSpace(name[len(prefix):])
		}
	}
	name = titleCase(name)

	if !looksLikeName(name) {
		e.logger.Debug("extracted name looks invalid, using filename", zap.String("name", name))
		return NameFromFilename(filename)
	}
	return truncateName(name)
}

func looksLikeName(name string) bool {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return false
	}
	for _, part := range parts {
		cleaned := strings.ReplaceAll(part, "'", "")
		for _, r := range cleaned {
			if !isLetter(r) {
				return false
			}
		}
	}
	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

var filenameSplitRe = regexp.MustCompile(`[-_\s()\[\]{}]+`)
var nonAlphaRe = regexp.MustCompile(`[^a-zA-Z\s]`)

// NameFromFilename recovers a plausible name from a resume filename like
// "john_smith_resume_final.pdf".
func NameFromFilename(filename string) string {
	if filename == "" {
		return "Unknown Candidate"
	}

	base := filename
	if idx := strings.Index(base, "."); idx >= 0 {
		base = base[:idx]
	}

	noise := map[string]bool{
		"cv": true, "resume": true, "curriculum": true, "vitae": true,
		"updated": true, "new": true, "final": true, "latest": true,
	}

	var parts []string
	for _, part := range filenameSplitRe.Split(strings.ToLower(base), -1) {
		if len(part) > 1 && !noise[part] && isAlpha(part) {
			parts = append(parts, titleCase(part))
		}
	}

	switch {
	case len(parts) >= 2:
		return truncateName(strings.Join(parts[:2], " "))
	case len(parts) == 1:
		return truncateName(parts[0])
	}

	cleaned := strings.TrimSpace(nonAlphaRe.ReplaceAllString(base, " "))
	if cleaned == "" {
		return "Unknown Candidate"
	}
	return truncateName(titleCase(cleaned))
}

// titleCase uppercases the first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !isLetter(r) {
			return false
		}
	}
	return len(s) > 0
}

func truncateName(name string) string {
	if len(name) > maxNameLength {
		return name[:maxNameLength]
	}
	return name
}
