// Package transcript converts raw line-oriented interview transcripts into
// ordered question/answer pairs and tags them for scoring.
package transcript

import "strings"

// MarkerConfig holds the phrase lists used to classify questions and answers.
// Markers are plain data so deployments can tune them without code changes.
type MarkerConfig struct {
	GreetingMarkers []string
	FollowupMarkers []string
	SkipMarkers     []string
}

// DefaultMarkers returns the stock marker lists.
func DefaultMarkers() MarkerConfig {
	return MarkerConfig{
		GreetingMarkers: []string{
			"hello",
			"hi there",
			"welcome",
			"nice to meet you",
			"thank you for joining",
			"are you ready to begin",
			"ready to start",
			"let's get started",
			"how are you today",
		},
		FollowupMarkers: []string{
			"can you elaborate",
			"could you elaborate",
			"tell me more",
			"can you expand",
			"give an example",
			"give me an example",
			"could you clarify",
			"can you be more specific",
			"what do you mean",
			"anything else",
		},
		SkipMarkers: []string{
			"i don't know",
			"i dont know",
			"not sure",
			"no idea",
			"i can't answer",
			"skip this",
			"pass on this",
		},
	}
}

// matchesAny reports whether text contains any marker, case-insensitive.
func matchesAny(text string, markers []string) bool {
	lower := strings.ToLower(text)
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// IsGreeting reports whether a question is a greeting.
func (c MarkerConfig) IsGreeting(question string) bool {
	return matchesAny(question, c.GreetingMarkers)
}

// IsFollowup reports whether a question reads as a follow-up probe.
func (c MarkerConfig) IsFollowup(question string) bool {
	return matchesAny(question, c.FollowupMarkers)
}

// IsSkipped reports whether an answer amounts to skipping the question.
// Empty or whitespace-only answers always count as skipped.
func (c MarkerConfig) IsSkipped(answer string) bool {
	if strings.TrimSpace(answer) == "" {
		return true
	}
	return matchesAny(answer, c.SkipMarkers)
}
