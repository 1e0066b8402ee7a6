package transcript

import (
	"regexp"
	"strings"

	"github.com/jonathan/interview-screener/internal/types"
)

var questionPrefixes = []string{"AI:", "AGENT:", "INTERVIEWER:"}
var answerPrefixes = []string{"USER:", "CANDIDATE:", "YOU:"}

// Parser turns transcript text into classified QAPairs.
type Parser struct {
	markers MarkerConfig
}

// NewParser returns a parser using the given markers. Zero-value markers fall
// back to the defaults.
func NewParser(markers MarkerConfig) *Parser {
	if len(markers.GreetingMarkers) == 0 && len(markers.FollowupMarkers) == 0 && len(markers.SkipMarkers) == 0 {
		markers = DefaultMarkers()
	}
	return &Parser{markers: markers}
}

// Markers exposes the parser's marker configuration for answer-side checks.
func (p *Parser) Markers() MarkerConfig {
	return p.markers
}

// Parse walks the transcript line by line. An interviewer-prefixed line opens
// a new question; answer-prefixed and bare lines accumulate into the pending
// answer. Every question line yields exactly one pair, so unanswered questions
// survive as empty-answer pairs. The first pair is always initial and never a
// follow-up, whatever its text says.
func (p *Parser) Parse(text string) []types.QAPair {
	var pairs []types.QAPair
	var question string
	var answerLines []string
	open := false

	flush := func() {
		if !open {
			return
		}
		pairs = append(pairs, p.classify(question, strings.Join(answerLines, "\n"), len(pairs)))
		question = ""
		answerLines = nil
		open = false
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if rest, ok := stripPrefix(trimmed, questionPrefixes); ok {
			flush()
			question = rest
			open = true
			continue
		}
		if !open {
			// Answer text before any question has nothing to attach to.
			continue
		}
		if rest, ok := stripPrefix(trimmed, answerPrefixes); ok {
			if rest != "" {
				answerLines = append(answerLines, rest)
			}
			continue
		}
		answerLines = append(answerLines, trimmed)
	}
	flush()

	return pairs
}

func (p *Parser) classify(question, answer string, index int) types.QAPair {
	pair := types.QAPair{
		Question:   question,
		Answer:     answer,
		IsGreeting: p.markers.IsGreeting(question),
	}
	if index == 0 {
		pair.IsInitial = true
	} else {
		pair.IsFollowup = p.markers.IsFollowup(question)
	}
	return pair
}

func stripPrefix(line string, prefixes []string) (string, bool) {
	upper := strings.ToUpper(line)
	for _, prefix := range prefixes {
		if strings.HasPrefix(upper, prefix) {
			return strings.TrimSpace(line[len(prefix):]), true
		}
	}
	return "", false
}

var progressionRe = regexp.MustCompile(`(?i)\[moving to (easy|medium|hard|very[ _]hard) level\]`)

// ExtractDifficultyProgression scans for conductor annotations marking a
// difficulty change. Best-effort telemetry: missing or malformed annotations
// simply yield fewer transitions.
func ExtractDifficultyProgression(text string) []types.DifficultyTransition {
	var transitions []types.DifficultyTransition
	for i, line := range strings.Split(text, "\n") {
		m := progressionRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		tier := strings.ToLower(strings.ReplaceAll(m[1], " ", "_"))
		transitions = append(transitions, types.DifficultyTransition{
			Difficulty: types.Difficulty(tier),
			Position:   i,
		})
	}
	return transitions
}
