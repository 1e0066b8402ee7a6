package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-screener/internal/types"
)

func TestParse_GreetingAndSkip(t *testing.T) {
	p := NewParser(MarkerConfig{})

	pairs := p.Parse("AI: Hello, ready?\nUSER: \nAI: What is X?\nUSER: I don't know")

	require.Len(t, pairs, 2)
	assert.True(t, pairs[0].IsGreeting)
	assert.True(t, pairs[0].IsInitial)
	assert.False(t, pairs[1].IsGreeting)
	assert.True(t, p.Markers().IsSkipped(pairs[1].Answer))
}

func TestParse_FirstPairAlwaysInitial(t *testing.T) {
	p := NewParser(MarkerConfig{})

	// The first question reads like a follow-up but must still be initial.
	pairs := p.Parse("AI: Can you elaborate on your last role?\nUSER: Sure.\nAI: Can you elaborate further?\nUSER: Yes.")

	require.Len(t, pairs, 2)
	assert.True(t, pairs[0].IsInitial)
	assert.False(t, pairs[0].IsFollowup)
	assert.True(t, pairs[1].IsFollowup)
	assert.False(t, pairs[1].IsInitial)
}

func TestParse_UnansweredQuestionKeptAsEmptyPair(t *testing.T) {
	p := NewParser(MarkerConfig{})

	pairs := p.Parse("AI: First question?\nAI: Second question?\nUSER: An answer.")

	require.Len(t, pairs, 2)
	assert.Equal(t, "First question?", pairs[0].Question)
	assert.Empty(t, pairs[0].Answer)
	assert.Equal(t, "An answer.", pairs[1].Answer)
}

func TestParse_PrefixVariantsAndBareLines(t *testing.T) {
	p := NewParser(MarkerConfig{})

	text := "INTERVIEWER: Describe your stack?\nCANDIDATE: Mostly Go and Postgres.\nWe also run Redis.\nAGENT: Why Go?\nYOU: Concurrency."
	pairs := p.Parse(text)

	require.Len(t, pairs, 2)
	assert.Equal(t, "Mostly Go and Postgres.\nWe also run Redis.", pairs[0].Answer)
	assert.Equal(t, "Why Go?", pairs[1].Question)
	assert.Equal(t, "Concurrency.", pairs[1].Answer)
}

func TestParse_TrailingQuestionFlushedAtEOF(t *testing.T) {
	p := NewParser(MarkerConfig{})

	pairs := p.Parse("AI: Final question?")

	require.Len(t, pairs, 1)
	assert.Empty(t, pairs[0].Answer)
}

func TestParse_TextBeforeFirstQuestionIgnored(t *testing.T) {
	p := NewParser(MarkerConfig{})

	pairs := p.Parse("USER: Hello?\nSome stray line\nAI: Real question?\nUSER: Answer.")

	require.Len(t, pairs, 1)
	assert.Equal(t, "Real question?", pairs[0].Question)
}

func TestParse_Empty(t *testing.T) {
	p := NewParser(MarkerConfig{})

	assert.Empty(t, p.Parse(""))
	assert.Empty(t, p.Parse("\n\n  \n"))
}

func TestIsSkipped(t *testing.T) {
	m := DefaultMarkers()

	assert.True(t, m.IsSkipped(""))
	assert.True(t, m.IsSkipped("   "))
	assert.True(t, m.IsSkipped("Honestly, I don't know."))
	assert.True(t, m.IsSkipped("Not sure about that one"))
	assert.False(t, m.IsSkipped("A map is a hash table."))
}

func TestCustomMarkers(t *testing.T) {
	p := NewParser(MarkerConfig{
		GreetingMarkers: []string{"good evening"},
		FollowupMarkers: []string{"expand on that"},
		SkipMarkers:     []string{"next please"},
	})

	pairs := p.Parse("AI: Good evening!\nUSER: Hi.\nAI: Expand on that?\nUSER: next please")

	require.Len(t, pairs, 2)
	assert.True(t, pairs[0].IsGreeting)
	assert.True(t, pairs[1].IsFollowup)
	assert.True(t, p.Markers().IsSkipped(pairs[1].Answer))
}

func TestExtractDifficultyProgression(t *testing.T) {
	text := "AI: Hello\nAI: [Moving to medium level] Next question?\nUSER: ok\nAI: [Moving to hard level] Harder one?"

	got := ExtractDifficultyProgression(text)

	require.Len(t, got, 2)
	assert.Equal(t, types.DifficultyMedium, got[0].Difficulty)
	assert.Equal(t, 1, got[0].Position)
	assert.Equal(t, types.DifficultyHard, got[1].Difficulty)
	assert.Equal(t, 3, got[1].Position)
}

func TestExtractDifficultyProgression_None(t *testing.T) {
	assert.Empty(t, ExtractDifficultyProgression("AI: Question?\nUSER: Answer."))
}
