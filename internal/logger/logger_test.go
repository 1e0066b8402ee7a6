package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc...", Truncate("abcdefgh", 3))
	assert.Equal(t, "", Truncate("anything", 0))
	assert.Equal(t, "trimmed", Truncate("  trimmed  ", 20))

	got := Truncate(strings.Repeat("x", 500), 120)
	assert.Len(t, got, 123)
	assert.True(t, strings.HasSuffix(got, "..."))
}
