// Package jsonrepair applies best-effort repairs to malformed JSON text
// returned by an LLM. The output is not guaranteed to parse; callers must
// re-attempt decoding and fall back on continued failure.
//
// Repairs run as an ordered pipeline of independent steps so each heuristic
// can be tested in isolation. This is reserved for simple objects (resume fit
// analysis, question arrays); the interview rubric response is never repaired,
// since fabricating scores silently is worse than failing loudly.
package jsonrepair

import (
	"regexp"
	"strings"
)

// Step is one named repair heuristic.
type Step struct {
	Name  string
	Apply func(string) string
}

// Pipeline returns the default repair steps in application order.
func Pipeline() []Step {
	return []Step{
		{Name: "strip_fences", Apply: StripFences},
		{Name: "trim_brace_span", Apply: TrimToBraceSpan},
		{Name: "remove_trailing_commas", Apply: RemoveTrailingCommas},
		{Name: "balance_closers", Apply: BalanceClosers},
		{Name: "close_truncated_string", Apply: CloseTruncatedString},
		{Name: "insert_missing_commas", Apply: InsertMissingCommas},
	}
}

// Repair runs the full pipeline over raw text.
func Repair(raw string) string {
	out := raw
	for _, step := range Pipeline() {
		out = step.Apply(out)
	}
	return out
}

// StripFences removes markdown code fences around the payload.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	lines := strings.Split(s, "\n")
	start := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			start = i
			break
		}
	}
	end := len(lines) - 1
	for i := len(lines) - 1; i >= 0; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if strings.HasSuffix(trimmed, "}") || strings.HasSuffix(trimmed, "]") {
			end = i
			break
		}
	}
	if start > end {
		return s
	}
	return strings.Join(lines[start:end+1], "\n")
}

// TrimToBraceSpan trims the text to the widest span between the first opening
// brace and the point where nesting returns to zero, dropping conversational
// text before and after the object. Text without a leading brace is returned
// unchanged.
func TrimToBraceSpan(s string) string {
	first := strings.IndexByte(s, '{')
	last := strings.LastIndexByte(s, '}')
	if first < 0 || last < first {
		return s
	}
	s = s[first : last+1]

	// Cut anything after the position where the top-level object closes.
	depth := 0
	lastValid := -1
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					lastValid = i
				}
			}
		}
	}
	if lastValid > 0 && lastValid < len(s)-1 {
		s = s[:lastValid+1]
	}
	return s
}

var trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)

// RemoveTrailingCommas drops commas immediately preceding a closing brace or
// bracket.
func RemoveTrailingCommas(s string) string {
	return trailingCommaRe.ReplaceAllString(s, "$1")
}

// CloseTruncatedString appends a closing quote when the text ends inside an
// open string, typically because the response was cut off mid-value.
func CloseTruncatedString(s string) string {
	if countUnescapedQuotes(s)%2 == 0 {
		return s
	}
	// Insert the quote after the last content character, before any trailing
	// closers or whitespace.
	i := len(s) - 1
	for i >= 0 {
		switch s[i] {
		case '}', ']', ' ', '\t', '\n', '\r':
			i--
			continue
		}
		break
	}
	return s[:i+1] + `"` + s[i+1:]
}

// BalanceClosers appends closing braces/brackets for any that were opened but
// never closed. Counting is string-aware so braces inside values are ignored.
func BalanceClosers(s string) string {
	var openBraces, openBrackets int
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				openBraces++
			}
		case '}':
			if !inString {
				openBraces--
			}
		case '[':
			if !inString {
				openBrackets++
			}
		case ']':
			if !inString {
				openBrackets--
			}
		}
	}
	for openBrackets > 0 {
		s += "]"
		openBrackets--
	}
	for openBraces > 0 {
		s += "}"
		openBraces--
	}
	return s
}

var (
	adjacentPairRe = regexp.MustCompile(`"\s*"([a-zA-Z_][a-zA-Z0-9_]*)"\s*:`)
	afterObjectRe  = regexp.MustCompile(`}(\s*)"([^"]+)"\s*:`)
	afterArrayRe   = regexp.MustCompile(`](\s*)"([^"]+)"\s*:`)
)

// InsertMissingCommas adds commas between adjacent key/value pairs and after
// objects or arrays immediately followed by another key.
func InsertMissingCommas(s string) string {
	s = adjacentPairRe.ReplaceAllString(s, `", "$1":`)
	s = afterObjectRe.ReplaceAllString(s, `},$1"$2":`)
	s = afterArrayRe.ReplaceAllString(s, `],$1"$2":`)
	return s
}

func countUnescapedQuotes(s string) int {
	count := 0
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == '"' {
			count++
		}
	}
	return count
}
