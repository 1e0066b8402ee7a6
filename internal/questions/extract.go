package questions

// ExtractJSONArray scans text for the first bracket-balanced JSON array and
// returns it. Bracket counting is string-aware so brackets inside question text
// do not break the match. Returns false when no balanced array is found, which
// is the caller's cue to fall back to canned questions.
func ExtractJSONArray(s string) (string, bool) {
	start := -1
	depth := 0
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
			if start >= 0 {
				inString = !inString
			}
		case '[':
			if !inString {
				if start < 0 {
					start = i
				}
				depth++
			}
		case ']':
			if !inString && start >= 0 {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
