// Package scoring runs the interview rubric pass and the deterministic
// weighting that turns per-question rubric scores into normalized totals.
package scoring

import "errors"

// Rubric response failures are hard errors: repairing a scoring object risks
// silently fabricating scores, so the caller decides whether to retry or mark
// the interview unscorable.
var (
	ErrEmptyResponse          = errors.New("empty rubric response")
	ErrConversationalResponse = errors.New("rubric response is conversational text, not JSON")
	ErrMalformedResponse      = errors.New("rubric response is malformed JSON")
)
