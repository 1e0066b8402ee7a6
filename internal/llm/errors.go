package llm

import "fmt"

// APICallError represents a transport or provider error from the LLM API.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LLM call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("LLM call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}
