package questions

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// questionArraySchema validates one tier's generated question array before it
// is admitted into a pool. Anything failing validation falls back to the
// canned bank rather than retrying the LLM.
const questionArraySchema = `{
	"type": "array",
	"minItems": 1,
	"items": {
		"type": "object",
		"required": ["question", "category"],
		"properties": {
			"id": {"type": "integer"},
			"category": {"type": "string", "enum": ["screening", "domain", "behavioral", "communication"]},
			"question": {"type": "string", "minLength": 1},
			"focus_area": {"type": "string"},
			"expected_depth": {"type": "string"},
			"difficulty": {"type": "string"}
		}
	}
}`

var questionArrayLoader = gojsonschema.NewStringLoader(questionArraySchema)

// ValidateQuestionArray checks that raw JSON is a well-formed question array.
func ValidateQuestionArray(raw string) error {
	result, err := gojsonschema.Validate(questionArrayLoader, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("question array invalid: %s", errs[0].String())
		}
		return fmt.Errorf("question array invalid")
	}
	return nil
}
