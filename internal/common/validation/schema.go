// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Request schemas for the public API. Kept as raw JSON Schema documents so
// they stay readable next to the wire format they describe.
const (
	GoalStartSchema = `{
		"type": "object",
		"required": ["country", "type"],
		"properties": {
			"country": {"type": "string", "minLength": 1},
			"type": {
				"type": "string",
				"enum": ["Visa", "Residency", "Work Permit", "Tax ID", "Health Insurance", "Citizenship", "Asylum Application"]
			}
		},
		"additionalProperties": false
	}`

	GoalAnswersSchema = `{
		"type": "object",
		"properties": {
			"answers": {
				"type": "object",
				"additionalProperties": {"type": "string"}
			}
		},
		"additionalProperties": false
	}`

	CitizenshipSchema = `{
		"type": "object",
		"required": ["country"],
		"properties": {
			"country": {"type": "string", "minLength": 1},
			"code": {"type": "string"}
		},
		"additionalProperties": false
	}`

	DocumentToggleSchema = `{
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string", "minLength": 1}
		},
		"additionalProperties": false
	}`
)

// ValidateJSON checks a raw JSON document against a JSON Schema source and
// returns one error summarizing every violation.
func ValidateJSON(schemaSource string, document []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaSource)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("request validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}
