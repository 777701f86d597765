// Package validation checks JSON documents against JSON Schema (draft 7)
// definitions using gojsonschema.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Summary joins every error into one line suitable for an error message.
func (r *ValidationResult) Summary() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

// Schema is a compiled schema that can be reused across documents.
type Schema struct {
	schema *gojsonschema.Schema
}

func Compile(schema map[string]interface{}) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Schema{schema: s}, nil
}

// ValidateJSON validates a raw JSON document. An error is returned only
// when the document cannot be parsed at all.
func (s *Schema) ValidateJSON(raw []byte) (*ValidationResult, error) {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("validate document: %w", err)
	}
	return toResult(result), nil
}

// ValidateDocument validates an already decoded Go value.
func (s *Schema) ValidateDocument(doc interface{}) (*ValidationResult, error) {
	result, err := s.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate document: %w", err)
	}
	return toResult(result), nil
}

// ValidateInput is a one-shot helper for callers that do not keep the
// compiled schema around.
func ValidateInput(input interface{}, schema map[string]interface{}) (*ValidationResult, error) {
	s, err := Compile(schema)
	if err != nil {
		return nil, err
	}
	return s.ValidateDocument(input)
}

// IsFormat reports whether value satisfies a JSON Schema string format such
// as "email" or "date-time", using the same checkers as schema validation.
func IsFormat(format, value string) bool {
	return gojsonschema.FormatCheckers.IsFormat(format, value)
}

func toResult(result *gojsonschema.Result) *ValidationResult {
	out := &ValidationResult{Valid: result.Valid()}
	for _, e := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   e.Field(),
			Message: e.Description(),
			Code:    strings.ToUpper(e.Type()),
		})
	}
	return out
}
