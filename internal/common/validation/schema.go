package validation

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed record.schema.json
var recordSchemaJSON []byte

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Validator checks documents against one compiled JSON schema.
type Validator struct {
	schema *gojsonschema.Schema
}

// NewValidator compiles schemaJSON.
func NewValidator(schemaJSON []byte) (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// NewRecordValidator returns a validator for knowledge records.
func NewRecordValidator() *Validator {
	v, err := NewValidator(recordSchemaJSON)
	if err != nil {
		// the embedded schema is part of the binary
		panic(err)
	}
	return v
}

// ValidateBytes validates a raw JSON document.
func (v *Validator) ValidateBytes(doc []byte) (*ValidationResult, error) {
	return v.validate(gojsonschema.NewBytesLoader(doc))
}

// ValidateGo validates an already decoded document.
func (v *Validator) ValidateGo(doc interface{}) (*ValidationResult, error) {
	return v.validate(gojsonschema.NewGoLoader(doc))
}

func (v *Validator) validate(loader gojsonschema.JSONLoader) (*ValidationResult, error) {
	result, err := v.schema.Validate(loader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    desc.Type(),
		})
	}
	return out, nil
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") {
			return true
		}
	}
	return false
}

// String joins all messages, or returns "valid".
func (vr *ValidationResult) String() string {
	if vr.Valid {
		return "valid"
	}
	return strings.Join(vr.GetErrorMessages(), "; ")
}
