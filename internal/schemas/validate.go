// Package schemas provides JSON Schema validation for model-produced event
// records. The schema is embedded at compile time and compiled once.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed event.schema.json
var eventSchemaJSON string

var (
	eventSchema     *gojsonschema.Schema
	eventSchemaErr  error
	eventSchemaOnce sync.Once
)

// ValidationError represents a schema validation failure with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateEvent checks one raw JSON element against the embedded event
// schema. A nil return means the element carries all four required keys
// with the expected types.
func ValidateEvent(raw json.RawMessage) error {
	schema, err := loadEventSchema()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("failed to validate event: %w", err)
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, desc := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return ve
}

// loadEventSchema compiles the embedded schema exactly once.
func loadEventSchema() (*gojsonschema.Schema, error) {
	eventSchemaOnce.Do(func() {
		loader := gojsonschema.NewStringLoader(eventSchemaJSON)
		schema, err := gojsonschema.NewSchema(loader)
		if err != nil {
			eventSchemaErr = fmt.Errorf("failed to compile event schema: %w", err)
			return
		}
		eventSchema = schema
	})
	return eventSchema, eventSchemaErr
}
