package actz

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Issue is a single structured validation failure: the dot-joined path of the
// offending field and the message the schema engine produced for it.
type Issue struct {
	Path    string
	Message string
}

// SchemaError is the structured failure shape of the Schema contract. A schema
// engine signals "the value is invalid" by returning a *SchemaError carrying
// every violation it found, in the order it found them. Any other error
// returned from Parse is treated as an internal engine failure and is passed
// through to the action's top-level error boundary unchanged.
type SchemaError struct {
	Issues []Issue
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("schema validation failed: %s: %s", e.Issues[0].Path, e.Issues[0].Message)
	}
	return fmt.Sprintf("schema validation failed: %d issues", len(e.Issues))
}

// Fields folds the ordered issue list into a FieldErrors map. Issues sharing a
// path keep their reported order within that path's message list.
func (e *SchemaError) Fields() FieldErrors {
	fields := make(FieldErrors, len(e.Issues))
	for _, issue := range e.Issues {
		fields[issue.Path] = append(fields[issue.Path], issue.Message)
	}
	return fields
}

// Schema is the external validation contract the pipeline consumes. Parse
// either returns the typed, parsed value or an error. Structured validation
// failures must be reported as *SchemaError; anything else is treated as an
// unexpected engine failure and propagates to the action's error boundary
// rather than being shaped into field errors.
//
// The core never implements validation itself. JSONSchema provides a real
// engine adapter, and SchemaFunc adapts any function for tests and custom
// engines.
type Schema[T any] interface {
	Parse(value any) (T, error)
}

// SchemaFunc adapts a plain function to the Schema interface.
//
//	ageSchema := actz.SchemaFunc[int](func(v any) (int, error) {
//	    n, ok := v.(int)
//	    if !ok || n < 0 {
//	        return 0, &actz.SchemaError{Issues: []actz.Issue{{Path: "age", Message: "must be a non-negative integer"}}}
//	    }
//	    return n, nil
//	})
type SchemaFunc[T any] func(value any) (T, error)

// Parse implements the Schema interface.
func (f SchemaFunc[T]) Parse(value any) (T, error) {
	return f(value)
}

// JSONSchema validates values against a compiled JSON Schema document and
// decodes passing values into T. It adapts github.com/xeipuuv/gojsonschema to
// the Schema contract: the engine's ResultError list becomes a *SchemaError
// with one Issue per violation, using the engine's dot-joined field paths
// verbatim (nested fields joined by ".", array indices as numeric segments).
type JSONSchema[T any] struct {
	schema *gojsonschema.Schema
}

// NewJSONSchema compiles a JSON Schema document. Compilation happens once;
// the returned schema is safe for concurrent use.
func NewJSONSchema[T any](document string) (*JSONSchema[T], error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(document))
	if err != nil {
		return nil, fmt.Errorf("compile json schema: %w", err)
	}
	return &JSONSchema[T]{schema: compiled}, nil
}

// MustJSONSchema is like NewJSONSchema but panics on a compile error.
// Intended for package-level schema declarations.
func MustJSONSchema[T any](document string) *JSONSchema[T] {
	schema, err := NewJSONSchema[T](document)
	if err != nil {
		panic(err)
	}
	return schema
}

// Parse implements the Schema interface. The value is serialized to JSON,
// validated against the compiled schema, and on success decoded into T.
func (s *JSONSchema[T]) Parse(value any) (T, error) {
	var zero T

	raw, err := json.Marshal(value)
	if err != nil {
		return zero, fmt.Errorf("encode value for validation: %w", err)
	}

	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		// Engine-internal failure, not a structured validation result.
		return zero, err
	}

	if !result.Valid() {
		issues := make([]Issue, 0, len(result.Errors()))
		for _, re := range result.Errors() {
			issues = append(issues, Issue{Path: re.Field(), Message: re.Description()})
		}
		return zero, &SchemaError{Issues: issues}
	}

	var parsed T
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return zero, fmt.Errorf("decode validated value: %w", err)
	}
	return parsed, nil
}

// parseWith runs a value through a schema and splits the outcome three ways:
// a parsed value, a FieldErrors map for structured failures, or an unexpected
// engine error for the caller's error boundary. Exactly one of the three is
// meaningful.
func parseWith[T any](schema Schema[T], value any) (T, FieldErrors, error) {
	parsed, err := schema.Parse(value)
	if err != nil {
		var zero T
		var schemaErr *SchemaError
		if errors.As(err, &schemaErr) {
			return zero, schemaErr.Fields(), nil
		}
		return zero, nil, err
	}
	return parsed, nil, nil
}
