package actz

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSchemaError_Fields(t *testing.T) {
	schemaErr := &SchemaError{Issues: []Issue{
		{Path: "name", Message: "is required"},
		{Path: "items.0.price", Message: "must be a number"},
		{Path: "name", Message: "must be at least 2 characters"},
	}}

	want := FieldErrors{
		"name":          {"is required", "must be at least 2 characters"},
		"items.0.price": {"must be a number"},
	}
	if diff := cmp.Diff(want, schemaErr.Fields()); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaFunc_Parse(t *testing.T) {
	schema := SchemaFunc[int](func(v any) (int, error) {
		n, ok := v.(int)
		if !ok {
			return 0, &SchemaError{Issues: []Issue{{Path: "(root)", Message: "must be an integer"}}}
		}
		return n, nil
	})

	n, err := schema.Parse(42)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if n != 42 {
		t.Errorf("Expected 42, got %d", n)
	}

	_, err = schema.Parse("not a number")
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *SchemaError, got %v", err)
	}
}

func TestParseWith_StructuredFailure(t *testing.T) {
	schema := SchemaFunc[string](func(_ any) (string, error) {
		return "", &SchemaError{Issues: []Issue{{Path: "email", Message: "invalid"}}}
	})

	_, fields, err := parseWith[string](schema, "anything")
	if err != nil {
		t.Fatalf("Expected structured failure to be absorbed, got error %v", err)
	}
	if len(fields) != 1 || fields["email"][0] != "invalid" {
		t.Errorf("Expected email field error, got %v", fields)
	}
}

func TestParseWith_UnexpectedFailurePassesThrough(t *testing.T) {
	engineErr := errors.New("engine exploded")
	schema := SchemaFunc[string](func(_ any) (string, error) {
		return "", engineErr
	})

	_, fields, err := parseWith[string](schema, "anything")
	if fields != nil {
		t.Errorf("Expected no field errors, got %v", fields)
	}
	if !errors.Is(err, engineErr) {
		t.Errorf("Expected engine error to pass through unchanged, got %v", err)
	}
}

func TestJSONSchema_ParseValid(t *testing.T) {
	type person struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	schema := MustJSONSchema[person](`{
		"type": "object",
		"required": ["name", "age"],
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"age": {"type": "integer", "minimum": 1}
		}
	}`)

	parsed, err := schema.Parse(map[string]any{"name": "Ada", "age": 36})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if parsed.Name != "Ada" || parsed.Age != 36 {
		t.Errorf("Expected decoded person {Ada 36}, got %+v", parsed)
	}
}

func TestJSONSchema_ParseInvalid(t *testing.T) {
	type person struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	schema := MustJSONSchema[person](`{
		"type": "object",
		"required": ["name", "age"],
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"age": {"type": "integer", "minimum": 1}
		}
	}`)

	_, err := schema.Parse(map[string]any{"name": "", "age": -1})

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *SchemaError, got %v", err)
	}
	fields := schemaErr.Fields()
	if len(fields["name"]) == 0 {
		t.Errorf("Expected messages for 'name', got %v", fields)
	}
	if len(fields["age"]) == 0 {
		t.Errorf("Expected messages for 'age', got %v", fields)
	}
}

func TestNewJSONSchema_CompileError(t *testing.T) {
	if _, err := NewJSONSchema[map[string]any](`{"type": "object"`); err == nil {
		t.Error("Expected compile error for malformed schema document")
	}
}

func TestMustJSONSchema_PanicsOnCompileError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for malformed schema document")
		}
	}()
	MustJSONSchema[map[string]any](`{"type": "object"`)
}
