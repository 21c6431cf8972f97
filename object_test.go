package jsongen

import "testing"

func TestGenerateObjectRequired(t *testing.T) {
	schema := schemaFrom(t, `{
		"type": "object",
		"properties": {
			"id": {"type": "integer", "minimum": 1},
			"name": {"type": "string", "minLength": 1}
		},
		"required": ["id", "name"],
		"additionalProperties": false
	}`)
	gen := NewGeneratorWithSeed(21)
	result, err := gen.Generate(schema)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	obj, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", result)
	}
	for _, key := range []string{"id", "name"} {
		if _, ok := obj[key]; !ok {
			t.Errorf("missing required property %q", key)
		}
	}
}

func TestGenerateObjectMaxPropertiesWithAdditionalFalse(t *testing.T) {
	schema := schemaFrom(t, `{
		"type": "object",
		"properties": {
			"id": {"type": "string"},
			"extra": {"type": "string"}
		},
		"required": ["id"],
		"maxProperties": 1,
		"additionalProperties": false
	}`)
	gen := NewGeneratorWithSeed(4)
	result, err := gen.Generate(schema)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	obj, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", result)
	}
	if len(obj) != 1 {
		t.Fatalf("expected exactly 1 property, got %d (%v)", len(obj), obj)
	}
	if _, ok := obj["id"]; !ok {
		t.Errorf("required property %q missing", "id")
	}
}

func TestGenerateObjectPatternProperties(t *testing.T) {
	schema := schemaFrom(t, `{
		"type": "object",
		"patternProperties": {
			"^S_[a-z]{4}$": {"type": "string"}
		},
		"minProperties": 2,
		"maxProperties": 2,
		"additionalProperties": false
	}`)
	gen := NewGeneratorWithSeed(9)
	result, err := gen.Generate(schema)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	obj, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", result)
	}
	if len(obj) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(obj))
	}
}

func TestGenerateObjectAllOfMergesRequired(t *testing.T) {
	schema := schemaFrom(t, `{
		"allOf": [
			{
				"type": "object",
				"properties": {"a": {"type": "string"}},
				"required": ["a"]
			},
			{
				"type": "object",
				"properties": {"b": {"type": "integer"}},
				"required": ["b"]
			}
		]
	}`)
	gen := NewGeneratorWithSeed(17)
	result, err := gen.Generate(schema)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	obj, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", result)
	}
	if _, ok := obj["a"]; !ok {
		t.Errorf("missing merged required property %q", "a")
	}
	if _, ok := obj["b"]; !ok {
		t.Errorf("missing merged required property %q", "b")
	}
}
