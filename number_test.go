package jsongen

import "testing"

func TestGenerateNumber(t *testing.T) {
	tests := []struct {
		name   string
		schema string
	}{
		{"basic number", `{"type": "number"}`},
		{"minimum", `{"type": "number", "minimum": 10}`},
		{"maximum", `{"type": "number", "maximum": 10}`},
		{"min and max", `{"type": "number", "minimum": 5, "maximum": 10}`},
		{"exclusive minimum", `{"type": "number", "minimum": 5, "exclusiveMinimum": true, "maximum": 6}`},
		{"integer type", `{"type": "integer", "minimum": 1, "maximum": 100}`},
		{"multipleOf", `{"type": "number", "minimum": 0, "maximum": 1, "multipleOf": 0.25}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := schemaFrom(t, tt.schema)
			gen := NewGeneratorWithSeed(99)
			result, err := gen.Generate(schema)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			f, ok := asFloat(result)
			if !ok {
				t.Fatalf("expected numeric result, got %T", result)
			}

			if min, ok := asFloat(schema["minimum"]); ok && f < min {
				t.Errorf("value %v is less than minimum %v", f, min)
			}
			if max, ok := asFloat(schema["maximum"]); ok && f > max {
				t.Errorf("value %v is greater than maximum %v", f, max)
			}
			if schema["type"] == "integer" && f != float64(int64(f)) {
				t.Errorf("expected integer value, got %v", f)
			}
		})
	}
}

func TestGenerateNumberExactBound(t *testing.T) {
	schema := schemaFrom(t, `{"type": "integer", "minimum": 5, "maximum": 5}`)
	gen := NewGeneratorWithSeed(1)
	result, err := gen.Generate(schema)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	f, ok := asFloat(result)
	if !ok || f != 5 {
		t.Errorf("expected 5, got %v", result)
	}
}

func TestGenerateNumberMultipleOf(t *testing.T) {
	schema := schemaFrom(t, `{"type": "number", "minimum": 0, "maximum": 1, "multipleOf": 0.25}`)
	allowed := map[float64]bool{0: true, 0.25: true, 0.5: true, 0.75: true, 1.0: true}
	for i := 0; i < 50; i++ {
		gen := NewGeneratorWithSeed(int64(i))
		result, err := gen.Generate(schema)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		f, ok := asFloat(result)
		if !ok {
			t.Fatalf("expected numeric result, got %T", result)
		}
		if !allowed[roundTo(f, 2)] {
			t.Errorf("value %v is not a multiple of 0.25 within [0,1]", f)
		}
	}
}

func TestGenerateNumberBadMultipleOf(t *testing.T) {
	schema := schemaFrom(t, `{"type": "integer", "minimum": 1, "maximum": 2, "multipleOf": 10}`)
	gen := NewGeneratorWithSeed(1)
	if _, err := gen.Generate(schema); err == nil {
		t.Error("expected error when no multiple fits within bounds")
	}
}
