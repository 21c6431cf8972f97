package jsongen

import "testing"

func TestMergeUnionsRequiredAndProperties(t *testing.T) {
	a := Node{
		"type":     "object",
		"required": []any{"a"},
		"properties": Node{
			"a": Node{"type": "string"},
		},
	}
	b := Node{
		"required": []any{"b"},
		"properties": Node{
			"b": Node{"type": "integer"},
		},
	}

	merged, err := merge(a, b)
	if err != nil {
		t.Fatalf("merge() error = %v", err)
	}

	required := asStringList(merged["required"])
	if len(required) != 2 {
		t.Fatalf("expected 2 required entries, got %v", required)
	}

	props, ok := asMap(merged["properties"])
	if !ok || len(props) != 2 {
		t.Fatalf("expected 2 merged properties, got %v", merged["properties"])
	}
}

func TestMergeTightensMinMax(t *testing.T) {
	a := Node{"minimum": 5.0, "maximum": 20.0}
	b := Node{"minimum": 10.0, "maximum": 15.0}

	merged, err := merge(a, b)
	if err != nil {
		t.Fatalf("merge() error = %v", err)
	}
	if merged["minimum"] != 10.0 {
		t.Errorf("expected tightened minimum 10, got %v", merged["minimum"])
	}
	if merged["maximum"] != 15.0 {
		t.Errorf("expected tightened maximum 15, got %v", merged["maximum"])
	}
}

func TestMergeIsIdempotentOnRepeatedApplication(t *testing.T) {
	a := Node{"required": []any{"x", "y"}}
	b := Node{"required": []any{"y", "z"}}

	first, err := merge(deepCopyNode(a), deepCopyNode(b))
	if err != nil {
		t.Fatalf("merge() error = %v", err)
	}
	second, err := merge(deepCopyNode(first), deepCopyNode(b))
	if err != nil {
		t.Fatalf("merge() error = %v", err)
	}

	firstReq := asStringList(first["required"])
	secondReq := asStringList(second["required"])
	if len(firstReq) != len(secondReq) {
		t.Errorf("merge is not idempotent: %v vs %v", firstReq, secondReq)
	}
}

func TestSubtractRemovesRequiredAndMatchingProperties(t *testing.T) {
	a := Node{
		"required": []any{"a", "b", "c"},
		"properties": Node{
			"a": Node{"type": "string"},
			"b": Node{"type": "integer"},
			"c": Node{"type": "boolean"},
		},
	}
	removal := Node{"required": []any{"b"}}

	result, err := subtract(a, removal)
	if err != nil {
		t.Fatalf("subtract() error = %v", err)
	}

	required := asStringList(result["required"])
	for _, name := range required {
		if name == "b" {
			t.Error("expected \"b\" to be removed from required")
		}
	}

	props, _ := asMap(result["properties"])
	if _, ok := props["b"]; ok {
		t.Error("expected \"b\" to be removed from properties along with required")
	}
	if _, ok := props["a"]; !ok {
		t.Error("expected \"a\" to remain in properties")
	}
}

func TestDifferenceDropsSharedScalarsAndKeepsUniqueListItems(t *testing.T) {
	a := Node{
		"type":     "object",
		"required": []any{"a", "b"},
	}
	b := Node{
		"type":     "object",
		"required": []any{"b"},
	}

	diff, err := difference(a, b)
	if err != nil {
		t.Fatalf("difference() error = %v", err)
	}

	if _, ok := diff["type"]; ok {
		t.Error("expected scalar key \"type\" shared by both sides to be dropped")
	}

	required := asStringList(diff["required"])
	if len(required) != 1 || required[0] != "a" {
		t.Errorf("expected only \"a\" to remain in required diff, got %v", required)
	}
}

func TestUnionListDedupesScalarsAndSchemas(t *testing.T) {
	a := []any{"x", "y", Node{"type": "string"}}
	b := []any{"y", "z", Node{"type": "string"}}

	result := unionList(a, b)
	if len(result) != 4 {
		t.Fatalf("expected 4 deduplicated entries, got %d: %v", len(result), result)
	}
}
