package jsongen

import (
	"encoding/json"
	"testing"
)

// schemaFrom parses a raw JSON object literal into a Node.
func schemaFrom(t *testing.T, raw string) Node {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("invalid schema literal: %v", err)
	}
	n, ok := asMap(v)
	if !ok {
		t.Fatalf("schema literal is not an object: %s", raw)
	}
	return n
}
