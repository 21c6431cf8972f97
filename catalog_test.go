package jsongen

import (
	"encoding/json"
	"testing"
)

func TestCatalogGenerateNamedSchema(t *testing.T) {
	cache := NewStaticCache(map[string][]byte{
		"local://order.json": []byte(`{
			"type": "object",
			"properties": {"id": {"type": "string", "format": "uuid"}},
			"required": ["id"]
		}`),
	})
	catalog := NewCatalog([]string{"local://order.json"}, cache).WithSeed(7)

	out, err := catalog.Generate("order.json")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var wrapper map[string]map[string]any
	if err := json.Unmarshal([]byte(out), &wrapper); err != nil {
		t.Fatalf("result is not valid JSON: %v", err)
	}
	order, ok := wrapper["order.json"]
	if !ok {
		t.Fatalf("expected top-level key \"order.json\", got %v", wrapper)
	}
	if _, ok := order["id"]; !ok {
		t.Errorf("expected generated order to have \"id\", got %v", order)
	}
}

func TestCatalogNamesSorted(t *testing.T) {
	cache := NewStaticCache(map[string][]byte{
		"local://b.json": []byte(`{"type": "string"}`),
		"local://a.json": []byte(`{"type": "string"}`),
	})
	catalog := NewCatalog([]string{"local://b.json", "local://a.json"}, cache)
	names := catalog.Names()
	if len(names) != 2 || names[0] != "a.json" || names[1] != "b.json" {
		t.Errorf("expected sorted names [a.json b.json], got %v", names)
	}
}

func TestCatalogResolveReferencesDetectsCycle(t *testing.T) {
	cache := NewStaticCache(map[string][]byte{
		"local://a.json": []byte(`{"$ref": "local://b.json"}`),
		"local://b.json": []byte(`{"$ref": "local://a.json"}`),
	})
	catalog := NewCatalog([]string{"local://a.json"}, cache)

	schema := Node{"$ref": "local://a.json"}
	_, err := catalog.ResolveReferences(schema)
	if err == nil {
		t.Fatal("expected a cycle-detection error resolving mutually-referential schemas")
	}
}

func TestCatalogGenerateUnknownSchema(t *testing.T) {
	cache := NewStaticCache(nil)
	catalog := NewCatalog(nil, cache)
	if _, err := catalog.Generate("does-not-exist"); err == nil {
		t.Error("expected an error generating an unregistered schema name")
	}
}
