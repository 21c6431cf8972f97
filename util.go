package jsongen

import (
	"encoding/json"
	"reflect"
)

func deepEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// parseJSON decodes raw bytes into the untyped Node DOM, the same shape
// produced by json.Unmarshal into an any when the top-level value is an
// object.
func parseJSON(raw []byte) (Node, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	n, ok := asMap(v)
	if !ok {
		return nil, newErr(UnresolvableRef, "", "document is not a JSON object")
	}
	return n, nil
}
