package jsongen

// A Node is a JSON Schema fragment represented as the JSON DOM itself:
// map[string]any for objects, []any for arrays/lists of sub-schemas, and
// string/float64/bool/nil for scalars. Keywords are read by name rather
// than through a fixed struct, per the schema-driven design this package
// implements: a node may carry any combination of keywords and the
// generator dispatches on whatever is present.
type Node = map[string]any

func asMap(v any) (Node, bool) {
	m, ok := v.(Node)
	return m, ok
}

func asList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

func asNodeList(v any) ([]Node, bool) {
	l, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]Node, 0, len(l))
	for _, item := range l {
		m, ok := asMap(item)
		if !ok {
			return nil, false
		}
		out = append(out, m)
	}
	return out, true
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// asStringList reads a value expected to be a list of strings, e.g.
// "required". Non-string entries are skipped rather than erroring: the
// core only ever writes well-formed required lists itself.
func asStringList(v any) []string {
	l, ok := asList(v)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, item := range l {
		if s, ok := asString(item); ok {
			out = append(out, s)
		}
	}
	return out
}

// types reads the "type" keyword, which may be a single string or an array
// of strings (a pragmatic extension beyond strict Draft-04).
func types(n Node) []string {
	v, ok := n["type"]
	if !ok {
		return nil
	}
	if s, ok := asString(v); ok {
		return []string{s}
	}
	return asStringList(v)
}

// deepCopy clones a Node/list/scalar so combinator flattening and algebra
// operations never mutate the caller's original schema.
func deepCopy(v any) any {
	switch val := v.(type) {
	case Node:
		out := make(Node, len(val))
		for k, vv := range val {
			out[k] = deepCopy(vv)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, vv := range val {
			out[i] = deepCopy(vv)
		}
		return out
	default:
		return val
	}
}

func deepCopyNode(n Node) Node {
	return deepCopy(n).(Node)
}
