package jsongen

import (
	"reflect"
	"sort"
	"strings"
)

// merge folds B's keywords into A in place and returns A.
// Maps merge recursively, lists set-union (order-insensitive,
// deduplicated), "min*"-named scalar keys take the max (tightening a lower
// bound), "max*"-named scalar keys take the min (tightening an upper
// bound), and everything else is first-write-wins.
func merge(a, b Node) (Node, error) {
	keys := sortedKeys(b)
	for _, k := range keys {
		vb := b[k]
		switch vbt := vb.(type) {
		case Node:
			var va Node
			switch existing := a[k].(type) {
			case nil:
				va = Node{}
			case Node:
				va = existing
			default:
				return nil, typeMismatch(k, a[k], vb)
			}
			merged, err := merge(va, vbt)
			if err != nil {
				return nil, err
			}
			a[k] = merged
		case []any:
			va, ok := a[k].([]any)
			if a[k] != nil && !ok {
				return nil, typeMismatch(k, a[k], vb)
			}
			a[k] = unionList(va, vbt)
		default:
			if strings.Contains(k, "min") {
				a[k] = maxScalar(a[k], vb)
			} else if strings.Contains(k, "max") {
				a[k] = minScalar(a[k], vb)
			} else if _, exists := a[k]; !exists {
				a[k] = vb
			}
		}
	}
	return a, nil
}

// difference returns the subset of A whose keys also occur in B, with the
// B-side values subtracted out: recursing into shared maps, keeping only
// A's list items absent from B's list, and dropping scalar keys entirely.
// Used to compute the symmetric-difference removal set for oneOf.
func difference(a, b Node) (Node, error) {
	out := Node{}
	for _, k := range sortedKeys(a) {
		va := a[k]
		vb, present := b[k]
		if !present {
			continue
		}
		switch vat := va.(type) {
		case Node:
			vbm, ok := vb.(Node)
			if !ok {
				return nil, typeMismatch(k, va, vb)
			}
			sub, err := difference(vat, vbm)
			if err != nil {
				return nil, err
			}
			out[k] = sub
		case []any:
			vbl, ok := vb.([]any)
			if !ok {
				return nil, typeMismatch(k, va, vb)
			}
			out[k] = listMinus(vat, vbl)
		default:
			// scalar present in both: dropped, per spec.
		}
	}
	return out, nil
}

// subtract removes from A whatever B names. "required" is special-cased:
// removing a name from required also removes the matching property.
func subtract(a, b Node) (Node, error) {
	for _, k := range sortedKeys(b) {
		vb := b[k]
		if k == "required" {
			if _, ok := a["required"]; ok {
				removed := asStringList(vb)
				if props, ok := asMap(a["properties"]); ok {
					for _, name := range removed {
						delete(props, name)
					}
				}
				a["required"] = listMinus(toAnyList(asStringList(a["required"])), toAnyList(removed))
			}
			continue
		}
		av, present := a[k]
		if !present {
			continue
		}
		switch vbt := vb.(type) {
		case Node:
			avm, ok := av.(Node)
			if !ok {
				continue
			}
			sub, err := subtract(avm, vbt)
			if err != nil {
				return nil, err
			}
			a[k] = sub
		case []any:
			avl, ok := av.([]any)
			if !ok {
				continue
			}
			a[k] = listMinus(avl, vbt)
		}
	}
	return a, nil
}

func typeMismatch(key string, a, b any) error {
	return newErr(TypeMismatch, key, "incompatible kinds: %T vs %T", a, b)
}

func sortedKeys(n Node) []string {
	keys := make([]string, 0, len(n))
	for k := range n {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// unionList returns the union of a and b with duplicates removed,
// order-insensitive, the merge rule for list-valued keywords. Hashable scalars
// use a map for O(n+m); non-hashable items (sub-schemas) fall back to a
// linear scan, per the design note on avoiding quadratic blowups where
// possible.
func unionList(a, b []any) []any {
	out := make([]any, 0, len(a)+len(b))
	seenScalar := map[any]bool{}
	var seenOther []any

	add := func(v any) {
		if isHashable(v) {
			if seenScalar[v] {
				return
			}
			seenScalar[v] = true
		} else {
			for _, s := range seenOther {
				if reflect.DeepEqual(s, v) {
					return
				}
			}
			seenOther = append(seenOther, v)
		}
		out = append(out, v)
	}
	for _, v := range a {
		add(v)
	}
	for _, v := range b {
		add(v)
	}
	return out
}

// listMinus returns the items of a not present in b.
func listMinus(a, b []any) []any {
	out := make([]any, 0, len(a))
	for _, v := range a {
		found := false
		for _, w := range b {
			if reflect.DeepEqual(v, w) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, v)
		}
	}
	return out
}

func isHashable(v any) bool {
	switch v.(type) {
	case Node, []any:
		return false
	default:
		return true
	}
}

func toAnyList(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func maxScalar(a, b any) any {
	if a == nil {
		return b
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		if af > bf {
			return a
		}
		return b
	}
	return a
}

func minScalar(a, b any) any {
	if a == nil {
		return b
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		if af < bf {
			return a
		}
		return b
	}
	return a
}
