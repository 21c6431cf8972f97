package jsongen

import "context"

const (
	unboundMinItems = 1
	unboundMaxItems = 16
	uniqueRetries   = 3
)

// generateArray fabricates an array instance. Unlike the other type
// generators, enum at the array level is not a single-value override: it
// seeds the sampling pool used by simpleGen/uniqueGen. fake is still
// checked first, since it short-circuits every type.
func (g *Generator) generateArray(ctx context.Context, schema Node, depth int) (any, error) {
	if fake, ok := asString(schema["fake"]); ok && fake != "" {
		return g.invokeFake(fake), nil
	}

	lo := unboundMinItems
	if v, ok := asFloat(schema["minItems"]); ok {
		lo = int(v)
	}
	hi := lo + unboundMaxItems
	if v, ok := asFloat(schema["maxItems"]); ok {
		hi = int(v)
	}
	var length int
	if lo >= hi {
		length = lo
	} else {
		length = lo + g.rnd.Intn(hi-lo)
	}

	var out []any
	if constVal, ok := asList(schema["const"]); ok {
		out = append(out, constVal...)
	}
	enum, _ := asList(schema["enum"])
	unique, _ := asBool(schema["uniqueItems"])

	simpleGen := func(sub Node) error {
		if len(enum) > 0 {
			for len(out) < length {
				out = append(out, enum[g.rnd.Intn(len(enum))])
			}
			return nil
		}
		for len(out) < length {
			v, err := g.produce(ctx, sub, depth+1)
			if err != nil {
				return err
			}
			out = append(out, v)
		}
		return nil
	}

	uniqueGen := func(sub Node) error {
		pool := enum
		if len(pool) == 0 && sub != nil {
			pool, _ = asList(sub["enum"])
		}
		if len(pool) > 0 {
			shuffled := append([]any(nil), pool...)
			g.rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
			for _, v := range shuffled {
				if len(out) >= length {
					break
				}
				if !containsValue(out, v) {
					out = append(out, v)
				}
			}
			return nil
		}
		retry := uniqueRetries
		for len(out) < length && retry > 0 {
			v, err := g.produce(ctx, sub, depth+1)
			if err != nil {
				return err
			}
			if !containsValue(out, v) {
				out = append(out, v)
				retry = uniqueRetries
			} else {
				retry--
			}
		}
		return nil
	}

	switch items := schema["items"].(type) {
	case Node:
		if contains, ok := asMap(schema["contains"]); ok {
			v, err := g.produce(ctx, contains, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		var err error
		if unique {
			err = uniqueGen(items)
		} else {
			err = simpleGen(items)
		}
		if err != nil {
			return nil, err
		}
	case []any:
		// contains is deliberately left unhandled in tuple mode.
		tuple, _ := asNodeList(items)
		additionalItems, hasAdditional := schema["additionalItems"]

		if unique {
			i := 0
			retry := 0
			for i < len(tuple) && retry < uniqueRetries {
				v, err := g.produce(ctx, tuple[i], depth+1)
				if err != nil {
					return nil, err
				}
				retry++
				if !containsValue(out, v) {
					out = append(out, v)
					i++
					retry = 0
				}
			}
			if hasAdditional {
				if sub, ok := asMap(additionalItems); ok {
					if err := uniqueGen(sub); err != nil {
						return nil, err
					}
				}
			}
		} else {
			for _, sub := range tuple {
				v, err := g.produce(ctx, sub, depth+1)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			if hasAdditional {
				if sub, ok := asMap(additionalItems); ok {
					if err := simpleGen(sub); err != nil {
						return nil, err
					}
				}
			}
		}
	default:
		// No items schema at all: fabricate arbitrary values.
		for len(out) < length {
			out = append(out, g.faker.Word())
		}
	}

	if out == nil {
		out = []any{}
	}
	return out, nil
}

func containsValue(haystack []any, v any) bool {
	for _, h := range haystack {
		if deepEqual(h, v) {
			return true
		}
	}
	return false
}
