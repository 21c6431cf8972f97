package jsongen

import (
	"context"
	"sort"
)

const (
	unboundMinObjects = 1
	unboundMaxObjects = 16
	keyMaxLen         = 64
)

// generateObject fabricates an object instance: required properties are
// always produced; remaining size is filled by drawing from whichever of
// {remaining properties, patternProperties, additionalProperties} apply,
// chosen uniformly at random token-by-token until the target size is
// reached or no token remains.
func (g *Generator) generateObject(ctx context.Context, schema Node, depth int) (any, error) {
	if v, ok := g.common(schema); ok {
		return v, nil
	}

	result := map[string]any{}
	required := asStringList(schema["required"])
	properties, _ := asMap(schema["properties"])

	remaining := make([]string, 0, len(properties))
	for name := range properties {
		remaining = append(remaining, name)
	}
	sort.Strings(remaining)

	isRequired := map[string]bool{}
	for _, name := range required {
		isRequired[name] = true
	}
	remaining = filterOut(remaining, isRequired)

	for _, name := range required {
		sub, ok := asMap(properties[name])
		if !ok {
			continue
		}
		g.pushPath(name)
		v, err := g.produce(ctx, sub, depth+1)
		g.popPath()
		if err != nil {
			return nil, err
		}
		result[name] = v
	}

	lo := unboundMinObjects
	hi := unboundMaxObjects
	if v, ok := asFloat(schema["minProperties"]); ok {
		lo = int(v)
	}
	if v, ok := asFloat(schema["maxProperties"]); ok {
		hi = int(v)
	}
	var target int
	if lo >= hi {
		target = lo
	} else {
		target = lo + g.rnd.Intn(hi-lo)
	}

	if len(result) >= target {
		return result, nil
	}

	patternProperties, hasPattern := asMap(schema["patternProperties"])
	additional, hasAdditional := schema["additionalProperties"]
	additionalTruthy := truthy(additional)

	var patterns []string
	if hasPattern {
		patterns = make([]string, 0, len(patternProperties))
		for p := range patternProperties {
			patterns = append(patterns, p)
		}
		sort.Strings(patterns)
	}

	var tokens []string
	if len(remaining) > 0 {
		tokens = append(tokens, "pr")
	}
	if len(patterns) > 0 {
		tokens = append(tokens, "pa")
	}
	if hasAdditional && additionalTruthy {
		tokens = append(tokens, "ad")
	}

	// A pattern that only matches one key (or an exhausted value domain)
	// can stop the object growing; give up after a few stalled rounds
	// rather than spinning.
	stalled := 0
	for len(result) < target && len(tokens) > 0 && stalled < uniqueRetries {
		before := len(result)
		choice := tokens[g.rnd.Intn(len(tokens))]
		switch choice {
		case "pr":
			idx := g.rnd.Intn(len(remaining))
			name := remaining[idx]
			remaining = append(remaining[:idx], remaining[idx+1:]...)
			sub, ok := asMap(properties[name])
			if ok {
				g.pushPath(name)
				v, err := g.produce(ctx, sub, depth+1)
				g.popPath()
				if err != nil {
					return nil, err
				}
				result[name] = v
			}
			if len(remaining) == 0 {
				tokens = removeToken(tokens, "pr")
			}
		case "pa":
			pattern := patterns[g.rnd.Intn(len(patterns))]
			key, err := g.patternPropertyKey(pattern)
			if err != nil {
				return nil, err
			}
			sub, ok := asMap(patternProperties[pattern])
			if ok {
				v, err := g.produce(ctx, sub, depth+1)
				if err != nil {
					return nil, err
				}
				result[key] = v
			}
		case "ad":
			key := g.faker.UUID4()
			result[key] = g.fabricateAdditional(schema["additionalProperties"])
		}
		if len(result) == before {
			stalled++
		} else {
			stalled = 0
		}
	}

	return result, nil
}

// patternPropertyKey generates a key matching pattern, truncated to
// keyMaxLen. JSON Schema regexes treat "." literally, so an unescaped dot
// is rewritten to "\." before expansion -- other metacharacters pass
// through untouched, which may allow unexpected matches.
func (g *Generator) patternPropertyKey(pattern string) (string, error) {
	key, err := g.faker.Pattern(escapeUnescapedDots(pattern))
	if err != nil {
		return "", wrapErr(ConfigError, g.pathString(), err, "invalid patternProperties regex %q", pattern)
	}
	if len(key) > keyMaxLen {
		key = key[:keyMaxLen]
	}
	return key, nil
}

// escapeUnescapedDots rewrites every unescaped "." to "\.", leaving
// already-escaped dots and every other metacharacter untouched. JSON
// Schema regexes treat "." literally rather than as "any character", so
// patternProperties keys need this before going through the generic
// regex-to-string expander.
func escapeUnescapedDots(pattern string) string {
	out := make([]byte, 0, len(pattern)+4)
	backslashes := 0
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == '.' && backslashes%2 == 0 {
			out = append(out, '\\', '.')
		} else {
			out = append(out, c)
		}
		if c == '\\' {
			backslashes++
		} else {
			backslashes = 0
		}
	}
	return string(out)
}

// fabricateAdditional fabricates a value for an additionalProperties slot.
// When additionalProperties is a schema (not a bool) the schema is *not*
// honored: a uniformly random Faker primitive/composite is produced either
// way. A known divergence from strict Draft-04 semantics.
func (g *Generator) fabricateAdditional(_ any) any {
	switch g.rnd.Intn(6) {
	case 0:
		return g.faker.JSONDict(10, true)
	case 1:
		return g.faker.Bool()
	case 2:
		return g.faker.Str(1, 20)
	case 3:
		return g.faker.Int()
	case 4:
		return g.faker.Float()
	default:
		return g.faker.JSONList(10, true)
	}
}

func truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case nil:
		return false
	default:
		return true
	}
}

func filterOut(names []string, exclude map[string]bool) []string {
	out := names[:0]
	for _, n := range names {
		if !exclude[n] {
			out = append(out, n)
		}
	}
	return out
}

func removeToken(tokens []string, t string) []string {
	out := tokens[:0]
	for _, tok := range tokens {
		if tok != t {
			out = append(out, tok)
		}
	}
	return out
}
