package jsongen

const (
	unboundMinString = 1
	unboundMaxString = 128
)

// generateString resolves fake/const/enum first, then format, then
// pattern, then a length-bounded random string.
func (g *Generator) generateString(schema Node) (any, error) {
	if v, ok := g.common(schema); ok {
		return v, nil
	}

	if format, ok := asString(schema["format"]); ok && format != "" {
		if provider, ok := g.formats[format]; ok {
			return g.invokeFake(provider), nil
		}
		// Unknown format at generation time falls through to
		// pattern/length logic.
	}

	if pattern, ok := asString(schema["pattern"]); ok && pattern != "" {
		s, err := g.faker.Pattern(pattern)
		if err != nil {
			return nil, wrapErr(ConfigError, g.pathString(), err, "invalid pattern %q", pattern)
		}
		return s, nil
	}

	minLen := unboundMinString
	if v, ok := asFloat(schema["minLength"]); ok {
		minLen = int(v)
	}
	maxLen := unboundMaxString
	if v, ok := asFloat(schema["maxLength"]); ok {
		maxLen = int(v)
	}
	return g.faker.Str(minLen, maxLen), nil
}
