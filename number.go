package jsongen

import "math"

const (
	unboundMinInt = -32_000_000
	unboundMaxInt = 32_000_000
)

// generateNumber covers both "number" and "integer" (the isInteger flag
// controls rounding and the epsilon applied to exclusive bounds).
func (g *Generator) generateNumber(schema Node, isInteger bool) (any, error) {
	if v, ok := g.common(schema); ok {
		return coerceNumber(v, isInteger), nil
	}

	epsHi := 1e-12
	epsLo := 1e-12
	if isInteger {
		epsHi = 1
		epsLo = 1
	}

	hi := float64(unboundMaxInt) - epsHi
	if v, ok := asFloat(schema["maximum"]); ok {
		hi = v
	} else if v, ok := asFloat(schema["exclusiveMaximum"]); ok {
		hi = v - epsHi
	}

	lo := float64(unboundMinInt) + epsLo
	if v, ok := asFloat(schema["minimum"]); ok {
		lo = v
	} else if v, ok := asFloat(schema["exclusiveMinimum"]); ok {
		lo = v + epsLo
	}

	if isInteger {
		// Snap fractional bounds inward; truncation would step outside them.
		lo = math.Ceil(lo)
		hi = math.Floor(hi)
		if lo > hi {
			return nil, newErr(ConfigError, g.pathString(), "no integer fits within [%v, %v]", lo, hi)
		}
	}

	if lo == hi {
		return boundedValue(lo, isInteger), nil
	}

	if m, ok := asFloat(schema["multipleOf"]); ok {
		if m <= 0 {
			return nil, newErr(ConfigError, g.pathString(), "multipleOf must be > 0, got %v", m)
		}
		kLo := int64(math.Ceil(lo / m))
		kHi := int64(math.Floor(hi / m))
		if kLo > kHi {
			return nil, newErr(ConfigError, g.pathString(), "no multiple of %v fits within [%v, %v]", m, lo, hi)
		}
		k := g.faker.RandomInt(kLo, kHi)
		result := float64(k) * m
		if isInteger {
			return int64(result), nil
		}
		return roundTo(result, 12), nil
	}

	if isInteger {
		return g.faker.RandomInt(int64(lo), int64(hi)), nil
	}
	return g.faker.UniformFloat(lo, hi), nil
}

func boundedValue(v float64, isInteger bool) any {
	if isInteger {
		return int64(v)
	}
	return v
}

func coerceNumber(v any, isInteger bool) any {
	f, ok := asFloat(v)
	if !ok || !isInteger {
		return v
	}
	return int64(f)
}

func roundTo(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
