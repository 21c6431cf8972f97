package jsongen

import (
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/lucasjones/reggen"
)

// FakeProvider is the pluggable source of typed random primitives the
// generator draws from. The default implementation, GofakeitProvider,
// adapts gofakeit/v7, lucasjones/reggen, and google/uuid behind one
// interface so callers can substitute their own.
type FakeProvider interface {
	ISO8601() string
	Date() string
	Time() string
	Email() string
	URI() string
	UUID4() string
	Bool() bool
	Int() int64
	Float() float64
	Str(min, max int) string
	Word() string
	Pattern(pattern string) (string, error)
	JSONDict(n int, variableLen bool) map[string]any
	JSONList(n int, variableLen bool) []any
	RandomInt(lo, hi int64) int64
	UniformFloat(lo, hi float64) float64
}

// GofakeitProvider is the default FakeProvider. The extra rand.Rand feeds
// the UUID and regex expanders, which otherwise draw from global state and
// would break seed determinism.
type GofakeitProvider struct {
	faker *gofakeit.Faker
	rnd   *rand.Rand
}

// NewGofakeitProvider creates a seeded provider; the same seed always
// yields the same sequence of calls.
func NewGofakeitProvider(seed int64) *GofakeitProvider {
	return &GofakeitProvider{
		faker: gofakeit.New(uint64(seed)),
		rnd:   rand.New(rand.NewSource(seed)),
	}
}

func (g *GofakeitProvider) ISO8601() string { return g.faker.Date().Format(time.RFC3339) }
func (g *GofakeitProvider) Date() string    { return g.faker.Date().Format("2006-01-02") }
func (g *GofakeitProvider) Time() string    { return g.faker.Date().Format("15:04:05") }
func (g *GofakeitProvider) Email() string   { return g.faker.Email() }
func (g *GofakeitProvider) URI() string     { return g.faker.URL() }
func (g *GofakeitProvider) UUID4() string {
	u, err := uuid.NewRandomFromReader(g.rnd)
	if err != nil {
		return uuid.New().String()
	}
	return u.String()
}
func (g *GofakeitProvider) Bool() bool      { return g.faker.Bool() }
func (g *GofakeitProvider) Int() int64      { return int64(g.faker.Number(-1000, 1000)) }
func (g *GofakeitProvider) Float() float64  { return g.faker.Float64Range(-1000, 1000) }
func (g *GofakeitProvider) Word() string    { return g.faker.Word() }

func (g *GofakeitProvider) Str(min, max int) string {
	if max <= 0 {
		return ""
	}
	length := min
	if max > min {
		length = min + g.faker.Number(0, max-min)
	}
	return randomStringOfLength(g.faker, length)
}

func (g *GofakeitProvider) Pattern(pattern string) (string, error) {
	gen, err := reggen.NewGenerator(pattern)
	if err != nil {
		return "", err
	}
	gen.SetSeed(g.rnd.Int63())
	return gen.Generate(10), nil
}

// JSONDict fabricates an arbitrary JSON-like map from the same primitive
// pool used for additionalProperties fabrication.
func (g *GofakeitProvider) JSONDict(n int, variableLen bool) map[string]any {
	count := n
	if variableLen && n > 0 {
		count = g.faker.Number(0, n)
	}
	out := make(map[string]any, count)
	for i := 0; i < count; i++ {
		out[g.faker.Word()] = g.randomPrimitive()
	}
	return out
}

// JSONList fabricates an arbitrary JSON-like list.
func (g *GofakeitProvider) JSONList(n int, variableLen bool) []any {
	count := n
	if variableLen && n > 0 {
		count = g.faker.Number(0, n)
	}
	out := make([]any, count)
	for i := range out {
		out[i] = g.randomPrimitive()
	}
	return out
}

func (g *GofakeitProvider) RandomInt(lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return int64(g.faker.Number(int(lo), int(hi)))
}

func (g *GofakeitProvider) UniformFloat(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return g.faker.Float64Range(lo, hi)
}

func (g *GofakeitProvider) randomPrimitive() any {
	switch g.faker.Number(0, 4) {
	case 0:
		return g.faker.Word()
	case 1:
		return g.faker.Float64Range(-1000, 1000)
	case 2:
		return g.faker.Number(-1000, 1000)
	case 3:
		return g.faker.Bool()
	default:
		return g.Email()
	}
}

// randomStringOfLength draws letters directly for short lengths and
// assembles words then truncates for longer ones, so the output reads like
// realistic text rather than opaque letter soup.
func randomStringOfLength(faker *gofakeit.Faker, length int) string {
	if length <= 0 {
		return ""
	}
	if length <= 3 {
		return faker.LetterN(uint(length))
	}
	result := faker.Word()
	for len(result) < length {
		result += faker.Word()
	}
	return result[:length]
}
