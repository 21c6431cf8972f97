package jsongen

import (
	"context"
	"math/rand"
	"time"
)

// defaultFormats maps JSON Schema string formats to provider attributes.
var defaultFormats = map[string]string{
	"date-time": "iso8601",
	"date":      "date",
	"time":      "time",
	"email":     "email",
}

// Generator is the recursive schema-driven interpreter: the generation
// core plus its Faker and Resolver collaborators and a breadcrumb path for
// diagnostics. A Generator is cheap to construct (it wraps one
// *rand.Rand and one Faker) and is not safe for concurrent use from
// multiple goroutines against the same Resolver scope stack; construct one
// per goroutine for concurrent generation.
type Generator struct {
	MaxDepth int

	rnd       *rand.Rand
	faker     FakeProvider
	resolver  *Resolver
	formats   map[string]string
	validator *SelfValidator
	path      []string
}

// NewGenerator builds a Generator seeded from the current time, with no
// resolver (only inline schemas, no $ref) and the default format mapping.
func NewGenerator() *Generator {
	seed := time.Now().UnixNano()
	return newGenerator(seed)
}

// NewGeneratorWithSeed builds a deterministic Generator: given the same
// seed, two Generators produce byte-identical output for the same schema.
func NewGeneratorWithSeed(seed int64) *Generator {
	return newGenerator(seed)
}

func newGenerator(seed int64) *Generator {
	return &Generator{
		MaxDepth: 64,
		rnd:      rand.New(rand.NewSource(seed)),
		faker:    NewGofakeitProvider(seed),
		resolver: NewResolver(nil),
		formats:  defaultFormats,
	}
}

// WithResolver attaches a Resolver carrying whatever schemas/scopes the
// caller has already resolved (e.g. a Catalog's cache).
func (g *Generator) WithResolver(r *Resolver) *Generator {
	g.resolver = r
	return g
}

// WithFaker substitutes the Faker Provider collaborator.
func (g *Generator) WithFaker(f FakeProvider) *Generator {
	g.faker = f
	return g
}

// WithValidator attaches the Self-Validator collaborator; Generate will
// self-validate the schema and the output when set.
func (g *Generator) WithValidator(v *SelfValidator) *Generator {
	g.validator = v
	return g
}

// WithFormats replaces the format -> provider-attribute mapping. Returns a
// ConfigError if a named provider attribute doesn't exist on FakeProvider.
func (g *Generator) WithFormats(formats map[string]string) (*Generator, error) {
	for format, provider := range formats {
		if !validProviderName(provider) {
			return nil, newErr(ConfigError, "", "formats[%q]: %q is not a known provider attribute", format, provider)
		}
	}
	g.formats = formats
	return g, nil
}

func validProviderName(name string) bool {
	switch name {
	case "iso8601", "date", "time", "email", "uri", "uuid4", "word":
		return true
	default:
		return false
	}
}

// Generate self-validates the schema's well-formedness (when a validator
// is attached), produces an instance, then self-validates the instance
// against the schema.
func (g *Generator) Generate(schema Node) (any, error) {
	return g.GenerateWithContext(context.Background(), schema)
}

// GenerateWithContext is Generate with cancellation support, checked once
// per recursive produce call.
func (g *Generator) GenerateWithContext(ctx context.Context, schema Node) (any, error) {
	if g.validator != nil {
		if err := g.validator.ValidateSchema(schema); err != nil {
			return nil, err
		}
	}

	out, err := g.produce(ctx, schema, 0)
	if err != nil {
		return nil, err
	}

	if g.validator != nil {
		if err := g.validator.ValidateOutput(schema, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// produce is the recursive entry point: it handles $ref and id scoping,
// flattens combinators, and dispatches to the type generator. In order:
//
//  1. push/pop any "id" scope on every exit path;
//  2. resolve and recurse into "$ref", under the resolved scope;
//  3. otherwise flatten allOf/anyOf/oneOf into a deep-copied working node;
//  4. dispatch on "type" (default "object").
func (g *Generator) produce(ctx context.Context, schema Node, depth int) (out any, err error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	if depth >= g.MaxDepth {
		return nil, newErr(OutputInvalid, g.pathString(), "maximum recursion depth (%d) exceeded", g.MaxDepth)
	}

	if id, ok := asString(schema["id"]); ok && id != "" {
		g.resolver.PushScope(id)
		defer g.resolver.PopScope()
	}

	if ref, ok := asString(schema["$ref"]); ok && ref != "" {
		base, resolved, rerr := g.resolver.Resolve(ref)
		if rerr != nil {
			return nil, rerr
		}
		g.resolver.PushScope(base)
		defer g.resolver.PopScope()
		return g.produce(ctx, resolved, depth+1)
	}

	working := deepCopyNode(schema)
	if err := g.flattenCombinators(working); err != nil {
		return nil, err
	}

	typeList := types(working)
	typeName := "object"
	if len(typeList) == 1 {
		typeName = typeList[0]
	} else if len(typeList) > 1 {
		typeName = typeList[g.rnd.Intn(len(typeList))]
	}

	switch typeName {
	case "object":
		return g.generateObject(ctx, working, depth)
	case "array":
		return g.generateArray(ctx, working, depth)
	case "string":
		return g.generateString(working)
	case "number":
		return g.generateNumber(working, false)
	case "integer":
		return g.generateNumber(working, true)
	case "boolean":
		return g.generateBoolean(working)
	case "null":
		return nil, nil
	default:
		return nil, newErr(UnsupportedKeyword, g.pathString(), "unsupported type %q", typeName)
	}
}

// flattenCombinators folds allOf/anyOf/oneOf into working. allOf is
// conjunction, so every branch merges in. anyOf picks one branch uniformly
// at random and merges it. oneOf picks one branch, merges it, then
// subtracts the symmetric difference of every *other* branch against the
// chosen one -- a heuristic, not a decision procedure, meant to reduce
// (not eliminate) the chance of accidentally satisfying more than one
// branch.
func (g *Generator) flattenCombinators(working Node) error {
	if allOf, ok := asNodeList(working["allOf"]); ok {
		delete(working, "allOf")
		for _, sub := range allOf {
			if _, err := merge(working, deepCopyNode(sub)); err != nil {
				return err
			}
		}
	}

	if anyOf, ok := asNodeList(working["anyOf"]); ok && len(anyOf) > 0 {
		delete(working, "anyOf")
		chosen := anyOf[g.rnd.Intn(len(anyOf))]
		if _, err := merge(working, deepCopyNode(chosen)); err != nil {
			return err
		}
	}

	if oneOf, ok := asNodeList(working["oneOf"]); ok && len(oneOf) > 0 {
		delete(working, "oneOf")
		choiceIdx := g.rnd.Intn(len(oneOf))
		chosen := oneOf[choiceIdx]

		removal := Node{}
		for i, sub := range oneOf {
			if i == choiceIdx {
				continue
			}
			diff, err := difference(deepCopyNode(sub), deepCopyNode(chosen))
			if err != nil {
				return err
			}
			if _, err := merge(removal, diff); err != nil {
				return err
			}
		}

		if _, err := merge(working, deepCopyNode(chosen)); err != nil {
			return err
		}
		if _, err := subtract(working, removal); err != nil {
			return err
		}
	}

	return nil
}

// common resolves fake/const/enum, in that precedence order (fake beats
// const beats enum). Applied first in every type generator.
func (g *Generator) common(schema Node) (any, bool) {
	if fake, ok := asString(schema["fake"]); ok && fake != "" {
		return g.invokeFake(fake), true
	}
	if v, ok := schema["const"]; ok {
		return v, true
	}
	if enum, ok := asList(schema["enum"]); ok && len(enum) > 0 {
		return enum[g.rnd.Intn(len(enum))], true
	}
	return nil, false
}

func (g *Generator) invokeFake(name string) any {
	switch name {
	case "iso8601":
		return g.faker.ISO8601()
	case "date":
		return g.faker.Date()
	case "time":
		return g.faker.Time()
	case "email":
		return g.faker.Email()
	case "uri":
		return g.faker.URI()
	case "uuid4":
		return g.faker.UUID4()
	case "pybool":
		return g.faker.Bool()
	case "pyint":
		return g.faker.Int()
	case "pyfloat":
		return g.faker.Float()
	case "pystr":
		return g.faker.Str(1, 20)
	case "jsondict":
		return g.faker.JSONDict(10, true)
	case "jsonlist":
		return g.faker.JSONList(10, true)
	case "word":
		return g.faker.Word()
	default:
		return g.faker.Word()
	}
}

func (g *Generator) pathString() string {
	s := ""
	for i, p := range g.path {
		if i > 0 {
			s += "."
		}
		s += p
	}
	return s
}

func (g *Generator) pushPath(name string) { g.path = append(g.path, name) }
func (g *Generator) popPath()             { g.path = g.path[:len(g.path)-1] }
