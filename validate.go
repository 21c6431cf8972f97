package jsongen

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonschema"
)

// SelfValidator checks a schema's own well-formedness and, separately,
// checks a generated instance against that schema. Backed by
// github.com/kaptinlin/jsonschema, whose Draft-07/2020-12 semantics are
// close enough to Draft-04 for self-validation of our own output
// (arbitrary-document validation is out of scope).
type SelfValidator struct {
	compiler *jsonschema.Compiler
}

// NewSelfValidator builds a SelfValidator with a fresh compiler/cache.
func NewSelfValidator() *SelfValidator {
	return &SelfValidator{compiler: jsonschema.NewCompiler()}
}

// ValidateSchema compiles schema, returning SchemaInvalid if compilation
// fails -- our stand-in for Draft-04 meta-schema validation, since
// kaptinlin/jsonschema rejects structurally invalid schemas at compile
// time.
func (v *SelfValidator) ValidateSchema(schema Node) error {
	_, err := v.compile(schema)
	if err != nil {
		return wrapErr(SchemaInvalid, "", err, "schema failed self-validation")
	}
	return nil
}

// ValidateOutput checks instance against schema, returning OutputInvalid
// with the validator's error detail on failure.
func (v *SelfValidator) ValidateOutput(schema Node, instance any) error {
	compiled, err := v.compile(schema)
	if err != nil {
		return wrapErr(SchemaInvalid, "", err, "schema failed self-validation")
	}
	result := compiled.Validate(instance)
	if result.IsValid() {
		return nil
	}
	return newErr(OutputInvalid, "", "%s", formatErrors(result.GetDetailedErrors()))
}

func (v *SelfValidator) compile(schema Node) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	return v.compiler.Compile(raw)
}

func formatErrors(errs map[string]string) string {
	parts := make([]string, 0, len(errs))
	for path, msg := range errs {
		parts = append(parts, path+": "+msg)
	}
	return strings.Join(parts, "; ")
}
