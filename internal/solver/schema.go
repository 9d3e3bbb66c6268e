package solver

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// solutionSchemaDoc is the minimum shape a reply must satisfy. Anything the
// provider supplies beyond this is passed through untouched: the normalizer
// never coerces or defaults fields.
var solutionSchemaDoc = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"steps": map[string]any{
			"type":     "array",
			"minItems": 1,
		},
		"finalAnswer": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
	},
	"required": []any{"steps", "finalAnswer"},
}

var (
	schemaOnce     sync.Once
	solutionSchema *jsonschema.Schema
	schemaErr      error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		// The compiler expects a parsed JSON value; round-trip the map to
		// normalize it.
		raw, err := json.Marshal(solutionSchemaDoc)
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://doubt-solution.json"
		if err := c.AddResource(url, doc); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		solutionSchema, schemaErr = c.Compile(url)
	})
	return solutionSchema, schemaErr
}

func validateShape(doc any) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	return schema.Validate(doc)
}
