// Package outputschema validates a serialized ExtractionResult against the
// committed JSON Schema document describing the result shape. A violation
// aborts only the write step, never the extraction itself: extraction and
// serialization are independent concerns.
package outputschema

import (
	"bytes"
	"embed"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed extraction_result.schema.json
var schemaFS embed.FS

const schemaResourceURL = "extraction_result.schema.json"

//nolint:gochecknoglobals // compiled once, reused across every Validate call
var compiledSchema *jsonschema.Schema

func compile() (*jsonschema.Schema, error) {
	if compiledSchema != nil {
		return compiledSchema, nil
	}

	raw, err := schemaFS.ReadFile(schemaResourceURL)
	if err != nil {
		return nil, fmt.Errorf("reading embedded output schema: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing embedded output schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaResourceURL, doc); err != nil {
		return nil, fmt.Errorf("registering output schema: %w", err)
	}

	sch, err := c.Compile(schemaResourceURL)
	if err != nil {
		return nil, fmt.Errorf("compiling output schema: %w", err)
	}

	compiledSchema = sch
	return sch, nil
}

// Validate checks that data, the serialized ExtractionResult, conforms to
// the committed output schema.
func Validate(data []byte) error {
	sch, err := compile()
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parsing extraction result: %w", err)
	}

	return sch.Validate(inst)
}
