package registry

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// The registry payload carries dozens of fields; only the ones the pipeline
// consumes are pinned here. A body that fails this schema is treated the same
// as a failed lookup.
const lookupSchemaJSON = `{
	"type": "object",
	"required": ["razao_social"],
	"properties": {
		"razao_social":          {"type": "string"},
		"cnae_fiscal":           {"type": ["integer", "number", "null"]},
		"cnae_fiscal_descricao": {"type": ["string", "null"]}
	}
}`

var lookupSchema = jsonschema.MustCompileString("lookup.json", lookupSchemaJSON)

func validateLookupBody(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if err := lookupSchema.Validate(v); err != nil {
		return fmt.Errorf("response does not match schema: %w", err)
	}
	return nil
}
