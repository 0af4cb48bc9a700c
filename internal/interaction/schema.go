package interaction

import (
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaID = "inmemory://interaction.json"

// interactionSchema describes the subset of the payload the dispatcher reads.
// Unknown fields are allowed; the platform adds them freely.
const interactionSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["type"],
  "properties": {
    "id": {"type": "string"},
    "type": {"type": "integer", "minimum": 1},
    "data": {
      "type": "object",
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "options": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string"}}
          }
        }
      }
    }
  },
  "if": {"properties": {"type": {"const": 2}}},
  "then": {
    "required": ["data"],
    "properties": {"data": {"required": ["name"]}}
  }
}`

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaID, strings.NewReader(interactionSchema)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	return compiler.Compile(schemaID)
})

func validate(payload any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	return schema.Validate(payload)
}
