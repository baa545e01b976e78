package runtime

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// JSONSchema describes Env as an object of string values.
func (Env) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 "object",
		Description:          "go env output, keys in reported order.",
		AdditionalProperties: &jsonschema.Schema{Type: "string"},
	}
}

// RuntimeListSchema returns a JSON Schema for the runtime list printed by
// `golocate runtimes -o json` and served by GET /api/runtimes.
func RuntimeListSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{ExpandedStruct: true, DoNotReference: true}
	rtSch := r.Reflect(&Runtime{})
	rtSch.Version = ""
	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "golocate runtimes",
		Description: "Discovered Go runtimes, most preferred first.",
		Type:        "array",
		Items:       rtSch,
	}
}

// MarshalSchema indents the schema to JSON bytes.
func MarshalSchema(sch *jsonschema.Schema) ([]byte, error) {
	return json.MarshalIndent(sch, "", "  ")
}
