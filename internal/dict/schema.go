package dict

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// entriesSchema is the structural contract every dictionary file must
// satisfy after decoding, regardless of the source format.
const entriesSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "spelling dictionary entries",
  "type": "object",
  "minProperties": 1,
  "propertyNames": {
    "minLength": 1,
    "maxLength": 2
  },
  "additionalProperties": {
    "type": "array",
    "minItems": 1,
    "items": {
      "type": "string",
      "minLength": 1,
      "pattern": "^[\\x20-\\x7e]+$"
    }
  }
}`

var compiledSchema = func() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("entries.schema.json", strings.NewReader(entriesSchema)); err != nil {
		panic("dict: add schema resource: " + err.Error())
	}
	schema, err := compiler.Compile("entries.schema.json")
	if err != nil {
		panic("dict: compile schema: " + err.Error())
	}
	return schema
}()

// validateEntries checks decoded dictionary entries against the schema.
// Schema validation runs on a JSON round-trip of the decoded value so
// TOML and YAML sources are held to the same contract.
func validateEntries(entries map[string][]string) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("dict: marshal entries: %w", err)
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("dict: unmarshal entries: %w", err)
	}
	if err := compiledSchema.Validate(instance); err != nil {
		return fmt.Errorf("dict: schema validation: %w", err)
	}
	return nil
}
