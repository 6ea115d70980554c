package registry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/chatscript-lang/chatscript/core/script"
)

// definitionSchema constrains a command definitions file: a JSON array of
// command objects. Validation runs before decoding so a malformed file is
// rejected with a schema path instead of a half-loaded registry.
const definitionSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["name"],
    "additionalProperties": false,
    "properties": {
      "name": {"type": "string", "pattern": "^[A-Za-z0-9_.-]+$"},
      "minArgs": {"type": "integer", "minimum": 0},
      "maxArgs": {"type": "integer", "minimum": -1},
      "splitArgs": {"type": "boolean"},
      "splitCap": {"type": "integer", "minimum": 0},
      "rawQuotes": {"type": "boolean"}
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("commands.schema.json", definitionSchema)

type commandDef struct {
	Name      string `json:"name"`
	MinArgs   int    `json:"minArgs"`
	MaxArgs   int    `json:"maxArgs"`
	SplitArgs bool   `json:"splitArgs"`
	SplitCap  int    `json:"splitCap"`
	RawQuotes bool   `json:"rawQuotes"`
}

// Load reads and validates a JSON definitions document and returns the
// decoded command specs.
func Load(r io.Reader) ([]*script.CommandSpec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading definitions: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing definitions: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validating definitions: %w", err)
	}

	var defs []commandDef
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("decoding definitions: %w", err)
	}

	specs := make([]*script.CommandSpec, 0, len(defs))
	for _, d := range defs {
		specs = append(specs, &script.CommandSpec{
			Name:      d.Name,
			MinArgs:   d.MinArgs,
			MaxArgs:   d.MaxArgs,
			SplitArgs: d.SplitArgs,
			SplitCap:  d.SplitCap,
			RawQuotes: d.RawQuotes,
		})
	}
	return specs, nil
}

// LoadFile loads definitions from a file on disk into new specs.
func LoadFile(path string) ([]*script.CommandSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// LoadDefinitions merges a definitions file into the registry.
func (r *Registry) LoadDefinitions(path string) error {
	specs, err := LoadFile(path)
	if err != nil {
		return err
	}
	for _, spec := range specs {
		if err := r.Register(spec); err != nil {
			return err
		}
	}
	return nil
}
