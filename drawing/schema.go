package drawing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "reef://drawing.schema.json"

// drawingSchema accepts an array of drawings. Only the layers are required;
// id, createdAt and removed are optional so freshly exported artwork can be
// imported before the store has assigned identity to it.
const drawingSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "definitions": {
    "point": {
      "type": "object",
      "required": ["x", "y"],
      "properties": {
        "x": {"type": "number"},
        "y": {"type": "number"}
      }
    },
    "stroke": {
      "type": "object",
      "required": ["points", "color", "size"],
      "properties": {
        "points": {"type": "array", "items": {"$ref": "#/definitions/point"}},
        "color": {"type": "string", "pattern": "^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$"},
        "size": {"type": "number", "exclusiveMinimum": 0}
      }
    },
    "layer": {"type": "array", "items": {"$ref": "#/definitions/stroke"}}
  },
  "type": "array",
  "items": {
    "type": "object",
    "required": ["tail", "leftClaw", "rightClaw"],
    "properties": {
      "id": {"type": "string"},
      "tail": {"$ref": "#/definitions/layer"},
      "leftClaw": {"$ref": "#/definitions/layer"},
      "rightClaw": {"$ref": "#/definitions/layer"},
      "createdAt": {"type": "integer", "minimum": 0},
      "removed": {"type": "boolean"}
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString(schemaURL, drawingSchema)
	})
	return schema, schemaErr
}

// Validate checks raw JSON against the drawing schema and decodes it.
func Validate(raw []byte) ([]Drawing, error) {
	s, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling drawing schema: %w", err)
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing drawings: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return nil, fmt.Errorf("validating drawings: %w", err)
	}

	var out []Drawing
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decoding drawings: %w", err)
	}
	return out, nil
}
