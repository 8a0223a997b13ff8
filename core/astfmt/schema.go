package astfmt

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/imp-lang/imp/core/invariant"
	"github.com/imp-lang/imp/pkgs/symtab"
)

const schemaURL = "schema://astfmt/document.json"

// documentSchema validates the JSON rendering of a Document. Node kinds and
// their allowed fields mirror the union in astfmt.go; symbol spellings must
// satisfy the identifier format.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["version", "command", "symbols"],
  "additionalProperties": false,
  "properties": {
    "version": {"const": 1},
    "symbols": {
      "type": "array",
      "items": {"type": "string", "format": "identifier"}
    },
    "command": {"$ref": "#/$defs/node"}
  },
  "$defs": {
    "node": {
      "type": "object",
      "required": ["kind"],
      "additionalProperties": false,
      "properties": {
        "kind": {
          "enum": [
            "var", "num", "add", "sub", "mul",
            "true", "false", "eq", "le", "not", "and",
            "skip", "assign", "seq", "if", "while"
          ]
        },
        "index": {"type": "integer", "minimum": 0},
        "value": {"type": "integer", "minimum": 0},
        "left": {"$ref": "#/$defs/node"},
        "right": {"$ref": "#/$defs/node"},
        "child": {"$ref": "#/$defs/node"},
        "expr": {"$ref": "#/$defs/node"},
        "cond": {"$ref": "#/$defs/node"},
        "then": {"$ref": "#/$defs/node"},
        "else": {"$ref": "#/$defs/node"},
        "body": {"$ref": "#/$defs/node"},
        "first": {"$ref": "#/$defs/node"},
        "rest": {"$ref": "#/$defs/node"}
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schemaVal  *jsonschema.Schema
)

// compiledDocumentSchema compiles the embedded schema once. The schema text
// is a compile-time constant, so failure to compile is a bug, not input. The
// identifier format reuses the symbol table's token predicate, so the schema
// and the parser agree on what an identifier is.
func compiledDocumentSchema() *jsonschema.Schema {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true

		if compiler.Formats == nil {
			compiler.Formats = make(map[string]func(interface{}) bool)
		}
		compiler.Formats["identifier"] = func(v interface{}) bool {
			s, ok := v.(string)
			if !ok {
				return true // type validation happens separately
			}
			return symtab.IsIdent(s)
		}

		err := compiler.AddResource(schemaURL, strings.NewReader(documentSchema))
		invariant.ExpectNoError(err, "adding the embedded document schema")

		schemaVal, err = compiler.Compile(schemaURL)
		invariant.ExpectNoError(err, "compiling the embedded document schema")
	})
	return schemaVal
}

// ValidateJSON checks that data is a well-formed JSON document per the
// embedded schema.
func ValidateJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return compiledDocumentSchema().Validate(v)
}
