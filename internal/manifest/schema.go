package manifest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/clitool/pkg/value"
)

// Schema is the JSON Schema every manifest document satisfies. Command and
// parameter names must not start with '-' or contain Unicode white space.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["program", "commands"],
  "properties": {
    "program": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "commands": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "params"],
        "properties": {
          "name": {"$ref": "#/$defs/token"},
          "short": {"type": "string"},
          "params": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name", "type"],
              "properties": {
                "name": {"$ref": "#/$defs/token"},
                "type": {"type": "string", "minLength": 1},
                "usage": {"type": "string"}
              },
              "additionalProperties": false
            }
          }
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false,
  "$defs": {
    "token": {"type": "string", "pattern": "^[^-\\s\\v\\x{85}\\p{Z}][^\\s\\v\\x{85}\\p{Z}]*$"}
  }
}`

const schemaURL = "schema://clitool/manifest.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, strings.NewReader(Schema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// Validate checks a JSON or YAML manifest against Schema, then checks that
// every parameter type names a converter registered with package value.
func Validate(data []byte) error {
	schema, err := compiled()
	if err != nil {
		return fmt.Errorf("compiling manifest schema: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding manifest: %w", err)
	}
	// Re-decode through JSON so numbers and maps have the shapes the
	// validator expects.
	js, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("decoding manifest: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(js))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decoding manifest: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("invalid manifest: %w", err)
	}

	var typed Document
	if err := json.Unmarshal(js, &typed); err != nil {
		return fmt.Errorf("decoding manifest: %w", err)
	}
	return checkTypes(&typed)
}

func checkTypes(d *Document) error {
	for _, c := range d.Commands {
		for _, p := range c.Params {
			if _, ok := value.Lookup(p.Type); !ok {
				return fmt.Errorf("invalid manifest: command %s: argument %s has unknown type %q (known: %s)",
					c.Name, p.Name, p.Type, strings.Join(value.Names(), ", "))
			}
		}
	}
	return nil
}

// MarshalBinary encodes d as canonical CBOR, stable across runs.
func (d *Document) MarshalBinary() ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("creating CBOR encoder: %w", err)
	}
	type documentAlias Document
	data, err := encMode.Marshal((*documentAlias)(d))
	if err != nil {
		return nil, fmt.Errorf("CBOR encoding failed: %w", err)
	}
	return data, nil
}

// Fingerprint returns the hex SHA-256 of the canonical encoding. It changes
// whenever a command, parameter name, type or usage changes.
func (d *Document) Fingerprint() (string, error) {
	data, err := d.MarshalBinary()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
