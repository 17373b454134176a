package document

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/neilberkman/kapro/internal/core/models"
)

// MaxDepth bounds object nesting so the recursive theme tree stays finite
const MaxDepth = 64

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaJSON string
)

// Schema returns the JSON Schema reflected from models.Document. The same
// schema is sent to the provider and used to check its responses.
func Schema() *jsonschema.Schema {
	schemaOnce.Do(func() {
		r := &jsonschema.Reflector{
			RequiredFromJSONSchemaTags: true,
			ExpandedStruct:             true,
			AllowAdditionalProperties:  true,
		}
		schema = r.Reflect(&models.Document{})
		b, err := json.Marshal(schema)
		if err != nil {
			panic(fmt.Sprintf("document: marshal schema: %v", err))
		}
		schemaJSON = string(b)
	})
	return schema
}

// SchemaJSON returns the schema serialized as compact JSON
func SchemaJSON() string {
	Schema()
	return schemaJSON
}

// checker walks a decoded JSON value against the reflected schema, collecting
// absent required keys. Type mismatches abort the walk.
type checker struct {
	defs    jsonschema.Definitions
	missing []string
}

func (c *checker) resolve(s *jsonschema.Schema) (*jsonschema.Schema, error) {
	for s != nil && s.Ref != "" {
		name := strings.TrimPrefix(s.Ref, "#/$defs/")
		def, ok := c.defs[name]
		if !ok {
			return nil, fmt.Errorf("unresolved schema reference %q", s.Ref)
		}
		s = def
	}
	return s, nil
}

func (c *checker) check(s *jsonschema.Schema, v any, path string, depth int) error {
	s, err := c.resolve(s)
	if err != nil || s == nil {
		return err
	}

	switch s.Type {
	case "object":
		if depth > MaxDepth {
			return fmt.Errorf("%s: nesting deeper than %d", displayPath(path), MaxDepth)
		}
		obj, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: expected object", displayPath(path))
		}
		for _, key := range s.Required {
			if val, present := obj[key]; !present || val == nil {
				c.missing = append(c.missing, joinPath(path, key))
			}
		}
		if s.Properties == nil {
			return nil
		}
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			val, present := obj[pair.Key]
			if !present || val == nil {
				continue
			}
			if err := c.check(pair.Value, val, joinPath(path, pair.Key), depth+1); err != nil {
				return err
			}
		}
	case "array":
		arr, ok := v.([]any)
		if !ok {
			return fmt.Errorf("%s: expected array", displayPath(path))
		}
		for i, item := range arr {
			if item == nil {
				return fmt.Errorf("%s[%d]: null element", displayPath(path), i)
			}
			if err := c.check(s.Items, item, fmt.Sprintf("%s[%d]", path, i), depth); err != nil {
				return err
			}
		}
	case "string":
		if _, ok := v.(string); !ok {
			return fmt.Errorf("%s: expected string", displayPath(path))
		}
	}
	return nil
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func displayPath(path string) string {
	if path == "" {
		return "document"
	}
	return path
}
