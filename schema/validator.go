package configschema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed catalog_config.schema.json
var catalogSchemaJSON string

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

// ValidateCatalogPayload checks a catalog config document against the
// embedded schema plus the semantic rules the schema cannot express.
func ValidateCatalogPayload(payload []byte) error {
	value, err := decodeStrictJSON(payload)
	if err != nil {
		return fmt.Errorf("decode catalog JSON: %w", err)
	}

	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}

	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return validateSemantics(value)
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource("catalog_config.schema.json", strings.NewReader(catalogSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}

		schema, err := compiler.Compile("catalog_config.schema.json")
		if err != nil {
			compiledSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}

		compiledSchema = schema
	})

	if compiledSchemaErr != nil {
		return nil, compiledSchemaErr
	}
	if compiledSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return compiledSchema, nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("payload is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("payload contains trailing content")
	}

	return value, nil
}

// validateSemantics enforces category-name uniqueness and that every class
// with a cooldown is actually used by some category.
func validateSemantics(value any) error {
	root, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("catalog config must be an object")
	}

	rawCategories, _ := root["categories"].([]any)
	names := make(map[string]struct{}, len(rawCategories))
	classes := make(map[string]struct{})
	for i, rawCategory := range rawCategories {
		category, ok := rawCategory.(map[string]any)
		if !ok {
			continue
		}
		name, _ := category["name"].(string)
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("categories[%d].name must not be blank", i)
		}
		if _, dup := names[name]; dup {
			return fmt.Errorf("duplicate category name %q", name)
		}
		names[name] = struct{}{}
		if class, _ := category["class"].(string); class != "" {
			classes[class] = struct{}{}
		}
	}

	if cooldowns, ok := root["class_cooldown_hours"].(map[string]any); ok {
		for class := range cooldowns {
			if _, used := classes[class]; !used {
				return fmt.Errorf("class_cooldown_hours references unused class %q", class)
			}
		}
	}

	if exempt, ok := root["repeat_exempt"].([]any); ok {
		for i, rawName := range exempt {
			name, _ := rawName.(string)
			if _, known := names[name]; !known {
				return fmt.Errorf("repeat_exempt[%d] references unknown category %q", i, name)
			}
		}
	}

	return nil
}
