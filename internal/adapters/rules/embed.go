package rules

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed data/tables.yaml data/trade_goods.json data/trade_goods.schema.json data/snapshot.schema.json
var dataFS embed.FS

// ErrInvalidRules is returned when a rules or data file fails validation
var ErrInvalidRules = errors.New("invalid rules data")

// readSource returns the file at path, or the embedded default when path is empty
func readSource(path, embedded string) ([]byte, string, error) {
	if path == "" {
		raw, err := dataFS.ReadFile("data/" + embedded)
		return raw, "embedded " + embedded, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return raw, path, nil
}

// compileSchema compiles one of the embedded JSON schemas
func compileSchema(name string) (*jsonschema.Schema, error) {
	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft7
	if err := c.AddResource(name, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to add schema %s: %w", name, err)
	}
	schema, err := c.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}
	return schema, nil
}

// validateJSON checks raw against the named schema before it is decoded
// into Go types
func validateJSON(schemaName, source string, raw []byte) error {
	schema, err := compileSchema(schemaName)
	if err != nil {
		return err
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %s is not valid JSON: %v", ErrInvalidRules, source, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidRules, source, err)
	}
	return nil
}
