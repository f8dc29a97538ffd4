package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema names a JSON Schema that decoded content must satisfy.
type Schema struct {
	// Name identifies this schema in the compile cache. Kebab-case,
	// e.g. "question-analysis".
	Name string

	// Description is a human-readable description of the payload.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

var fencedBlock = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*\\n?(.*?)\\n?```")

// StripFences removes a markdown code fence around a JSON payload. When a
// complete fenced block is present its body is returned; otherwise any
// stray fence markers are dropped.
func StripFences(content string) string {
	s := strings.TrimSpace(content)
	if m := fencedBlock.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// Decode strips fences from content, checks it against schema (when not
// nil) and unmarshals it into out. Every failure is an *ErrParse carrying
// the raw content.
func Decode(content string, schema *Schema, out any) error {
	body := StripFences(content)

	var parsed any
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return &ErrParse{Content: content, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	if schema != nil {
		compiled, err := getCompiledSchema(schema)
		if err != nil {
			return &ErrParse{Content: content, Err: fmt.Errorf("compile schema %q: %w", schema.Name, err)}
		}
		if err := compiled.Validate(parsed); err != nil {
			return &ErrParse{Content: content, Err: fmt.Errorf("schema validation failed: %w", err)}
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return &ErrParse{Content: content, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants plain decoded JSON values, so round-trip the map.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
