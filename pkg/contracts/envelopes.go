// Package contracts проверяет конверты ответов upstream API по встроенным JSON Schema.
package contracts

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/dendisuhubdy/mybalivillas/schemas"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Kind - "<имя конверта>/v<версия>", соответствует пути envelopes/<имя>/v<версия>.json.
type Kind string

const (
	KindAPIResponse            Kind = "api-response/v1"
	KindPaginatedResponse      Kind = "paginated-response/v1"
	KindAdminPaginatedResponse Kind = "admin-paginated-response/v1"
)

const baseURL = "https://mybalivillas.local/schemas/"

var (
	compileOnce sync.Once
	compiled    map[Kind]*jsonschema.Schema
	compileErr  error
)

func load() (map[Kind]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled, compileErr = compileAll(schemas.SchemasFS)
	})
	return compiled, compileErr
}

func compileAll(fsys fs.FS) (map[Kind]*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	var paths []string

	err := fs.WalkDir(fsys, "envelopes", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := fsys.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := compiler.AddResource(baseURL+path, file); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking schema resources: %w", err)
	}

	out := make(map[Kind]*jsonschema.Schema, len(paths))
	for _, path := range paths {
		schema, err := compiler.Compile(baseURL + path)
		if err != nil {
			return nil, fmt.Errorf("could not compile schema %s: %w", path, err)
		}
		out[kindFromPath(path)] = schema
	}
	return out, nil
}

// kindFromPath: "envelopes/api-response/v1.json" -> "api-response/v1".
func kindFromPath(path string) Kind {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(path, "envelopes/"), ".json")
	return Kind(trimmed)
}

// ValidateEnvelope проверяет тело ответа по схеме конверта.
func ValidateEnvelope(kind Kind, body []byte) error {
	all, err := load()
	if err != nil {
		return err
	}
	schema, ok := all[kind]
	if !ok {
		return fmt.Errorf("schema for envelope '%s' not found", kind)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("response body is not a valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("envelope %s validation failed: %w", kind, err)
	}
	return nil
}
