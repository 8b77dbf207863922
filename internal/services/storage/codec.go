package storage

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/riordanpawley/taskmaster/internal/domain"
)

//go:embed todos.schema.json
var schemaJSON string

const schemaURL = "todos.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func taskSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// Encode serializes the collection as a JSON array with 2-space indentation
// and a trailing newline
func Encode(tasks []domain.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, &domain.StorageError{Op: "encode", Err: err}
	}
	return append(data, '\n'), nil
}

// Decode parses and validates a stored collection. Records must match the
// embedded schema and IDs must be unique.
func Decode(data []byte) ([]domain.Task, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &domain.StorageError{Op: "decode", Err: err}
	}

	schema, err := taskSchema()
	if err != nil {
		return nil, &domain.StorageError{Op: "decode", Err: err}
	}
	if err := schema.Validate(raw); err != nil {
		return nil, &domain.StorageError{Op: "decode", Err: schemaViolation(err)}
	}

	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, &domain.StorageError{Op: "decode", Err: err}
	}

	seen := make(map[int64]bool, len(tasks))
	for i, t := range tasks {
		if seen[t.ID] {
			return nil, &domain.StorageError{Op: "decode", Err: fmt.Errorf("[%d].id: duplicate id %d", i, t.ID)}
		}
		seen[t.ID] = true
	}

	return tasks, nil
}

// schemaViolation reduces a schema error to its first leaf cause
func schemaViolation(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if path := jsonPointerToPath(ve.InstanceLocation); path != "" {
		return fmt.Errorf("%s: %s", path, ve.Message)
	}
	return fmt.Errorf("%s", ve.Message)
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var path string
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
