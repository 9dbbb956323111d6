package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const taskSchemaURL = "https://todo-tui.local/tasks.schema.json"

// taskSchema is the only file shape accepted on load. Anything else is
// treated as corrupt.
const taskSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "additionalProperties": false,
    "required": ["description", "completed", "priority", "due_date"],
    "properties": {
      "description": {"type": "string", "pattern": "\\S"},
      "completed": {"type": "boolean"},
      "priority": {"enum": ["Low", "Medium", "High"]},
      "due_date": {
        "type": "string",
        "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$",
        "format": "date"
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true
		if err := compiler.AddResource(taskSchemaURL, strings.NewReader(taskSchema)); err != nil {
			schemaErr = fmt.Errorf("add task schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(taskSchemaURL)
	})
	return compiledSchema, schemaErr
}

// decodeRecords parses data as a task file, rejecting any document that does
// not match taskSchema.
func decodeRecords(data []byte) ([]Record, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}

	schema, err := loadSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate task file: %s", firstSchemaError(err))
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode task file: %w", err)
	}
	return records, nil
}

// firstSchemaError reduces a nested schema error to its first leaf, which
// is enough for a log line.
func firstSchemaError(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if ve.InstanceLocation == "" {
		return ve.Message
	}
	return fmt.Sprintf("%s: %s", ve.InstanceLocation, ve.Message)
}
