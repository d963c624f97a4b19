package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

var (
	errEmptyDocument = errors.New("empty document")
	errNoTasks       = errors.New(`want an object with a "Tasks" array or a bare array`)
)

// tasksKey is the collection key of the load source: {"Tasks": [...]}.
const tasksKey = "Tasks"

// Decode parses a task document. data may be JSON or JSONC (comments and
// trailing commas), either an object with a "Tasks" array or a bare array.
// A null document, a null array or an object without "Tasks" is malformed.
//
// Decode only checks the document shape. Field constraints are enforced by
// [Store.Load].
func Decode(data []byte) ([]Task, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, malformed(errEmptyDocument)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, malformed(err)
	}

	raw := bytes.TrimSpace(standardized)

	if len(raw) == 0 || raw[0] != '[' {
		var doc map[string]json.RawMessage

		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, malformed(err)
		}

		inner, ok := doc[tasksKey]
		if !ok {
			return nil, malformed(errNoTasks)
		}

		raw = inner
	}

	var tasks []Task

	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, malformed(err)
	}

	if tasks == nil {
		return nil, malformed(errNoTasks)
	}

	return tasks, nil
}

// ReadFile reads and decodes the task document at path.
// A missing file is reported with an error satisfying os.IsNotExist.
func ReadFile(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	tasks, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return tasks, nil
}

func malformed(err error) *ValidationError {
	return fieldErr("", "tasks", err.Error(), ReasonMalformed)
}
