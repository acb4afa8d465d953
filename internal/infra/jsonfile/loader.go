// Package jsonfile loads the question catalog from a JSON document, either
// the bundled dataset or a file on disk.
package jsonfile

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/domain"
)

//go:embed data/chimie_questions.json
var bundled []byte

// questionSchema describes a single catalog record. Records that do not
// match are skipped, the rest of the document still loads.
const questionSchema = `{
  "type": "object",
  "required": ["id", "chapter", "text", "options", "correctIndex"],
  "properties": {
    "id": {"type": "integer"},
    "chapter": {"type": "string"},
    "text": {"type": "string"},
    "options": {"type": "array", "items": {"type": "string"}},
    "correctIndex": {"type": "integer"}
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Loader reads the catalog document on every call; pair it with a caching
// repository.
type Loader struct {
	path string
}

// NewLoader returns a loader for path. An empty path selects the bundled
// dataset.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

func (l *Loader) LoadQuestions(_ context.Context) ([]domain.Question, error) {
	data := bundled
	if l.path != "" {
		raw, err := os.ReadFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("%w: read catalog: %v", domain.ErrDataUnavailable, err)
		}
		data = raw
	}
	return Parse(data)
}

// Bundled returns the embedded dataset.
func Bundled() ([]domain.Question, error) {
	return Parse(bundled)
}

// Parse decodes a catalog document. The document itself must be a JSON
// array; individual records that fail the schema are dropped. Field names
// are matched case-insensitively.
func Parse(data []byte) ([]domain.Question, error) {
	schema, err := recordSchema()
	if err != nil {
		return nil, err
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decode catalog: %v", domain.ErrDataUnavailable, err)
	}

	out := make([]domain.Question, 0, len(records))
	for _, rec := range records {
		var fields map[string]any
		if err := json.Unmarshal(rec, &fields); err != nil {
			continue
		}
		fields = canonicalKeys(fields)
		if err := schema.Validate(fields); err != nil {
			continue
		}
		normalized, err := json.Marshal(fields)
		if err != nil {
			continue
		}
		var q domain.Question
		if err := json.Unmarshal(normalized, &q); err != nil {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

var canonical = map[string]string{
	"id":           "id",
	"chapter":      "chapter",
	"text":         "text",
	"options":      "options",
	"correctindex": "correctIndex",
}

func canonicalKeys(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if name, ok := canonical[strings.ToLower(k)]; ok {
			out[name] = v
			continue
		}
		out[k] = v
	}
	return out
}

func recordSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(questionSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse question schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://question.json", def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile("schema://question.json")
	})
	return compiled, compileErr
}
