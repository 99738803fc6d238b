package agenda

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	// CollectionKey holds the serialized agenda collection.
	CollectionKey = "agendas"

	// ActiveKey holds the serialized id of the active agenda.
	ActiveKey = "active_agenda"
)

// snapshotSchema describes the collection payload.
const snapshotSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "tasks"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "name": {"type": "string", "minLength": 1},
      "tasks": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["id", "text", "completed"],
          "properties": {
            "id": {"type": "string", "minLength": 1},
            "text": {"type": "string", "minLength": 1},
            "completed": {"type": "boolean"}
          }
        }
      }
    }
  }
}`

const schemaURL = "agenda-snapshot.schema.json"

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, strings.NewReader(snapshotSchema)); err != nil {
		panic(fmt.Sprintf("agenda: add snapshot schema: %v", err))
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		panic(fmt.Sprintf("agenda: compile snapshot schema: %v", err))
	}
	return schema
}

// ErrEmptySnapshot is returned by DecodeCollection for a well-formed but
// empty collection.
var ErrEmptySnapshot = errors.New("snapshot contains no agendas")

// SnapshotError describes why a stored collection was rejected.
type SnapshotError struct {
	Path string // location of the offending value, e.g. "[0].tasks[2].text"
	Err  error
}

func (e *SnapshotError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid snapshot at %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("invalid snapshot: %s", e.Err)
}

// Unwrap returns the underlying error.
func (e *SnapshotError) Unwrap() error {
	return e.Err
}

// EncodeCollection serializes agendas as a JSON array.
func EncodeCollection(agendas []Agenda) ([]byte, error) {
	if agendas == nil {
		agendas = []Agenda{}
	}
	out := make([]Agenda, len(agendas))
	for i, a := range agendas {
		out[i] = a.clone()
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal agendas: %w", err)
	}
	return data, nil
}

// DecodeCollection parses and validates a stored collection.
// The result is non-empty and satisfies every model invariant; anything
// else is reported as an error so the caller can fall back to defaults.
func DecodeCollection(data []byte) ([]Agenda, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &SnapshotError{Err: err}
	}
	if err := compiledSchema.Validate(raw); err != nil {
		return nil, schemaError(err)
	}

	var agendas []Agenda
	if err := json.Unmarshal(data, &agendas); err != nil {
		return nil, &SnapshotError{Err: err}
	}
	for i := range agendas {
		agendas[i].Name = strings.TrimSpace(agendas[i].Name)
		for j := range agendas[i].Tasks {
			agendas[i].Tasks[j].Text = strings.TrimSpace(agendas[i].Tasks[j].Text)
		}
	}
	if len(agendas) == 0 {
		return nil, ErrEmptySnapshot
	}
	if err := validateCollection(agendas); err != nil {
		return nil, err
	}
	for i := range agendas {
		if agendas[i].Tasks == nil {
			agendas[i].Tasks = []Task{}
		}
	}
	return agendas, nil
}

// validateCollection checks what the schema cannot express: trimmed
// emptiness and id uniqueness.
func validateCollection(agendas []Agenda) error {
	agendaIDs := make(map[string]bool, len(agendas))
	taskIDs := make(map[string]bool)
	for i, a := range agendas {
		path := fmt.Sprintf("[%d]", i)
		if agendaIDs[a.ID] {
			return &SnapshotError{Path: path + ".id", Err: fmt.Errorf("duplicate agenda id %q", a.ID)}
		}
		agendaIDs[a.ID] = true
		if strings.TrimSpace(a.Name) == "" {
			return &SnapshotError{Path: path + ".name", Err: errors.New("blank name")}
		}
		for j, t := range a.Tasks {
			tpath := fmt.Sprintf("%s.tasks[%d]", path, j)
			if taskIDs[t.ID] {
				return &SnapshotError{Path: tpath + ".id", Err: fmt.Errorf("duplicate task id %q", t.ID)}
			}
			taskIDs[t.ID] = true
			if strings.TrimSpace(t.Text) == "" {
				return &SnapshotError{Path: tpath + ".text", Err: errors.New("blank text")}
			}
		}
	}
	return nil
}

func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &SnapshotError{Err: err}
	}
	// Report the deepest cause; it names the offending value.
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &SnapshotError{Path: pointerToPath(ve.InstanceLocation), Err: errors.New(ve.Message)}
}

// pointerToPath turns a JSON pointer like "/0/tasks/2/text" into "[0].tasks[2].text".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		if part == "" {
			continue
		}
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// EncodeActive serializes the active agenda id as a JSON string, or null.
func EncodeActive(id string) []byte {
	if id == "" {
		return []byte("null")
	}
	data, _ := json.Marshal(id)
	return data
}

// DecodeActive parses a stored active id. A bare, unquoted id is accepted
// as well as a JSON string. Returns "" for null or unusable content.
func DecodeActive(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ""
	}
	var id *string
	if err := json.Unmarshal(data, &id); err == nil {
		if id == nil {
			return ""
		}
		return *id
	}
	if bytes.ContainsAny(data, "\"{}[]\n") {
		return ""
	}
	return string(data)
}
