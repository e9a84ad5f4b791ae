package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrUnknownSchema is returned when validating against a name that was never added
var ErrUnknownSchema = errors.New("unknown schema")

// Violation is one failed keyword at one instance location
type Violation struct {
	Location string
	Keyword  string
}

func (v Violation) String() string {
	if v.Keyword == "" {
		return v.Location
	}
	return v.Location + ": " + v.Keyword
}

// Error lists every leaf violation of a document against a named schema
type Error struct {
	Schema     string
	Violations []Violation
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%s: %s", e.Schema, strings.Join(parts, "; "))
}

// Schemas is a set of compiled JSON schemas addressed by file name.
// Safe for concurrent use once populated.
type Schemas struct {
	mu       sync.RWMutex
	compiler *jsonschema.Compiler
	compiled map[string]*jsonschema.Schema
}

// NewSchemas returns an empty set
func NewSchemas() *Schemas {
	return &Schemas{
		compiler: jsonschema.NewCompiler(),
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// LoadFS compiles every file of fsys matching pattern, keyed by base name
func LoadFS(fsys fs.FS, pattern string) (*Schemas, error) {
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, err
	}
	s := NewSchemas()
	for _, p := range matches {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", p, err)
		}
		if err := s.Add(path.Base(p), data); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add compiles schema and registers it under name. Names are unique within a set.
func (s *Schemas) Add(name string, schema []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schema))
	if err != nil {
		return fmt.Errorf("parse schema %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.compiled[name]; ok {
		return fmt.Errorf("schema %s already registered", name)
	}
	if err := s.compiler.AddResource(name, doc); err != nil {
		return fmt.Errorf("add schema %s: %w", name, err)
	}
	compiled, err := s.compiler.Compile(name)
	if err != nil {
		return fmt.Errorf("compile schema %s: %w", name, err)
	}
	s.compiled[name] = compiled
	return nil
}

// Names lists the registered schemas in sorted order
func (s *Schemas) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.compiled))
	for n := range s.compiled {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Validate checks a JSON document against the named schema.
// A failed check returns *Error; malformed JSON is reported as-is.
func (s *Schemas) Validate(name string, data []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	return s.ValidateValue(name, doc)
}

// ValidateValue checks an already decoded document (maps, slices, json.Number, ...)
func (s *Schemas) ValidateValue(name string, doc any) error {
	s.mu.RLock()
	schema, ok := s.compiled[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}

	err := schema.Validate(doc)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	out := &Error{Schema: name}
	collect(verr, &out.Violations)
	return out
}

// collect keeps only leaf causes; inner nodes just repeat "doesn't validate"
func collect(err *jsonschema.ValidationError, into *[]Violation) {
	if len(err.Causes) > 0 {
		for _, c := range err.Causes {
			collect(c, into)
		}
		return
	}
	loc := "/" + strings.Join(err.InstanceLocation, "/")
	v := Violation{Location: loc}
	if err.ErrorKind != nil {
		v.Keyword = strings.Join(err.ErrorKind.KeywordPath(), ".")
	}
	*into = append(*into, v)
}
