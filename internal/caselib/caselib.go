// Package caselib loads authored interview material from disk. A
// library directory holds one JSON or YAML document per interview:
// each document names its interview type and carries the matching
// material block, and is validated against a JSON Schema before it is
// admitted. The library turns material into runnable interview specs.
package caselib

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/interview-agent/internal/schemas"
	"github.com/jonathan/interview-agent/internal/specs"
	"github.com/jonathan/interview-agent/internal/types"
)

//go:embed schema/material.schema.json
var materialSchema []byte

// Material is one authored interview document. Exactly one of the
// material blocks is set, matching InterviewType.
type Material struct {
	InterviewType types.InterviewType      `json:"interview_type" yaml:"interview_type"`
	Case          *specs.CaseMaterial      `json:"case,omitempty" yaml:"case,omitempty"`
	Screening     *specs.ScreeningMaterial `json:"screening,omitempty" yaml:"screening,omitempty"`
	Problem       *specs.ProblemMaterial   `json:"problem,omitempty" yaml:"problem,omitempty"`
}

// Entry describes one loaded document for listing purposes.
type Entry struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	InterviewType types.InterviewType `json:"interview_type"`
	Path          string              `json:"path"`
}

// NotFoundError indicates the library holds no material with the
// requested id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("material not found: %s", e.ID)
}

// LoadError indicates a material file could not be parsed or failed
// schema validation.
type LoadError struct {
	Path  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load material %s: %v", e.Path, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Library is an in-memory index of validated interview material.
type Library struct {
	entries map[string]*libEntry
	order   []string
}

type libEntry struct {
	entry    Entry
	material Material
}

// Load reads every *.json, *.yaml and *.yml file under dir, validates
// each against the material schema, and indexes the results by id.
// Duplicate ids and invalid documents fail the whole load.
func Load(dir string) (*Library, error) {
	names, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read library directory: %w", err)
	}

	lib := &Library{entries: make(map[string]*libEntry)}
	for _, de := range names {
		if de.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(de.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dir, de.Name())
		material, err := loadFile(path, ext)
		if err != nil {
			return nil, err
		}

		entry := Entry{
			ID:            materialID(material, de.Name()),
			Title:         materialTitle(material),
			InterviewType: material.InterviewType,
			Path:          path,
		}
		if _, exists := lib.entries[entry.ID]; exists {
			return nil, &LoadError{Path: path, Cause: fmt.Errorf("duplicate material id %q", entry.ID)}
		}
		lib.entries[entry.ID] = &libEntry{entry: entry, material: *material}
		lib.order = append(lib.order, entry.ID)
	}

	sort.Strings(lib.order)
	return lib, nil
}

// LoadFile reads and validates a single material document.
func LoadFile(path string) (*Material, error) {
	return loadFile(path, strings.ToLower(filepath.Ext(path)))
}

func loadFile(path, ext string) (*Material, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Cause: err}
	}

	var material Material
	if ext == ".json" {
		if err := schemas.ValidateBytes(materialSchema, data); err != nil {
			return nil, &LoadError{Path: path, Cause: err}
		}
		if err := json.Unmarshal(data, &material); err != nil {
			return nil, &LoadError{Path: path, Cause: err}
		}
		return &material, nil
	}

	// YAML goes through an untyped decode so the schema sees the same
	// document shape a JSON loader would.
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Path: path, Cause: err}
	}
	if err := schemas.ValidateDocument(materialSchema, doc); err != nil {
		return nil, &LoadError{Path: path, Cause: err}
	}
	if err := yaml.Unmarshal(data, &material); err != nil {
		return nil, &LoadError{Path: path, Cause: err}
	}
	return &material, nil
}

// materialID prefers the authored id and falls back to the filename
// stem for material kinds that carry no id of their own.
func materialID(m *Material, filename string) string {
	switch {
	case m.Case != nil && m.Case.ID != "":
		return m.Case.ID
	case m.Problem != nil && m.Problem.ID != "":
		return m.Problem.ID
	}
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

func materialTitle(m *Material) string {
	switch {
	case m.Case != nil:
		return m.Case.Title
	case m.Problem != nil:
		return m.Problem.Title
	case m.Screening != nil:
		return m.Screening.RoleTitle
	}
	return ""
}

// List returns the loaded entries sorted by id.
func (l *Library) List() []Entry {
	entries := make([]Entry, 0, len(l.order))
	for _, id := range l.order {
		entries = append(entries, l.entries[id].entry)
	}
	return entries
}

// Get returns the material for one id.
func (l *Library) Get(id string) (*Material, error) {
	le, ok := l.entries[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	material := le.material
	return &material, nil
}

// BuildSpec assembles a validated interview spec from one library
// entry.
func (l *Library) BuildSpec(id string) (*types.InterviewSpec, error) {
	material, err := l.Get(id)
	if err != nil {
		return nil, err
	}
	return BuildSpec(material)
}

// BuildSpec assembles a validated interview spec from loose material,
// dispatching on the declared interview type.
func BuildSpec(material *Material) (*types.InterviewSpec, error) {
	switch material.InterviewType {
	case types.InterviewCase:
		if material.Case == nil {
			return nil, fmt.Errorf("case material requires a case block")
		}
		return specs.NewCaseSpec(*material.Case)
	case types.InterviewFirstRound:
		if material.Screening == nil {
			return nil, fmt.Errorf("first_round material requires a screening block")
		}
		return specs.NewFirstRoundSpec(*material.Screening)
	case types.InterviewTechnical:
		if material.Problem == nil {
			return nil, fmt.Errorf("technical material requires a problem block")
		}
		return specs.NewTechnicalSpec(*material.Problem)
	default:
		return nil, fmt.Errorf("unknown interview type: %s", material.InterviewType)
	}
}

// Len reports the number of loaded entries.
func (l *Library) Len() int {
	return len(l.entries)
}
