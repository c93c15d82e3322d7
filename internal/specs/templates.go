package specs

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/interview-agent/internal/types"
)

//go:embed templates/*.json
var templateFiles embed.FS

// Template names for the three built-in archetypes.
const (
	TemplateCase       = "case_interview"
	TemplateFirstRound = "first_round"
	TemplateTechnical  = "technical_interview"
)

// Template carries the per-archetype defaults: which competencies are
// selected at which tier, how the interviewer behaves, the phase plan,
// and the hard session limits.
type Template struct {
	TemplateID   string                   `json:"template_id"`
	Competencies []TemplateCompetency     `json:"competencies"`
	Heuristics   types.Heuristics         `json:"heuristics"`
	Phases       []types.PhaseConfig      `json:"phases"`
	Constraints  types.SessionConstraints `json:"constraints"`
}

// TemplateCompetency selects one rubric competency for an archetype.
// InheritCaseFlags marks competencies that absorb the case material's
// own red/green flag patterns on top of the rubric's.
type TemplateCompetency struct {
	ID               string               `json:"id"`
	Tier             types.CompetencyTier `json:"tier"`
	InheritCaseFlags bool                 `json:"inherit_case_flags,omitempty"`
}

// cache stores parsed templates to avoid repeated JSON parsing
var (
	templateCache = make(map[string]*Template)
	templateMu    sync.RWMutex
)

// LoadTemplate loads a built-in archetype template by name.
func LoadTemplate(name string) (*Template, error) {
	templateMu.RLock()
	if tpl, ok := templateCache[name]; ok {
		templateMu.RUnlock()
		return tpl, nil
	}
	templateMu.RUnlock()

	data, err := templateFiles.ReadFile("templates/" + name + ".json")
	if err != nil {
		return nil, &TemplateNotFoundError{Name: name}
	}

	var tpl Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	templateMu.Lock()
	templateCache[name] = &tpl
	templateMu.Unlock()

	return &tpl, nil
}

// AvailableTemplates lists the built-in template names, sorted.
func AvailableTemplates() []string {
	entries, err := templateFiles.ReadDir("templates")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}
