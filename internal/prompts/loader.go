// Package prompts holds the externalized prompt templates for the two
// oracle stages plus the deterministic opening builders. Templates are
// stored as JSON files and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// One JSON file per oracle stage, each a flat map of named sections.
const (
	assessmentFile = "assessment.json"
	responseFile   = "response.json"
)

var (
	parseOnce sync.Once
	sections  map[string]map[string]string
	parseErr  error
)

// parseAll decodes every embedded prompt file. The files are fixed at
// compile time, so one pass suffices for the process lifetime.
func parseAll() {
	sections = make(map[string]map[string]string)
	err := fs.WalkDir(promptFiles, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".json") {
			return err
		}
		data, err := promptFiles.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read prompt file %s: %w", path, err)
		}
		var set map[string]string
		if err := json.Unmarshal(data, &set); err != nil {
			return fmt.Errorf("failed to parse prompt file %s: %w", path, err)
		}
		sections[path] = set
		return nil
	})
	parseErr = err
}

func section(filename, key string) (string, error) {
	parseOnce.Do(parseAll)
	if parseErr != nil {
		return "", parseErr
	}
	set, ok := sections[filename]
	if !ok {
		return "", fmt.Errorf("no prompt file %s", filename)
	}
	text, ok := set[key]
	if !ok {
		return "", fmt.Errorf("prompt section %q not found in %s", key, filename)
	}
	return text, nil
}

// mustSection is for sections whose absence is a packaging defect.
func mustSection(filename, key string) string {
	text, err := section(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return text
}

// AssessmentSection returns one named section of the assessment-stage
// prompt.
func AssessmentSection(key string) (string, error) {
	return section(assessmentFile, key)
}

// ResponseSection returns one named section of the response-stage prompt.
func ResponseSection(key string) (string, error) {
	return section(responseFile, key)
}

// Format replaces placeholders of the form {{.Key}} with values from data.
// Placeholders without a matching key are left intact.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{.%s}}", key), value)
	}
	return result
}
