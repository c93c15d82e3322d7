package specs

import (
	"fmt"
	"strings"
)

// ConfigurationError reports everything wrong with a candidate spec at
// once rather than failing on the first issue.
type ConfigurationError struct {
	SpecID string
	Issues []string
}

func (e *ConfigurationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid interview spec %s:\n", e.SpecID)
	for i, issue := range e.Issues {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, issue)
	}
	return sb.String()
}

// TemplateNotFoundError indicates an unknown archetype template name.
type TemplateNotFoundError struct {
	Name string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("interview template not found: %s", e.Name)
}
