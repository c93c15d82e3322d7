package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessmentSection(t *testing.T) {
	text, err := AssessmentSection("system_case")
	require.NoError(t, err)
	assert.NotEmpty(t, text)
	assert.Contains(t, text, "assessment authority")
}

func TestResponseSection(t *testing.T) {
	text, err := ResponseSection("system")
	require.NoError(t, err)
	assert.NotEmpty(t, text)
}

func TestSectionUnknownKey(t *testing.T) {
	_, err := AssessmentSection("nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustSectionPanics(t *testing.T) {
	assert.Panics(t, func() {
		mustSection(assessmentFile, "nonexistent-key")
	})
}

func TestFormat(t *testing.T) {
	out := Format("Persona: {{.Persona}}, Tone: {{.Tone}}", map[string]string{
		"Persona": "partner",
		"Tone":    "measured",
	})
	assert.Equal(t, "Persona: partner, Tone: measured", out)
}

func TestFormat_MissingPlaceholderLeftIntact(t *testing.T) {
	out := Format("Hello {{.Name}}", map[string]string{"Other": "x"})
	assert.Equal(t, "Hello {{.Name}}", out)
}
