package rubric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-agent/internal/types"
)

func TestGet_KnownCompetency(t *testing.T) {
	comp, ok := Get("problem_structuring")
	require.True(t, ok)
	assert.Equal(t, "problem_structuring", comp.ID)
	assert.NotEmpty(t, comp.Name)

	// all five levels defined
	for level := 1; level <= 5; level++ {
		def, exists := comp.Levels[level]
		require.True(t, exists, "level %d should be defined", level)
		assert.Equal(t, level, def.Level)
		assert.NotEmpty(t, def.Description)
	}
}

func TestGet_UnknownCompetency(t *testing.T) {
	_, ok := Get("time_travel")
	assert.False(t, ok)
}

func TestCatalog_EveryCompetencyComplete(t *testing.T) {
	for _, id := range IDs() {
		comp, ok := Get(id)
		require.True(t, ok)
		assert.Len(t, comp.Levels, 5, "%s should have five levels", id)
		assert.NotEmpty(t, comp.ApplicableTypes, "%s should apply to at least one interview type", id)
	}
}

func TestAppliesTo(t *testing.T) {
	comp, ok := Get("code_quality")
	require.True(t, ok)
	assert.True(t, comp.AppliesTo(types.InterviewTechnical))
	assert.False(t, comp.AppliesTo(types.InterviewCase))
}

func TestForType(t *testing.T) {
	caseComps := ForType(types.InterviewCase)
	require.NotEmpty(t, caseComps)
	for _, comp := range caseComps {
		assert.True(t, comp.AppliesTo(types.InterviewCase))
	}

	// communication is shared across case and first_round
	ids := make(map[string]bool)
	for _, comp := range caseComps {
		ids[comp.ID] = true
	}
	assert.True(t, ids["problem_structuring"])
	assert.True(t, ids["communication"])
	assert.False(t, ids["code_quality"])
}

func TestLevelLabel(t *testing.T) {
	assert.Equal(t, "Not Assessed", LevelLabel(0))
	assert.Equal(t, "Insufficient", LevelLabel(1))
	assert.Equal(t, "Outstanding", LevelLabel(5))
	assert.Equal(t, "Unknown", LevelLabel(9))
}
