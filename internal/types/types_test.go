package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUrgency_Escalates(t *testing.T) {
	assert.True(t, UrgencyWrapUpSoon.Escalates(UrgencyNormal))
	assert.True(t, UrgencyMustEnd.Escalates(UrgencyWrapUpSoon))
	assert.True(t, UrgencyMustEnd.Escalates(UrgencyNormal))

	assert.False(t, UrgencyNormal.Escalates(UrgencyWrapUpSoon))
	assert.False(t, UrgencyWrapUpSoon.Escalates(UrgencyMustEnd))
	assert.False(t, UrgencyNormal.Escalates(UrgencyNormal))
}

func TestSessionState_ExchangeCount(t *testing.T) {
	state := &SessionState{
		Transcript: []Message{
			{Role: RoleInterviewer, Content: "opening"},
			{Role: RoleCandidate, Content: "first answer"},
			{Role: RoleInterviewer, Content: "follow-up"},
			{Role: RoleCandidate, Content: "second answer"},
		},
	}
	assert.Equal(t, 2, state.ExchangeCount())
}

func TestSessionState_LastInterviewerMessage(t *testing.T) {
	state := &SessionState{
		Transcript: []Message{
			{Role: RoleInterviewer, Content: "opening"},
			{Role: RoleCandidate, Content: "answer"},
			{Role: RoleInterviewer, Content: "follow-up"},
			{Role: RoleCandidate, Content: "another answer"},
		},
	}
	assert.Equal(t, "follow-up", state.LastInterviewerMessage())

	empty := &SessionState{}
	assert.Equal(t, "", empty.LastInterviewerMessage())
}

func TestInterviewSpec_PhaseIndex(t *testing.T) {
	spec := &InterviewSpec{
		Phases: []PhaseConfig{
			{ID: "opening"},
			{ID: "structuring"},
			{ID: "closing"},
		},
	}

	assert.Equal(t, 1, spec.PhaseIndex("structuring"))
	assert.Equal(t, 1, spec.PhaseIndex("Structuring"), "matching is case-insensitive")
	assert.Equal(t, -1, spec.PhaseIndex("debrief"))
}

func TestInterviewSpec_TierOf(t *testing.T) {
	spec := &InterviewSpec{
		Competencies: []SelectedCompetency{
			{CompetencyID: "problem_structuring", Tier: TierCritical},
			{CompetencyID: "communication", Tier: TierBonus},
		},
	}

	assert.Equal(t, TierCritical, spec.TierOf("problem_structuring"))
	assert.Equal(t, TierBonus, spec.TierOf("communication"))
	assert.Equal(t, TierImportant, spec.TierOf("unknown"), "unknown ids default to important")
}

func TestInterviewSpec_CriticalCompetencies(t *testing.T) {
	spec := &InterviewSpec{
		Competencies: []SelectedCompetency{
			{CompetencyID: "a", Tier: TierCritical},
			{CompetencyID: "b", Tier: TierImportant},
			{CompetencyID: "c", Tier: TierCritical},
		},
	}

	critical := spec.CriticalCompetencies()
	require.Len(t, critical, 2)
	assert.Equal(t, "a", critical[0].CompetencyID)
	assert.Equal(t, "c", critical[1].CompetencyID)
}

func TestContextPacket_ActiveContext(t *testing.T) {
	assert.Equal(t, "case study", (&ContextPacket{PacketType: PacketCaseStudy}).ActiveContext())
	assert.Equal(t, "CV screen", (&ContextPacket{PacketType: PacketCVScreen}).ActiveContext())
	assert.Equal(t, "technical problem", (&ContextPacket{PacketType: PacketTechnicalProblem}).ActiveContext())
}

func TestSessionState_JSONRoundTrip(t *testing.T) {
	score := 4.0
	state := &SessionState{
		SessionID:    "sess-1",
		CurrentPhase: "analysis",
		Transcript: []Message{
			{Role: RoleInterviewer, Content: "opening"},
		},
		CompetencyScores: map[string]*CompetencyScore{
			"problem_structuring": {
				CompetencyID: "problem_structuring",
				CurrentLevel: 3,
				Evidence:     []string{"built an issue tree"},
				Confidence:   ConfidenceLow,
				LevelHistory: []LevelChange{{Level: 3, Exchange: 2}},
			},
		},
		OverallLevel: 4,
		LevelName:    "CLEAR_PASS",
		LevelTrend:   TrendUp,
		Urgency:      UrgencyWrapUpSoon,
		IsComplete:   true,
		FinalScore:   &score,
	}

	data, err := json.Marshal(state)
	require.NoError(t, err)

	var decoded SessionState
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, state.SessionID, decoded.SessionID)
	assert.Equal(t, state.OverallLevel, decoded.OverallLevel)
	assert.Equal(t, state.Urgency, decoded.Urgency)
	require.NotNil(t, decoded.FinalScore)
	assert.Equal(t, 4.0, *decoded.FinalScore)
	require.Contains(t, decoded.CompetencyScores, "problem_structuring")
	assert.Equal(t, 3, decoded.CompetencyScores["problem_structuring"].CurrentLevel)
}
