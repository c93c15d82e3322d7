package session

import (
	"time"

	"github.com/jonathan/interview-agent/internal/rubric"
	"github.com/jonathan/interview-agent/internal/scoring"
	"github.com/jonathan/interview-agent/internal/types"
)

// buildSummary derives the read-only assessment snapshot from a
// session. It never mutates state and can be taken mid-interview.
func buildSummary(state *types.SessionState, now time.Time) *types.Summary {
	duration := now.Sub(state.StartedAt)
	if state.IsComplete && len(state.Transcript) > 0 {
		last := state.Transcript[len(state.Transcript)-1]
		if !last.Timestamp.IsZero() {
			duration = last.Timestamp.Sub(state.StartedAt)
		}
	}

	breakdown := make([]types.CompetencyBreakdown, 0, len(state.Spec.Competencies))
	for _, sel := range state.Spec.Competencies {
		score := state.CompetencyScores[sel.CompetencyID]
		if score == nil {
			score = scoring.NewScore(sel.CompetencyID)
		}
		name := sel.CompetencyID
		if comp, ok := rubric.Get(sel.CompetencyID); ok {
			name = comp.Name
		}
		breakdown = append(breakdown, types.CompetencyBreakdown{
			CompetencyID: sel.CompetencyID,
			Name:         name,
			Tier:         sel.Tier,
			Level:        score.CurrentLevel,
			LevelName:    rubric.LevelLabel(score.CurrentLevel),
			Confidence:   score.Confidence,
			Evidence:     score.Evidence,
			RedFlags:     score.RedFlags,
			GreenFlags:   score.GreenFlags,
			LevelHistory: score.LevelHistory,
		})
	}

	return &types.Summary{
		SessionID:     state.SessionID,
		InterviewType: state.Spec.InterviewType,
		Title:         state.Spec.Title,
		OverallLevel:  state.OverallLevel,
		LevelName:     state.LevelName,
		Trend:         state.LevelTrend,
		Competencies:  breakdown,
		RedFlags:      state.RedFlags,
		GreenFlags:    state.GreenFlags,
		ExchangeCount: state.ExchangeCount(),
		StartedAt:     state.StartedAt,
		Duration:      duration.Round(time.Second).String(),
		IsComplete:    state.IsComplete,
	}
}
